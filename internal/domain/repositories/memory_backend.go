package repositories

import (
	"context"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

// MeetingRepository covers meeting submission and lookup on the memory backend
type MeetingRepository interface {
	SubmitMeeting(ctx context.Context, input entities.MeetingInput) (*entities.SubmitResult, error)
	// GetMeeting returns an error satisfying apperrors.IsNotFound for unknown ids
	GetMeeting(ctx context.Context, id string) (*entities.Meeting, error)
	GetMeetings(ctx context.Context, filter entities.MeetingFilter) ([]entities.Meeting, error)
}

// CommitmentRepository covers commitment listing and user edits
type CommitmentRepository interface {
	GetCommitments(ctx context.Context, filter entities.CommitmentFilter) ([]entities.Commitment, error)
	UpdateCommitment(ctx context.Context, id string, update entities.CommitmentUpdate) (*entities.Commitment, error)
}

// Subscription is a live, ordered briefing stream.
//
// Next blocks until the next raw payload arrives. It returns io.EOF once the
// transport ends cleanly. Close may be called at any time, from any goroutine,
// and more than once; it unblocks a pending Next.
type Subscription interface {
	Next() (string, error)
	Close() error
}

// BriefingStreamer opens briefing generation streams
type BriefingStreamer interface {
	OpenBriefingStream(ctx context.Context, contact string) (Subscription, error)
}

// MemorySearcher runs relevance search over stored memories
type MemorySearcher interface {
	SearchMemories(ctx context.Context, query, contact string) ([]entities.SearchResult, error)
}

// MemoryBackend is the full backend client surface consumed by the core
type MemoryBackend interface {
	MeetingRepository
	CommitmentRepository
	BriefingStreamer
	MemorySearcher
	Health(ctx context.Context) error
}
