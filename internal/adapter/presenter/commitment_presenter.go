package presenter

import (
	"time"

	"github.com/johnquangdev/meetingmind/internal/adapter/dto"
	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

// ToCommitmentResponse converts a Commitment entity to CommitmentResponse DTO.
// PastDue is display-only; the status itself is left as the backend set it.
func ToCommitmentResponse(c *entities.Commitment, now time.Time) *dto.CommitmentResponse {
	if c == nil {
		return nil
	}

	return &dto.CommitmentResponse{
		ID:           c.ID,
		Description:  c.Description,
		Owner:        c.Owner,
		Recipient:    c.Recipient,
		Direction:    c.Direction,
		DueDate:      c.DueDate,
		Status:       c.Status,
		PastDue:      c.Status.IsOpen() && c.DueDate != nil && c.DueDate.Before(now),
		MeetingID:    c.MeetingID,
		MeetingTitle: c.MeetingTitle,
		CreatedAt:    c.CreatedAt,
		CompletedAt:  c.CompletedAt,
	}
}

// ToCommitmentListResponse converts a slice, never returning nil
func ToCommitmentListResponse(commitments []entities.Commitment, now time.Time) []dto.CommitmentResponse {
	out := make([]dto.CommitmentResponse, 0, len(commitments))
	for i := range commitments {
		out = append(out, *ToCommitmentResponse(&commitments[i], now))
	}
	return out
}
