package dto

import (
	"strings"
	"time"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/usecase/tracker"
)

// SubmitMeetingRequest is the body of POST /meetings
type SubmitMeetingRequest struct {
	Title        string    `json:"title" validate:"required,max=200" example:"Weekly sync"`
	Participants []string  `json:"participants" validate:"required,min=1,max=50,dive,required,max=100"`
	MeetingDate  time.Time `json:"meeting_date" validate:"required" example:"2026-02-10T10:00:00Z"`
	Notes        string    `json:"notes" validate:"required,max=50000"`
}

// ToInput converts the request into backend input. Participant names are
// trimmed so aggregation keys stay stable.
func (r SubmitMeetingRequest) ToInput() entities.MeetingInput {
	participants := make([]string, 0, len(r.Participants))
	for _, p := range r.Participants {
		if p = strings.TrimSpace(p); p != "" {
			participants = append(participants, p)
		}
	}
	return entities.MeetingInput{
		Title:        strings.TrimSpace(r.Title),
		Participants: participants,
		MeetingDate:  r.MeetingDate,
		Notes:        r.Notes,
	}
}

// SubmitMeetingResponse is returned once the backend accepted a meeting
type SubmitMeetingResponse struct {
	MeetingID string                 `json:"meeting_id"`
	Status    entities.MeetingStatus `json:"status"`
	Tracking  *tracker.Record        `json:"tracking,omitempty"`
}

// ListMeetingsRequest holds the query of GET /meetings
type ListMeetingsRequest struct {
	Participant string `query:"participant" validate:"omitempty,max=100"`
}

// MeetingIDRequest binds the :id path parameter
type MeetingIDRequest struct {
	ID string `param:"id" validate:"required,max=100"`
}

// MeetingResponse is a meeting as presented to UI clients
type MeetingResponse struct {
	ID           string                 `json:"id"`
	Title        string                 `json:"title"`
	Participants []string               `json:"participants"`
	MeetingDate  time.Time              `json:"meeting_date"`
	Notes        string                 `json:"notes,omitempty"`
	Summary      *string                `json:"summary,omitempty"`
	Status       entities.MeetingStatus `json:"status"`
	Terminal     bool                   `json:"terminal"`
	CreatedAt    time.Time              `json:"created_at"`
}
