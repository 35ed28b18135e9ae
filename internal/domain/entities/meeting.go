package entities

import "time"

// MeetingStatus represents where a meeting is in the backend processing pipeline
type MeetingStatus string

const (
	MeetingStatusProcessing MeetingStatus = "processing" // Submitted, extraction still running on the backend
	MeetingStatusCompleted  MeetingStatus = "completed"  // Memories stored and commitments extracted
	MeetingStatusFailed     MeetingStatus = "failed"     // Backend gave up processing the meeting
)

// IsTerminal reports whether no further status transition is expected
func (s MeetingStatus) IsTerminal() bool {
	return s == MeetingStatusCompleted || s == MeetingStatusFailed
}

// IsValid checks if the status is one the backend is known to emit
func (s MeetingStatus) IsValid() bool {
	switch s {
	case MeetingStatusProcessing, MeetingStatusCompleted, MeetingStatusFailed:
		return true
	}
	return false
}

// Meeting is a submitted meeting transcript as reported by the memory backend.
// Status is only ever mutated by the backend and is frozen once terminal.
type Meeting struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Participants []string      `json:"participants"`
	MeetingDate  time.Time     `json:"meeting_date"`
	Notes        string        `json:"notes"`
	Summary      *string       `json:"summary,omitempty"`
	Status       MeetingStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
}

// HasParticipant reports whether name appears in the participant list
func (m *Meeting) HasParticipant(name string) bool {
	for _, p := range m.Participants {
		if p == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so snapshots handed to callers never alias
// the tracker's internal state
func (m *Meeting) Clone() *Meeting {
	if m == nil {
		return nil
	}
	c := *m
	c.Participants = append([]string(nil), m.Participants...)
	if m.Summary != nil {
		s := *m.Summary
		c.Summary = &s
	}
	return &c
}

// MeetingInput is the payload used to submit a new meeting
type MeetingInput struct {
	Title        string    `json:"title" validate:"required,max=200"`
	Participants []string  `json:"participants" validate:"required,min=1,max=50,dive,required,max=100"`
	MeetingDate  time.Time `json:"meeting_date" validate:"required"`
	Notes        string    `json:"notes" validate:"required,max=50000"`
}

// SubmitResult is returned by the backend when a meeting is accepted
type SubmitResult struct {
	MeetingID string        `json:"meeting_id"`
	Status    MeetingStatus `json:"status"`
}

// MeetingFilter narrows a meeting listing
type MeetingFilter struct {
	Participant string
}
