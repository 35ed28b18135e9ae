package memorybackend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

// The backend serializes naive datetimes without an offset
// ("2024-01-01T10:00:00"), which encoding/json rejects for time.Time.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// timestamp decodes any layout the backend emits. Values without an offset
// are taken as UTC.
type timestamp struct {
	time.Time
}

func (t *timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp: unrecognized format %q", s)
}

func (t *timestamp) ptr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

type meetingDTO struct {
	ID           string                 `json:"id"`
	Title        string                 `json:"title"`
	Participants []string               `json:"participants"`
	MeetingDate  timestamp              `json:"meeting_date"`
	Notes        string                 `json:"notes"`
	Summary      *string                `json:"summary"`
	Status       entities.MeetingStatus `json:"status"`
	CreatedAt    timestamp              `json:"created_at"`
}

func (m meetingDTO) toEntity() entities.Meeting {
	return entities.Meeting{
		ID:           m.ID,
		Title:        m.Title,
		Participants: m.Participants,
		MeetingDate:  m.MeetingDate.Time,
		Notes:        m.Notes,
		Summary:      m.Summary,
		Status:       m.Status,
		CreatedAt:    m.CreatedAt.Time,
	}
}

type commitmentDTO struct {
	ID           string                       `json:"id"`
	Description  string                       `json:"description"`
	Owner        string                       `json:"owner"`
	Recipient    string                       `json:"recipient"`
	Direction    entities.CommitmentDirection `json:"direction"`
	DueDate      *timestamp                   `json:"due_date"`
	Status       entities.CommitmentStatus    `json:"status"`
	MeetingID    string                       `json:"meeting_id"`
	MeetingTitle string                       `json:"meeting_title"`
	CreatedAt    timestamp                    `json:"created_at"`
	CompletedAt  *timestamp                   `json:"completed_at"`
}

func (c commitmentDTO) toEntity() entities.Commitment {
	return entities.Commitment{
		ID:           c.ID,
		Description:  c.Description,
		Owner:        c.Owner,
		Recipient:    c.Recipient,
		Direction:    c.Direction,
		DueDate:      c.DueDate.ptr(),
		Status:       c.Status,
		MeetingID:    c.MeetingID,
		MeetingTitle: c.MeetingTitle,
		CreatedAt:    c.CreatedAt.Time,
		CompletedAt:  c.CompletedAt.ptr(),
	}
}

type searchResultDTO struct {
	Content        string    `json:"content"`
	MeetingTitle   string    `json:"meeting_title"`
	MeetingDate    timestamp `json:"meeting_date"`
	Participants   []string  `json:"participants"`
	MemoryType     string    `json:"memory_type"`
	RelevanceScore *float64  `json:"relevance_score"`
}

func (s searchResultDTO) toEntity() entities.SearchResult {
	return entities.SearchResult{
		Content:        s.Content,
		MeetingTitle:   s.MeetingTitle,
		MeetingDate:    s.MeetingDate.Time,
		Participants:   s.Participants,
		MemoryType:     s.MemoryType,
		RelevanceScore: s.RelevanceScore,
	}
}

// errorBody is the FastAPI error envelope
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// describeError pulls a readable message out of an error response body
func describeError(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && len(eb.Detail) > 0 {
		var s string
		if json.Unmarshal(eb.Detail, &s) == nil {
			return s
		}
		return string(eb.Detail)
	}
	return string(bytes.TrimSpace(body))
}
