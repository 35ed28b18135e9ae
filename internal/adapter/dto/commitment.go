package dto

import (
	"time"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

// ListCommitmentsRequest holds the query of GET /commitments
type ListCommitmentsRequest struct {
	Status  string `query:"status" validate:"omitempty,oneof=all pending completed overdue"`
	Contact string `query:"contact" validate:"omitempty,max=100"`
}

// Filter converts the query into an aggregation filter
func (r ListCommitmentsRequest) Filter() entities.CommitmentFilter {
	return entities.CommitmentFilter{Status: r.Status, Contact: r.Contact}
}

// UpdateCommitmentRequest is the body of PATCH /commitments/:id
type UpdateCommitmentRequest struct {
	ID      string     `param:"id" json:"-" validate:"required,max=100"`
	Status  *string    `json:"status,omitempty" validate:"omitempty,oneof=pending completed"`
	DueDate *time.Time `json:"due_date,omitempty"`
}

// Empty reports whether the request changes nothing
func (r UpdateCommitmentRequest) Empty() bool {
	return r.Status == nil && r.DueDate == nil
}

// ToUpdate converts the request into a backend update
func (r UpdateCommitmentRequest) ToUpdate() entities.CommitmentUpdate {
	var update entities.CommitmentUpdate
	if r.Status != nil {
		s := entities.CommitmentStatus(*r.Status)
		update.Status = &s
	}
	if r.DueDate != nil {
		d := *r.DueDate
		update.DueDate = &d
	}
	return update
}

// CommitmentResponse is a commitment as presented to UI clients
type CommitmentResponse struct {
	ID           string                       `json:"id"`
	Description  string                       `json:"description"`
	Owner        string                       `json:"owner"`
	Recipient    string                       `json:"recipient"`
	Direction    entities.CommitmentDirection `json:"direction"`
	DueDate      *time.Time                   `json:"due_date"`
	Status       entities.CommitmentStatus    `json:"status"`
	PastDue      bool                         `json:"past_due"`
	MeetingID    string                       `json:"meeting_id"`
	MeetingTitle string                       `json:"meeting_title"`
	CreatedAt    time.Time                    `json:"created_at"`
	CompletedAt  *time.Time                   `json:"completed_at"`
}
