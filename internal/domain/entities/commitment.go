package entities

import "time"

// CommitmentStatus represents the lifecycle of an extracted commitment
type CommitmentStatus string

const (
	CommitmentStatusPending   CommitmentStatus = "pending"
	CommitmentStatusCompleted CommitmentStatus = "completed"
	CommitmentStatusOverdue   CommitmentStatus = "overdue" // Computed by the backend only
)

// IsValid checks if the status is a known commitment status
func (s CommitmentStatus) IsValid() bool {
	switch s {
	case CommitmentStatusPending, CommitmentStatusCompleted, CommitmentStatusOverdue:
		return true
	}
	return false
}

// IsOpen reports whether the commitment still needs action
func (s CommitmentStatus) IsOpen() bool {
	return s != CommitmentStatusCompleted
}

// CommitmentDirection is relative to the account holder, not derivable from
// owner and recipient alone
type CommitmentDirection string

const (
	DirectionIOwe     CommitmentDirection = "i_owe"      // I promised someone
	DirectionOwedToMe CommitmentDirection = "owed_to_me" // Someone promised me
)

// Commitment is a promise extracted by the backend from a meeting
type Commitment struct {
	ID           string              `json:"id"`
	Description  string              `json:"description"`
	Owner        string              `json:"owner"`
	Recipient    string              `json:"recipient"`
	Direction    CommitmentDirection `json:"direction"`
	DueDate      *time.Time          `json:"due_date"`
	Status       CommitmentStatus    `json:"status"`
	MeetingID    string              `json:"meeting_id"`
	MeetingTitle string              `json:"meeting_title"`
	CreatedAt    time.Time           `json:"created_at"`
	CompletedAt  *time.Time          `json:"completed_at"`
}

// Involves reports whether name is the owner or the recipient
func (c *Commitment) Involves(name string) bool {
	return c.Owner == name || c.Recipient == name
}

// CommitmentUpdate carries the user-editable fields of a commitment
type CommitmentUpdate struct {
	Status  *CommitmentStatus `json:"status,omitempty" validate:"omitempty,oneof=pending completed"`
	DueDate *time.Time        `json:"due_date,omitempty"`
}

// CommitmentFilter restricts a commitment collection by status and/or contact.
// An empty Status (or "all") and an empty Contact match everything.
type CommitmentFilter struct {
	Status  string `json:"status,omitempty" query:"status" validate:"omitempty,oneof=all pending completed overdue"`
	Contact string `json:"contact,omitempty" query:"contact" validate:"omitempty,max=100"`
}

// StatusFilterAll is the status filter value that matches every commitment
const StatusFilterAll = "all"
