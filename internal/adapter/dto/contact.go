package dto

import "github.com/johnquangdev/meetingmind/internal/domain/entities"

// ContactNameRequest binds the :name path parameter
type ContactNameRequest struct {
	Name string `param:"name" validate:"required,max=100"`
}

// ContactTimelineResponse is GET /contacts/:name
type ContactTimelineResponse struct {
	Name                 string                   `json:"name"`
	Summary              *entities.ContactSummary `json:"summary,omitempty"`
	Meetings             []MeetingResponse        `json:"meetings"`
	OpenCommitments      []CommitmentResponse     `json:"open_commitments"`
	CompletedCommitments []CommitmentResponse     `json:"completed_commitments"`
}

// DashboardResponse is GET /dashboard
type DashboardResponse struct {
	MeetingCount       int                       `json:"meeting_count"`
	PendingCommitments int                       `json:"pending_commitments"`
	RecentMeetings     []MeetingResponse         `json:"recent_meetings"`
	Contacts           []string                  `json:"contacts"`
	TopContacts        []entities.ContactSummary `json:"top_contacts"`
}
