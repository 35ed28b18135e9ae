package entities

import "time"

// ContactSummary is a per-contact rollup derived from meetings and
// commitments. It is never persisted.
type ContactSummary struct {
	Name               string    `json:"name"`
	MeetingCount       int       `json:"meeting_count"`
	LastMeeting        time.Time `json:"last_meeting"`
	PendingCommitments int       `json:"pending_commitments"`
}

// ContactTimeline gathers everything known about one contact
type ContactTimeline struct {
	Name                 string       `json:"name"`
	Meetings             []Meeting    `json:"meetings"`
	OpenCommitments      []Commitment `json:"open_commitments"`
	CompletedCommitments []Commitment `json:"completed_commitments"`
}

// Overview is the dashboard view over the full collections
type Overview struct {
	MeetingCount       int       `json:"meeting_count"`
	PendingCommitments int       `json:"pending_commitments"`
	RecentMeetings     []Meeting `json:"recent_meetings"`
	Contacts           []string  `json:"contacts"`
}
