package entities

import "time"

// SearchResult is one memory returned by the backend for a query
type SearchResult struct {
	Content        string    `json:"content"`
	MeetingTitle   string    `json:"meeting_title"`
	MeetingDate    time.Time `json:"meeting_date"`
	Participants   []string  `json:"participants"`
	MemoryType     string    `json:"memory_type"` // episodic_memory, foresight, event_log, ...
	RelevanceScore *float64  `json:"relevance_score"`
}
