package entities

// BriefingEventType tags a payload on the briefing stream
type BriefingEventType string

const (
	BriefingEventToken BriefingEventType = "token"
	BriefingEventDone  BriefingEventType = "done"
)

// BriefingEvent is one decoded payload of a briefing stream
type BriefingEvent struct {
	Type    BriefingEventType `json:"type"`
	Content string            `json:"content,omitempty"`
}
