package aggregation

import (
	"sort"
	"time"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

// recentMeetingLimit is how many meetings the overview shows
const recentMeetingLimit = 5

// ContactTimeline collects the meetings a contact attended (newest first) and
// their commitments split by whether they are still open
func ContactTimeline(name string, meetings []entities.Meeting, commitments []entities.Commitment) entities.ContactTimeline {
	attended := make([]entities.Meeting, 0)
	for i := range meetings {
		if meetings[i].HasParticipant(name) {
			attended = append(attended, meetings[i])
		}
	}
	attended = SortMeetingsNewestFirst(attended)

	open, completed := SplitOpen(FilterCommitments(commitments, entities.CommitmentFilter{Contact: name}))
	return entities.ContactTimeline{
		Name:                 name,
		Meetings:             attended,
		OpenCommitments:      open,
		CompletedCommitments: completed,
	}
}

// BuildOverview computes the dashboard numbers
func BuildOverview(meetings []entities.Meeting, commitments []entities.Commitment) entities.Overview {
	pending := FilterCommitments(commitments, entities.CommitmentFilter{
		Status: string(entities.CommitmentStatusPending),
	})

	recent := SortMeetingsNewestFirst(meetings)
	if len(recent) > recentMeetingLimit {
		recent = recent[:recentMeetingLimit]
	}

	return entities.Overview{
		MeetingCount:       len(meetings),
		PendingCommitments: len(pending),
		RecentMeetings:     recent,
		Contacts:           UniqueContacts(meetings),
	}
}

// SortMeetingsNewestFirst returns a copy ordered by meeting date, newest first
func SortMeetingsNewestFirst(meetings []entities.Meeting) []entities.Meeting {
	out := append([]entities.Meeting(nil), meetings...)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].MeetingDate.After(out[b].MeetingDate)
	})
	return out
}

func dueKey(c *entities.Commitment) time.Time {
	if c.DueDate != nil {
		return *c.DueDate
	}
	return c.CreatedAt
}
