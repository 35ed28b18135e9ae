package aggregation

import (
	"sort"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

// FilterCommitments applies the status and contact predicates of filter.
// The result is always a fresh slice, so callers may reorder it freely.
func FilterCommitments(commitments []entities.Commitment, filter entities.CommitmentFilter) []entities.Commitment {
	return filterBy(commitments, func(c *entities.Commitment) bool {
		return MatchStatus(c, filter.Status) && MatchContact(c, filter.Contact)
	})
}

// FilterByMeeting keeps the commitments extracted from one meeting
func FilterByMeeting(commitments []entities.Commitment, meetingID string) []entities.Commitment {
	return filterBy(commitments, func(c *entities.Commitment) bool {
		return c.MeetingID == meetingID
	})
}

// MatchStatus is the status predicate. An empty status or "all" matches
// everything; an unknown status matches nothing.
func MatchStatus(c *entities.Commitment, status string) bool {
	if status == "" || status == entities.StatusFilterAll {
		return true
	}
	return c.Status == entities.CommitmentStatus(status)
}

// MatchContact is the contact predicate (exact owner or recipient match)
func MatchContact(c *entities.Commitment, contact string) bool {
	if contact == "" {
		return true
	}
	return c.Involves(contact)
}

// SplitOpen partitions commitments into open (pending or overdue) and completed
func SplitOpen(commitments []entities.Commitment) (open, completed []entities.Commitment) {
	open = make([]entities.Commitment, 0)
	completed = make([]entities.Commitment, 0)
	for _, c := range commitments {
		if c.Status.IsOpen() {
			open = append(open, c)
		} else {
			completed = append(completed, c)
		}
	}
	return open, completed
}

// SortByDue orders commitments by due date, falling back to creation time for
// undated ones, the same order the backend lists them in
func SortByDue(commitments []entities.Commitment) []entities.Commitment {
	out := append([]entities.Commitment(nil), commitments...)
	sort.SliceStable(out, func(a, b int) bool {
		return dueKey(&out[a]).Before(dueKey(&out[b]))
	})
	return out
}

func filterBy(commitments []entities.Commitment, keep func(*entities.Commitment) bool) []entities.Commitment {
	out := make([]entities.Commitment, 0, len(commitments))
	for i := range commitments {
		if keep(&commitments[i]) {
			out = append(out, commitments[i])
		}
	}
	return out
}
