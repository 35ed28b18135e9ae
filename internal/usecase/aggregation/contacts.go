// Package aggregation derives contact and commitment views from raw backend
// collections. Every function is pure: inputs are never mutated and no state
// survives between calls.
package aggregation

import (
	"sort"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

// ComputeContactSummaries folds meetings and commitments into one summary per
// participant, sorted by meeting count (descending). Ties keep the order in
// which contacts were first seen.
//
// A name listed twice in one meeting counts that meeting once.
// Commitments whose owner or recipient never appears in a meeting contribute
// nothing for that side. A commitment owned by and promised to the same
// contact is counted once.
func ComputeContactSummaries(meetings []entities.Meeting, commitments []entities.Commitment) []entities.ContactSummary {
	summaries := make([]entities.ContactSummary, 0)
	index := make(map[string]int)

	for _, m := range meetings {
		counted := make(map[string]struct{}, len(m.Participants))
		for _, name := range m.Participants {
			if _, dup := counted[name]; dup {
				continue
			}
			counted[name] = struct{}{}

			i, seen := index[name]
			if !seen {
				index[name] = len(summaries)
				summaries = append(summaries, entities.ContactSummary{
					Name:         name,
					MeetingCount: 1,
					LastMeeting:  m.MeetingDate,
				})
				continue
			}
			summaries[i].MeetingCount++
			if m.MeetingDate.After(summaries[i].LastMeeting) {
				summaries[i].LastMeeting = m.MeetingDate
			}
		}
	}

	for _, c := range commitments {
		if !c.Status.IsOpen() {
			continue
		}
		if i, ok := index[c.Owner]; ok {
			summaries[i].PendingCommitments++
		}
		if c.Recipient == c.Owner {
			continue
		}
		if i, ok := index[c.Recipient]; ok {
			summaries[i].PendingCommitments++
		}
	}

	sort.SliceStable(summaries, func(a, b int) bool {
		return summaries[a].MeetingCount > summaries[b].MeetingCount
	})
	return summaries
}

// UniqueContacts lists every participant once, in first-seen order
func UniqueContacts(meetings []entities.Meeting) []string {
	seen := make(map[string]struct{})
	contacts := make([]string, 0)
	for _, m := range meetings {
		for _, p := range m.Participants {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			contacts = append(contacts, p)
		}
	}
	return contacts
}
