package memorybackend

import (
	"time"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

func demoDate(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// demoMeetings is the data loaded by Seed
var demoMeetings = []entities.MeetingInput{
	{
		Title:        "Product Roadmap Review with Alice",
		Participants: []string{"Alice Chen", "Bob Smith"},
		MeetingDate:  demoDate("2026-02-10T10:00:00Z"),
		Notes: "Alice: Let's go through the Q1 roadmap. The main priorities are the new search feature and the mobile app launch.\n" +
			"Bob: I can take the lead on the search backend. I'll have the API endpoints ready by end of February.\n" +
			"Alice: Let's go with Redis for caching, we'll need sorted sets for the ranking.\n" +
			"Alice: I'll send an intro email to Dave by tomorrow.\n" +
			"Bob: The client demo is March 1st. I'll prepare the demo dataset and keep staging stable.",
	},
	{
		Title:        "Sprint Retrospective - Team Alpha",
		Participants: []string{"Charlie Park", "Diana Ross", "Eve Martinez"},
		MeetingDate:  demoDate("2026-02-12T14:00:00Z"),
		Notes: "Charlie: The deployment automation saved us a lot of time.\n" +
			"Eve: Two bugs slipped through to production; test coverage needs work.\n" +
			"Charlie: I'll set up a test coverage threshold in the CI pipeline, 80% minimum.\n" +
			"Diana: I can write the missing integration tests for the payment module.\n" +
			"Eve: I'll update the API documentation by next Friday.",
	},
	{
		Title:        "Investor Update Call with Frank",
		Participants: []string{"Frank Lee", "Grace Wang"},
		MeetingDate:  demoDate("2026-02-14T09:00:00Z"),
		Notes: "Grace: We hit 50,000 MAU last month, up 35% from December.\n" +
			"Frank: Can you send me a one-pager on the enterprise offering?\n" +
			"Grace: I'll have that ready by Monday.\n" +
			"Frank: I'll introduce you to two VCs that would be a good fit for the Series B.",
	},
	{
		Title:        "Search Backend Sync",
		Participants: []string{"Alice Chen", "Bob Smith"},
		MeetingDate:  demoDate("2026-02-17T16:00:00Z"),
		Notes: "Bob: The search API endpoints are in review.\n" +
			"Alice: Good. Let's book the dry run for February 25th; I'll send the invite.",
	},
}
