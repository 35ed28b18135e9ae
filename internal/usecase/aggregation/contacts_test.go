package aggregation

import (
	"reflect"
	"testing"
	"time"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func meeting(t *testing.T, id, day string, participants ...string) entities.Meeting {
	return entities.Meeting{
		ID:           id,
		Title:        "meeting " + id,
		Participants: participants,
		MeetingDate:  date(t, day),
		Status:       entities.MeetingStatusCompleted,
	}
}

func commitment(id, owner, recipient string, status entities.CommitmentStatus) entities.Commitment {
	return entities.Commitment{
		ID:        id,
		Owner:     owner,
		Recipient: recipient,
		Status:    status,
		MeetingID: "m1",
	}
}

func byName(summaries []entities.ContactSummary) map[string]entities.ContactSummary {
	out := make(map[string]entities.ContactSummary, len(summaries))
	for _, s := range summaries {
		out[s.Name] = s
	}
	return out
}

func TestComputeContactSummaries_EndToEnd(t *testing.T) {
	meetings := []entities.Meeting{
		meeting(t, "m1", "2024-01-01", "Alice", "Bob"),
		meeting(t, "m2", "2024-02-01", "Alice"),
	}
	commitments := []entities.Commitment{
		commitment("c1", "Alice", "Bob", entities.CommitmentStatusPending),
	}

	got := ComputeContactSummaries(meetings, commitments)
	if len(got) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(got))
	}
	if got[0].Name != "Alice" || got[1].Name != "Bob" {
		t.Fatalf("unexpected order: %s, %s", got[0].Name, got[1].Name)
	}

	want := map[string]entities.ContactSummary{
		"Alice": {Name: "Alice", MeetingCount: 2, LastMeeting: date(t, "2024-02-01"), PendingCommitments: 1},
		"Bob":   {Name: "Bob", MeetingCount: 1, LastMeeting: date(t, "2024-01-01"), PendingCommitments: 1},
	}
	for name, w := range want {
		g := byName(got)[name]
		if g.MeetingCount != w.MeetingCount || !g.LastMeeting.Equal(w.LastMeeting) || g.PendingCommitments != w.PendingCommitments {
			t.Errorf("%s: got %+v, want %+v", name, g, w)
		}
	}
}

func TestComputeContactSummaries_Idempotent(t *testing.T) {
	meetings := []entities.Meeting{
		meeting(t, "m1", "2024-03-01", "Carol", "Dan"),
		meeting(t, "m2", "2024-01-01", "Dan", "Erin"),
		meeting(t, "m3", "2024-02-01", "Erin", "Carol"),
	}
	commitments := []entities.Commitment{
		commitment("c1", "Carol", "Dan", entities.CommitmentStatusOverdue),
		commitment("c2", "Erin", "Dan", entities.CommitmentStatusCompleted),
	}

	first := ComputeContactSummaries(meetings, commitments)
	second := ComputeContactSummaries(meetings, commitments)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("aggregation not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestComputeContactSummaries_MonotonicMeetingCount(t *testing.T) {
	meetings := []entities.Meeting{
		meeting(t, "m1", "2024-01-01", "Alice", "Bob"),
	}
	before := byName(ComputeContactSummaries(meetings, nil))["Alice"].MeetingCount

	meetings = append(meetings, meeting(t, "m2", "2023-06-01", "Alice", "Alice"))
	after := byName(ComputeContactSummaries(meetings, nil))["Alice"]

	if after.MeetingCount != before+1 {
		t.Fatalf("expected meeting count %d, got %d", before+1, after.MeetingCount)
	}
	if !after.LastMeeting.Equal(date(t, "2024-01-01")) {
		t.Fatalf("older meeting must not move lastMeeting back, got %v", after.LastMeeting)
	}
}

func TestComputeContactSummaries_SelfReferenceCountedOnce(t *testing.T) {
	meetings := []entities.Meeting{meeting(t, "m1", "2024-01-01", "Alice")}
	commitments := []entities.Commitment{
		commitment("c1", "Alice", "Alice", entities.CommitmentStatusPending),
	}

	got := byName(ComputeContactSummaries(meetings, commitments))["Alice"]
	if got.PendingCommitments != 1 {
		t.Fatalf("expected 1 pending commitment, got %d", got.PendingCommitments)
	}
}

func TestComputeContactSummaries_UnknownContactsExcluded(t *testing.T) {
	meetings := []entities.Meeting{
		meeting(t, "m1", "2024-01-01", "Alice"),
		meeting(t, "m2", "2024-01-02"),
	}
	commitments := []entities.Commitment{
		commitment("c1", "Alice", "Zed", entities.CommitmentStatusPending),
		commitment("c2", "Yan", "Zed", entities.CommitmentStatusPending),
		{ID: "c3", Owner: "Alice", Recipient: "Yan", Status: entities.CommitmentStatusPending, MeetingID: "missing"},
	}

	got := ComputeContactSummaries(meetings, commitments)
	if len(got) != 1 {
		t.Fatalf("expected only Alice, got %+v", got)
	}
	if got[0].PendingCommitments != 2 {
		t.Fatalf("expected 2 pending for Alice, got %d", got[0].PendingCommitments)
	}
}

func TestComputeContactSummaries_StableTieOrder(t *testing.T) {
	meetings := []entities.Meeting{
		meeting(t, "m1", "2024-01-01", "Zoe", "Adam"),
		meeting(t, "m2", "2024-01-02", "Mia"),
		meeting(t, "m3", "2024-01-03", "Mia"),
	}

	got := ComputeContactSummaries(meetings, nil)
	names := make([]string, 0, len(got))
	for _, s := range got {
		names = append(names, s.Name)
	}
	want := []string{"Mia", "Zoe", "Adam"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("got order %v, want %v", names, want)
	}
}

func TestComputeContactSummaries_ChronologicalAcrossZones(t *testing.T) {
	// 2024-01-01T23:00-05:00 is later than 2024-01-02T01:00Z even though it
	// sorts first as a string.
	late, _ := time.Parse(time.RFC3339, "2024-01-01T23:00:00-05:00")
	early, _ := time.Parse(time.RFC3339, "2024-01-02T01:00:00Z")

	meetings := []entities.Meeting{
		{ID: "a", Participants: []string{"Alice"}, MeetingDate: early},
		{ID: "b", Participants: []string{"Alice"}, MeetingDate: late},
	}
	got := ComputeContactSummaries(meetings, nil)
	if !got[0].LastMeeting.Equal(late) {
		t.Fatalf("expected lastMeeting %v, got %v", late, got[0].LastMeeting)
	}
}

func TestComputeContactSummaries_Empty(t *testing.T) {
	got := ComputeContactSummaries(nil, []entities.Commitment{
		commitment("c1", "Alice", "Bob", entities.CommitmentStatusPending),
	})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", got)
	}
}

func TestUniqueContacts(t *testing.T) {
	meetings := []entities.Meeting{
		meeting(t, "m1", "2024-01-01", "Alice", "Bob"),
		meeting(t, "m2", "2024-01-02", "Bob", "Carol", "Alice"),
	}
	got := UniqueContacts(meetings)
	want := []string{"Alice", "Bob", "Carol"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
