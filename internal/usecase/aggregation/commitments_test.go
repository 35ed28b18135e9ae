package aggregation

import (
	"reflect"
	"testing"
	"time"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

func sampleCommitments() []entities.Commitment {
	return []entities.Commitment{
		commitment("c1", "Alice", "Bob", entities.CommitmentStatusPending),
		commitment("c2", "Bob", "Carol", entities.CommitmentStatusCompleted),
		commitment("c3", "Carol", "Bob", entities.CommitmentStatusOverdue),
		commitment("c4", "Bob", "Bob", entities.CommitmentStatusPending),
		commitment("c5", "Dave", "Alice", entities.CommitmentStatusPending),
		commitment("c6", "Bobby", "Alice", entities.CommitmentStatusPending),
	}
}

func ids(cs []entities.Commitment) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestFilterCommitments(t *testing.T) {
	tests := []struct {
		name   string
		filter entities.CommitmentFilter
		want   []string
	}{
		{name: "no filter", filter: entities.CommitmentFilter{}, want: []string{"c1", "c2", "c3", "c4", "c5", "c6"}},
		{name: "all", filter: entities.CommitmentFilter{Status: "all"}, want: []string{"c1", "c2", "c3", "c4", "c5", "c6"}},
		{name: "pending", filter: entities.CommitmentFilter{Status: "pending"}, want: []string{"c1", "c4", "c5", "c6"}},
		{name: "completed", filter: entities.CommitmentFilter{Status: "completed"}, want: []string{"c2"}},
		{name: "overdue", filter: entities.CommitmentFilter{Status: "overdue"}, want: []string{"c3"}},
		{name: "unknown status", filter: entities.CommitmentFilter{Status: "archived"}, want: []string{}},
		{name: "contact exact match", filter: entities.CommitmentFilter{Contact: "Bob"}, want: []string{"c1", "c2", "c3", "c4"}},
		{name: "contact and status", filter: entities.CommitmentFilter{Status: "pending", Contact: "Bob"}, want: []string{"c1", "c4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterCommitments(sampleCommitments(), tt.filter))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterCommitments_Composes(t *testing.T) {
	src := sampleCommitments()
	byStatus := entities.CommitmentFilter{Status: "pending"}
	byContact := entities.CommitmentFilter{Contact: "Bob"}

	statusThenContact := FilterCommitments(FilterCommitments(src, byStatus), byContact)
	contactThenStatus := FilterCommitments(FilterCommitments(src, byContact), byStatus)

	if !reflect.DeepEqual(statusThenContact, contactThenStatus) {
		t.Fatalf("filters do not compose: %v vs %v", ids(statusThenContact), ids(contactThenStatus))
	}
}

func TestFilterCommitments_DoesNotMutateSource(t *testing.T) {
	src := sampleCommitments()
	snapshot := sampleCommitments()

	out := FilterCommitments(src, entities.CommitmentFilter{Status: "pending"})
	out[0].Description = "changed"

	if !reflect.DeepEqual(src, snapshot) {
		t.Fatal("source collection was mutated")
	}
}

func TestFilterByMeeting(t *testing.T) {
	src := []entities.Commitment{
		{ID: "a", MeetingID: "m1"},
		{ID: "b", MeetingID: "m2"},
		{ID: "c", MeetingID: "m1"},
	}
	got := ids(FilterByMeeting(src, "m1"))
	if !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("got %v", got)
	}
}

func TestSortByDue(t *testing.T) {
	d := func(s string) *time.Time {
		v, _ := time.Parse("2006-01-02", s)
		return &v
	}
	created, _ := time.Parse("2006-01-02", "2024-01-15")
	src := []entities.Commitment{
		{ID: "late", DueDate: d("2024-03-01")},
		{ID: "undated", CreatedAt: created},
		{ID: "early", DueDate: d("2024-01-10")},
	}

	got := ids(SortByDue(src))
	if !reflect.DeepEqual(got, []string{"early", "undated", "late"}) {
		t.Fatalf("got %v", got)
	}
	if src[0].ID != "late" {
		t.Fatal("SortByDue reordered its input")
	}
}
