package insights

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/infrastructure/external/memorybackend"
	usecaseErrors "github.com/johnquangdev/meetingmind/internal/usecase/errors"
)

func seededService(t *testing.T) *InsightsService {
	t.Helper()
	backend := memorybackend.NewMockBackend()
	backend.Seed()
	return NewInsightsService(backend, zaptest.NewLogger(t))
}

func TestInsightsService_Contacts(t *testing.T) {
	contacts, err := seededService(t).Contacts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(contacts) != 7 {
		t.Fatalf("expected 7 contacts, got %d", len(contacts))
	}
	if contacts[0].Name != "Alice Chen" || contacts[0].MeetingCount != 2 {
		t.Fatalf("unexpected top contact %+v", contacts[0])
	}
	if contacts[1].Name != "Bob Smith" || contacts[1].PendingCommitments != 4 {
		t.Fatalf("unexpected second contact %+v", contacts[1])
	}
}

func TestInsightsService_Contact(t *testing.T) {
	svc := seededService(t)

	view, err := svc.Contact(context.Background(), "Frank Lee")
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Timeline.Meetings) != 1 || len(view.Timeline.OpenCommitments) != 2 {
		t.Fatalf("unexpected timeline %+v", view.Timeline)
	}
	if view.Summary == nil || view.Summary.MeetingCount != 1 {
		t.Fatalf("unexpected summary %+v", view.Summary)
	}

	if _, err := svc.Contact(context.Background(), "Frank"); !errors.Is(err, usecaseErrors.ErrContactNotFound) {
		t.Fatalf("partial names must not match, got %v", err)
	}
	if _, err := svc.Contact(context.Background(), ""); !errors.Is(err, entities.ErrEmptyContact) {
		t.Fatalf("expected ErrEmptyContact, got %v", err)
	}
}

func TestInsightsService_Overview(t *testing.T) {
	view, err := seededService(t).Overview(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if view.MeetingCount != 4 || view.PendingCommitments != 8 {
		t.Fatalf("unexpected overview %+v", view.Overview)
	}
	if len(view.RecentMeetings) != 4 || view.RecentMeetings[0].Title != "Search Backend Sync" {
		t.Fatalf("recent meetings not newest first: %+v", view.RecentMeetings)
	}
	if len(view.TopContacts) != topContactLimit {
		t.Fatalf("expected %d top contacts, got %d", topContactLimit, len(view.TopContacts))
	}
}

func TestInsightsService_CommitmentsExactContact(t *testing.T) {
	svc := seededService(t)

	// the backend matches "Bob" as a substring of "Bob Smith"; the exact
	// filter drops those
	got, err := svc.Commitments(context.Background(), entities.CommitmentFilter{Contact: "Bob"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no exact matches, got %d", len(got))
	}

	got, err = svc.Commitments(context.Background(), entities.CommitmentFilter{Contact: "Bob Smith", Status: "pending"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 commitments, got %d", len(got))
	}
}

type failingBackend struct{}

func (failingBackend) GetMeetings(context.Context, entities.MeetingFilter) ([]entities.Meeting, error) {
	return nil, errors.New("backend down")
}

func (failingBackend) GetCommitments(context.Context, entities.CommitmentFilter) ([]entities.Commitment, error) {
	return []entities.Commitment{}, nil
}

func TestInsightsService_LoadError(t *testing.T) {
	svc := NewInsightsService(failingBackend{}, nil)
	if _, err := svc.Overview(context.Background()); err == nil {
		t.Fatal("expected load error")
	}
}
