package validator

import (
	"errors"
	"testing"
	"time"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

func TestValidate_MeetingInput(t *testing.T) {
	v := New()

	valid := entities.MeetingInput{
		Title:        "Weekly sync",
		Participants: []string{"Alice", "Bob"},
		MeetingDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Notes:        "Alice will send the deck to Bob.",
	}
	if err := v.Validate(valid); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	noParticipants := valid
	noParticipants.Participants = nil
	err := v.Validate(noParticipants)
	if err == nil {
		t.Fatal("expected error for missing participants")
	}
	if got := Describe(err)["participants"]; got != "required" {
		t.Fatalf("participants rule: got %q", got)
	}
}

func TestValidate_CommitmentFilter(t *testing.T) {
	v := New()
	if err := v.Validate(entities.CommitmentFilter{Status: "pending", Contact: "Bob"}); err != nil {
		t.Fatalf("expected valid filter, got %v", err)
	}
	err := v.Validate(entities.CommitmentFilter{Status: "archived"})
	if err == nil {
		t.Fatal("expected error for unknown status")
	}
	if got := Describe(err)["status"]; got != "oneof=all pending completed overdue" {
		t.Fatalf("status rule: got %q", got)
	}
}

func TestDescribe_PlainError(t *testing.T) {
	got := Describe(errors.New("boom"))
	if got["error"] != "boom" {
		t.Fatalf("got %v", got)
	}
}
