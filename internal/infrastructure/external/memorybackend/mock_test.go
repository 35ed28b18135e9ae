package memorybackend

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/johnquangdev/meetingmind/errors"
	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMockBackend_Lifecycle(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	mb := NewMockBackend(WithProcessingDelay(5*time.Second), WithClock(clock.Now))

	res, err := mb.SubmitMeeting(ctx, entities.MeetingInput{
		Title:        "Weekly sync",
		Participants: []string{"Alice", "Bob"},
		MeetingDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Notes:        "Alice will send the deck.",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	m, err := mb.GetMeeting(ctx, res.MeetingID)
	if err != nil || m.Status != entities.MeetingStatusProcessing {
		t.Fatalf("expected processing, got %+v %v", m, err)
	}
	if cs, _ := mb.GetCommitments(ctx, entities.CommitmentFilter{}); len(cs) != 0 {
		t.Fatalf("no commitments before processing completes, got %d", len(cs))
	}

	clock.Advance(5 * time.Second)

	m, err = mb.GetMeeting(ctx, res.MeetingID)
	if err != nil || m.Status != entities.MeetingStatusCompleted {
		t.Fatalf("expected completed, got %+v %v", m, err)
	}
	if m.Summary == nil {
		t.Fatal("expected summary after completion")
	}

	cs, err := mb.GetCommitments(ctx, entities.CommitmentFilter{Contact: "bob"})
	if err != nil {
		t.Fatal(err)
	}
	if len(cs) != 2 {
		t.Fatalf("expected 2 commitments, got %d", len(cs))
	}
	for _, c := range cs {
		if c.MeetingID != res.MeetingID || c.Status != entities.CommitmentStatusPending {
			t.Fatalf("unexpected commitment %+v", c)
		}
	}

	done := entities.CommitmentStatusCompleted
	updated, err := mb.UpdateCommitment(ctx, cs[0].ID, entities.CommitmentUpdate{Status: &done})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.CompletedAt == nil {
		t.Fatal("completed_at should be set")
	}
	pending, _ := mb.GetCommitments(ctx, entities.CommitmentFilter{Status: "pending"})
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending, got %d", len(pending))
	}
}

func TestMockBackend_FailedMeeting(t *testing.T) {
	ctx := context.Background()
	mb := NewMockBackend(WithProcessingDelay(0))

	res, err := mb.SubmitMeeting(ctx, entities.MeetingInput{
		Title:        "Broken",
		Participants: []string{"Alice"},
		MeetingDate:  time.Now(),
		Notes:        "this one " + FailMarker,
	})
	if err != nil {
		t.Fatal(err)
	}
	m, _ := mb.GetMeeting(ctx, res.MeetingID)
	if m.Status != entities.MeetingStatusFailed {
		t.Fatalf("expected failed, got %s", m.Status)
	}
	if cs, _ := mb.GetCommitments(ctx, entities.CommitmentFilter{}); len(cs) != 0 {
		t.Fatalf("failed meeting must not produce commitments, got %d", len(cs))
	}
}

func TestMockBackend_NotFound(t *testing.T) {
	mb := NewMockBackend()
	if _, err := mb.GetMeeting(context.Background(), "nope"); !errors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := mb.UpdateCommitment(context.Background(), "nope", entities.CommitmentUpdate{}); !errors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMockBackend_SeedAndSearch(t *testing.T) {
	ctx := context.Background()
	mb := NewMockBackend()
	ids := mb.Seed()
	if len(ids) != len(demoMeetings) {
		t.Fatalf("expected %d seeded meetings, got %d", len(demoMeetings), len(ids))
	}

	meetings, _ := mb.GetMeetings(ctx, entities.MeetingFilter{})
	for i := 1; i < len(meetings); i++ {
		if meetings[i].MeetingDate.After(meetings[i-1].MeetingDate) {
			t.Fatal("meetings not sorted newest first")
		}
	}
	for _, m := range meetings {
		if m.Status != entities.MeetingStatusCompleted {
			t.Fatalf("seeded meeting %s not completed", m.ID)
		}
	}

	alice, _ := mb.GetMeetings(ctx, entities.MeetingFilter{Participant: "alice"})
	if len(alice) != 2 {
		t.Fatalf("expected 2 meetings with Alice, got %d", len(alice))
	}

	results, err := mb.SearchMemories(ctx, "redis", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].MeetingTitle != "Product Roadmap Review with Alice" {
		t.Fatalf("unexpected results %+v", results)
	}

	none, _ := mb.SearchMemories(ctx, "redis", "Frank")
	if len(none) != 0 {
		t.Fatalf("contact filter ignored: %+v", none)
	}
}

func TestMockBackend_BriefingStream(t *testing.T) {
	mb := NewMockBackend(WithTokenDelay(0))
	sub, err := mb.OpenBriefingStream(context.Background(), "Alice")
	if err != nil {
		t.Fatal(err)
	}
	defer sub.Close()

	var text strings.Builder
	sawDone := false
	for {
		p, err := sub.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		var ev entities.BriefingEvent
		if err := json.Unmarshal([]byte(p), &ev); err != nil {
			t.Fatalf("bad payload %q: %v", p, err)
		}
		if ev.Type == entities.BriefingEventDone {
			sawDone = true
			continue
		}
		if sawDone {
			t.Fatal("token after done")
		}
		text.WriteString(ev.Content)
	}
	if !sawDone {
		t.Fatal("stream ended without done")
	}
	if want := briefingChunks("Alice"); text.String() != strings.Join(want, "") {
		t.Fatalf("tokens do not reassemble the briefing")
	}
}

func TestScriptedSubscription_Close(t *testing.T) {
	sub := newScriptedSubscription(context.Background(), []string{"a", "b"}, time.Hour)

	errCh := make(chan error, 1)
	go func() {
		_, err := sub.Next()
		errCh <- err
	}()
	_ = sub.Close()
	_ = sub.Close()

	select {
	case err := <-errCh:
		if err != io.ErrClosedPipe {
			t.Fatalf("expected io.ErrClosedPipe, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Next did not unblock")
	}
}
