package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/infrastructure/cache"
	"github.com/johnquangdev/meetingmind/internal/infrastructure/external/memorybackend"
)

func newTestRegistry(t *testing.T, src Source) (*Registry, cache.Store) {
	t.Helper()
	store := cache.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	reg := NewRegistry(src, store,
		WithPollInterval(5*time.Millisecond),
		WithSnapshotTTL(time.Minute),
		WithRegistryLogger(zaptest.NewLogger(t)),
	)
	t.Cleanup(reg.Close)
	return reg, store
}

func TestRegistry_TracksToCompletion(t *testing.T) {
	ctx := context.Background()
	backend := memorybackend.NewMockBackend(memorybackend.WithProcessingDelay(30 * time.Millisecond))
	res, err := backend.SubmitMeeting(ctx, entities.MeetingInput{
		Title:        "Weekly sync",
		Participants: []string{"Alice", "Bob"},
		MeetingDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Notes:        "notes",
	})
	if err != nil {
		t.Fatal(err)
	}

	reg, _ := newTestRegistry(t, backend)
	if _, err := reg.Track(res.MeetingID); err != nil {
		t.Fatalf("track: %v", err)
	}
	if _, err := reg.Track(res.MeetingID); err != nil {
		t.Fatalf("track again: %v", err)
	}
	if reg.Active() != 1 {
		t.Fatalf("expected one live tracker, got %d", reg.Active())
	}

	records, stop, ok := reg.Watch(res.MeetingID)
	if !ok {
		t.Fatal("meeting should be watchable while tracked")
	}
	defer stop()

	var last Record
	timeout := time.After(3 * time.Second)
	for open := true; open; {
		select {
		case rec, more := <-records:
			if !more {
				open = false
				continue
			}
			last = rec
		case <-timeout:
			t.Fatal("watch channel was not closed")
		}
	}

	if !last.Terminal || last.Meeting == nil || last.Meeting.Status != entities.MeetingStatusCompleted {
		t.Fatalf("last record not terminal: %+v", last)
	}
	if len(last.Commitments) != 2 {
		t.Fatalf("expected 2 commitments, got %d", len(last.Commitments))
	}

	deadline := time.Now().Add(time.Second)
	for reg.Active() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if reg.Active() != 0 {
		t.Fatal("finished tracker was not removed")
	}

	cached, found, err := reg.Status(ctx, res.MeetingID)
	if err != nil || !found {
		t.Fatalf("expected cached record, got found=%v err=%v", found, err)
	}
	if cached.State != StateTerminal.String() || len(cached.Commitments) != 2 {
		t.Fatalf("unexpected cached record %+v", cached)
	}
}

func TestRegistry_StatusOfUnknownMeeting(t *testing.T) {
	reg, _ := newTestRegistry(t, &fakeSource{scripts: map[string]*script{}})
	if _, found, err := reg.Status(context.Background(), "nope"); err != nil || found {
		t.Fatalf("expected miss, got found=%v err=%v", found, err)
	}
	if _, _, ok := reg.Watch("nope"); ok {
		t.Fatal("untracked meeting should not be watchable")
	}
}

func TestRegistry_CachesLoadError(t *testing.T) {
	reg, _ := newTestRegistry(t, &fakeSource{scripts: map[string]*script{}})
	if _, err := reg.Track("missing"); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		rec, found, err := reg.Status(context.Background(), "missing")
		if err != nil {
			t.Fatal(err)
		}
		if found && rec.Error != "" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("load error never recorded: %+v", rec)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRegistry_Close(t *testing.T) {
	src := &fakeSource{scripts: map[string]*script{"m1": statuses(processing)}}
	reg, _ := newTestRegistry(t, src)

	if _, err := reg.Track("m1"); err != nil {
		t.Fatal(err)
	}
	reg.Close()
	reg.Close()

	if reg.Active() != 0 {
		t.Fatalf("trackers left after close: %d", reg.Active())
	}
	if _, err := reg.Track("m1"); !errors.Is(err, ErrRegistryClosed) {
		t.Fatalf("expected ErrRegistryClosed, got %v", err)
	}
	if _, err := reg.Track(""); !errors.Is(err, entities.ErrEmptyMeetingID) {
		t.Fatalf("expected ErrEmptyMeetingID, got %v", err)
	}
}
