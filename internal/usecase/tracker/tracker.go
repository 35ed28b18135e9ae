// Package tracker follows a submitted meeting from processing to a terminal
// status by polling the memory backend at a fixed interval.
package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/usecase/aggregation"
)

// DefaultInterval is the probe period used when no interval is configured
const DefaultInterval = 2 * time.Second

// ErrTrackerDisposed is returned by Start once Dispose has been called
var ErrTrackerDisposed = errors.New("tracker: disposed")

// Source is the slice of the backend client the tracker needs
type Source interface {
	GetMeeting(ctx context.Context, id string) (*entities.Meeting, error)
	GetCommitments(ctx context.Context, filter entities.CommitmentFilter) ([]entities.Commitment, error)
}

// State of a tracker run
type State int

const (
	StateIdle     State = iota // Nothing loaded, or the meeting was already terminal on first fetch
	StateActive                // Meeting is processing, probes are running
	StateTerminal              // A probe observed completed or failed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateTerminal:
		return "terminal"
	}
	return "unknown"
}

// Snapshot is what subscribers observe after every applied update
type Snapshot struct {
	MeetingID      string
	Meeting        *entities.Meeting
	Commitments    []entities.Commitment
	State          State
	Terminal       bool
	Err            error // initial load failure
	CommitmentsErr error // follow-up fetch failure
	UpdatedAt      time.Time
}

func (s Snapshot) clone() Snapshot {
	c := s
	c.Meeting = s.Meeting.Clone()
	if s.Commitments != nil {
		c.Commitments = append([]entities.Commitment(nil), s.Commitments...)
	}
	return c
}

// Option configures a Tracker
type Option func(*Tracker)

// WithInterval overrides the probe period
func WithInterval(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithLogger attaches a logger
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// Tracker owns at most one poll loop at a time.
//
// Every state mutation and every subscriber notification is preceded by a
// generation check, so responses that arrive after Cancel (or after a newer
// Start) are dropped. Subscribers run on the poll goroutine and may call
// Snapshot, Subscribe and Stop. Cancel, Start and Dispose wait for a running
// subscriber, so calling them from one deadlocks.
type Tracker struct {
	id       string
	source   Source
	interval time.Duration
	logger   *zap.Logger

	// ctl serializes Start, Cancel and Dispose
	ctl sync.Mutex

	mu         sync.Mutex
	idle       *sync.Cond // signalled when a subscriber returns
	delivering bool
	gen        uint64
	snap     Snapshot
	stop     context.CancelFunc
	done     chan struct{}
	disposed bool
	subs     map[uint64]func(Snapshot)
	nextSub  uint64
}

// New creates an idle tracker
func New(source Source, opts ...Option) *Tracker {
	t := &Tracker{
		id:       uuid.NewString(),
		source:   source,
		interval: DefaultInterval,
		logger:   zap.NewNop(),
		subs:     make(map[uint64]func(Snapshot)),
	}
	t.idle = sync.NewCond(&t.mu)
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With(zap.String("tracker_id", t.id))
	return t
}

// ID identifies this tracker instance in logs
func (t *Tracker) ID() string {
	return t.id
}

// Start begins tracking meetingID, cancelling any loop already running.
// The initial fetch happens asynchronously; observe it through Subscribe.
func (t *Tracker) Start(ctx context.Context, meetingID string) error {
	if meetingID == "" {
		return entities.ErrEmptyMeetingID
	}

	t.ctl.Lock()
	defer t.ctl.Unlock()

	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()
		return ErrTrackerDisposed
	}
	if t.stop != nil {
		t.logger.Info("🔁 Superseding running tracker loop",
			zap.String("previous_meeting_id", t.snap.MeetingID),
			zap.String("meeting_id", meetingID),
		)
	}
	t.cancelLocked()
	t.awaitLocked()

	runCtx, stop := context.WithCancel(ctx)
	gen := t.gen
	done := make(chan struct{})
	t.stop = stop
	t.done = done
	t.snap = Snapshot{MeetingID: meetingID, State: StateIdle, UpdatedAt: time.Now()}
	t.mu.Unlock()

	go t.run(runCtx, gen, meetingID, done)
	return nil
}

// Cancel stops the current loop. After it returns no probe is issued, no
// in-flight response is applied and no subscriber is running. Safe to call
// repeatedly or when idle.
func (t *Tracker) Cancel() {
	t.ctl.Lock()
	defer t.ctl.Unlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
	t.awaitLocked()
}

// Stop is Cancel for subscribers: it does not wait for the notification
// that is calling it.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
}

// Dispose cancels the loop, drops all subscribers, and waits for the poll
// goroutine to exit. The tracker cannot be started again.
func (t *Tracker) Dispose() {
	t.ctl.Lock()
	defer t.ctl.Unlock()

	t.mu.Lock()
	t.disposed = true
	t.cancelLocked()
	t.subs = make(map[uint64]func(Snapshot))
	done := t.done
	t.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Subscribe registers fn for snapshot updates and returns its unsubscribe func
func (t *Tracker) Subscribe(fn func(Snapshot)) func() {
	t.mu.Lock()
	id := t.nextSub
	t.nextSub++
	t.subs[id] = fn
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.subs, id)
			t.mu.Unlock()
		})
	}
}

// Snapshot returns a copy of the last applied state
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snap.clone()
}

// Done is closed when the current run's goroutine exits. Before the first
// Start it is already closed.
func (t *Tracker) Done() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return t.done
}

func (t *Tracker) cancelLocked() {
	t.gen++
	if t.stop != nil {
		t.stop()
		t.stop = nil
	}
}

func (t *Tracker) awaitLocked() {
	for t.delivering {
		t.idle.Wait()
	}
}

// release frees the run context once a run ends on its own
func (t *Tracker) release(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen == t.gen && t.stop != nil {
		t.stop()
		t.stop = nil
	}
}

func (t *Tracker) current(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return gen == t.gen
}

// apply mutates the snapshot and notifies subscribers if gen is still current.
// Each notification starts under the same lock hold as its generation check.
// It returns false once the run has been superseded.
func (t *Tracker) apply(gen uint64, mutate func(*Snapshot)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen {
		return false
	}
	mutate(&t.snap)
	t.snap.UpdatedAt = time.Now()
	snap := t.snap
	subs := make([]func(Snapshot), 0, len(t.subs))
	for _, fn := range t.subs {
		subs = append(subs, fn)
	}

	for _, fn := range subs {
		if gen != t.gen {
			return false
		}
		t.notifyLocked(fn, snap.clone())
	}
	return gen == t.gen
}

// notifyLocked runs fn with mu released; Cancel waits for it to return
func (t *Tracker) notifyLocked(fn func(Snapshot), snap Snapshot) {
	t.delivering = true
	t.mu.Unlock()
	defer func() {
		t.mu.Lock()
		t.delivering = false
		t.idle.Broadcast()
	}()
	fn(snap)
}

func (t *Tracker) run(ctx context.Context, gen uint64, meetingID string, done chan struct{}) {
	defer close(done)
	defer t.release(gen)

	log := t.logger.With(zap.String("meeting_id", meetingID), zap.Uint64("generation", gen))

	meeting, err := t.source.GetMeeting(ctx, meetingID)
	if err != nil {
		if t.apply(gen, func(s *Snapshot) { s.Err = err }) {
			log.Warn("⚠️ Initial meeting fetch failed", zap.Error(err))
		}
		return
	}

	if !t.apply(gen, func(s *Snapshot) {
		s.Meeting = meeting
		s.Terminal = meeting.Status.IsTerminal()
		if meeting.Status == entities.MeetingStatusProcessing {
			s.State = StateActive
		}
	}) {
		return
	}

	switch meeting.Status {
	case entities.MeetingStatusProcessing:
		log.Info("🚀 Tracking meeting", zap.Duration("interval", t.interval))
		t.poll(ctx, gen, meetingID, log)
	case entities.MeetingStatusCompleted:
		t.fetchCommitments(ctx, gen, meetingID, log)
	default:
		log.Info("Meeting already terminal", zap.String("status", string(meeting.Status)))
	}
}

// poll probes sequentially; a slow response delays the next probe and missed
// ticks are coalesced by the ticker.
func (t *Tracker) poll(ctx context.Context, gen uint64, meetingID string, log *zap.Logger) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if !t.current(gen) {
			return
		}

		meeting, err := t.source.GetMeeting(ctx, meetingID)
		if err != nil {
			if !t.current(gen) {
				return
			}
			// No cap: keep probing until terminal or cancelled.
			failures++
			log.Warn("⚠️ Meeting probe failed, retrying on next tick",
				zap.Int("consecutive_failures", failures),
				zap.Error(err),
			)
			continue
		}
		failures = 0

		terminal := meeting.Status.IsTerminal()
		if !t.apply(gen, func(s *Snapshot) {
			s.Meeting = meeting
			if terminal {
				s.State = StateTerminal
				s.Terminal = true
			}
		}) {
			return
		}
		if !terminal {
			continue
		}

		log.Info("✅ Meeting reached terminal status", zap.String("status", string(meeting.Status)))
		if meeting.Status == entities.MeetingStatusCompleted {
			t.fetchCommitments(ctx, gen, meetingID, log)
		}
		return
	}
}

// fetchCommitments is the single follow-up after completion
func (t *Tracker) fetchCommitments(ctx context.Context, gen uint64, meetingID string, log *zap.Logger) {
	all, err := t.source.GetCommitments(ctx, entities.CommitmentFilter{})
	var mine []entities.Commitment
	if err == nil {
		mine = aggregation.FilterByMeeting(all, meetingID)
	}
	applied := t.apply(gen, func(s *Snapshot) {
		if err != nil {
			s.CommitmentsErr = err
			return
		}
		s.Commitments = mine
	})
	if !applied {
		return
	}
	if err != nil {
		log.Warn("⚠️ Commitment follow-up fetch failed", zap.Error(err))
		return
	}
	log.Info("✅ Loaded meeting commitments", zap.Int("count", len(mine)))
}
