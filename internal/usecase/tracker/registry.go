package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meetingmind/errors"
	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/infrastructure/cache"
)

// ErrRegistryClosed is returned by Track once Close has been called
var ErrRegistryClosed = errors.New("tracker: registry closed")

const (
	defaultSnapshotTTL = time.Hour
	persistTimeout     = 5 * time.Second
	watchBuffer        = 8
)

// Record is the cached, JSON-friendly form of a Snapshot
type Record struct {
	MeetingID        string                `json:"meeting_id"`
	State            string                `json:"state"`
	Terminal         bool                  `json:"terminal"`
	Meeting          *entities.Meeting     `json:"meeting,omitempty"`
	Commitments      []entities.Commitment `json:"commitments,omitempty"`
	Error            string                `json:"error,omitempty"`
	CommitmentsError string                `json:"commitments_error,omitempty"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// RecordOf converts a snapshot for caching and transport
func RecordOf(s Snapshot) Record {
	r := Record{
		MeetingID:   s.MeetingID,
		State:       s.State.String(),
		Terminal:    s.Terminal,
		Meeting:     s.Meeting,
		Commitments: s.Commitments,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.Err != nil {
		r.Error = s.Err.Error()
	}
	if s.CommitmentsErr != nil {
		r.CommitmentsError = s.CommitmentsErr.Error()
	}
	return r
}

// RegistryOption configures a Registry
type RegistryOption func(*Registry)

// WithPollInterval sets the probe period of trackers created by the registry
func WithPollInterval(d time.Duration) RegistryOption {
	return func(r *Registry) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithSnapshotTTL sets how long the last record of a meeting stays cached
func WithSnapshotTTL(d time.Duration) RegistryOption {
	return func(r *Registry) {
		if d > 0 {
			r.ttl = d
		}
	}
}

// WithRegistryLogger attaches a logger
func WithRegistryLogger(l *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

type entry struct {
	tracker  *Tracker
	watchers map[uint64]chan Record
	nextID   uint64
}

// Registry owns one tracker per meeting on behalf of server clients. Every
// snapshot is written to the store, so status stays readable after the
// tracker finishes and is removed.
type Registry struct {
	source   Source
	store    cache.Store
	interval time.Duration
	ttl      time.Duration
	logger   *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	trackers map[string]*entry
	closed   bool
	wg       sync.WaitGroup
}

// NewRegistry creates an empty registry
func NewRegistry(source Source, store cache.Store, opts ...RegistryOption) *Registry {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Registry{
		source:   source,
		store:    store,
		interval: DefaultInterval,
		ttl:      defaultSnapshotTTL,
		logger:   zap.NewNop(),
		ctx:      ctx,
		cancel:   cancel,
		trackers: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Track starts tracking meetingID unless a tracker for it is already live,
// and returns its current record
func (r *Registry) Track(meetingID string) (Record, error) {
	if meetingID == "" {
		return Record{}, entities.ErrEmptyMeetingID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return Record{}, ErrRegistryClosed
	}
	if e, ok := r.trackers[meetingID]; ok {
		return RecordOf(e.tracker.Snapshot()), nil
	}

	tr := New(r.source, WithInterval(r.interval), WithLogger(r.logger))
	e := &entry{tracker: tr, watchers: make(map[uint64]chan Record)}
	tr.Subscribe(func(s Snapshot) { r.publish(meetingID, s) })
	if err := tr.Start(r.ctx, meetingID); err != nil {
		return Record{}, err
	}
	r.trackers[meetingID] = e

	r.wg.Add(1)
	go r.reap(meetingID, e, tr.Done())

	r.logger.Info("🚀 Registry tracking meeting",
		zap.String("meeting_id", meetingID),
		zap.String("tracker_id", tr.ID()),
	)
	return RecordOf(tr.Snapshot()), nil
}

// Status returns the live record of a tracked meeting, or the cached record
// of one tracked earlier. It reports false when neither exists.
func (r *Registry) Status(ctx context.Context, meetingID string) (Record, bool, error) {
	r.mu.Lock()
	if e, ok := r.trackers[meetingID]; ok {
		rec := RecordOf(e.tracker.Snapshot())
		r.mu.Unlock()
		return rec, true, nil
	}
	r.mu.Unlock()

	var rec Record
	found, err := cache.GetJSON(ctx, r.store, recordKey(meetingID), &rec)
	if err != nil {
		return Record{}, false, apperrors.ErrCacheFailed("read tracker record", err)
	}
	return rec, found, nil
}

// Watch subscribes to the records of a live tracker. The channel is closed
// when the tracker finishes; when watchers fall behind, older records are
// dropped in favour of newer ones. It reports false when meetingID is not
// being tracked.
func (r *Registry) Watch(meetingID string) (<-chan Record, func(), bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.trackers[meetingID]
	if !ok {
		return nil, func() {}, false
	}
	id := e.nextID
	e.nextID++
	ch := make(chan Record, watchBuffer)
	e.watchers[id] = ch

	var once sync.Once
	stop := func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			if w, ok := e.watchers[id]; ok {
				delete(e.watchers, id)
				close(w)
			}
		})
	}
	return ch, stop, true
}

// Active returns the number of live trackers
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.trackers)
}

// Close stops every tracker and waits for them to exit
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	entries := make([]*entry, 0, len(r.trackers))
	for _, e := range r.trackers {
		entries = append(entries, e)
	}
	r.mu.Unlock()

	r.cancel()
	for _, e := range entries {
		e.tracker.Dispose()
	}
	r.wg.Wait()
	r.logger.Info("✅ Tracker registry closed", zap.Int("trackers", len(entries)))
}

// publish runs on the tracker goroutine for every applied snapshot
func (r *Registry) publish(meetingID string, s Snapshot) {
	rec := RecordOf(s)

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := cache.SetJSON(ctx, r.store, recordKey(meetingID), rec, r.ttl); err != nil {
		r.logger.Error("Failed to cache tracker snapshot",
			zap.String("meeting_id", meetingID),
			zap.Error(err),
		)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.trackers[meetingID]
	if !ok {
		return
	}
	for _, ch := range e.watchers {
		select {
		case ch <- rec:
		default:
			// drop the oldest record to make room
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- rec:
			default:
			}
		}
	}
}

// reap removes a tracker once its run ends and closes its watchers
func (r *Registry) reap(meetingID string, e *entry, done <-chan struct{}) {
	defer r.wg.Done()
	<-done

	r.mu.Lock()
	if cur, ok := r.trackers[meetingID]; ok && cur == e {
		delete(r.trackers, meetingID)
	}
	for id, ch := range e.watchers {
		delete(e.watchers, id)
		close(ch)
	}
	r.mu.Unlock()

	e.tracker.Dispose()
	r.logger.Info("Registry tracker finished", zap.String("meeting_id", meetingID))
}

func recordKey(meetingID string) string {
	return "tracker:" + meetingID
}
