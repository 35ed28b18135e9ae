package memorybackend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetingmind/errors"
	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/domain/repositories"
)

// FailMarker in a meeting's notes makes the mock report the meeting as failed
const FailMarker = "[fail]"

// MockBackend is an in-memory memory backend for development and demos.
// Submitted meetings stay processing for the configured delay, then complete
// with two extracted commitments (one when there is a single participant).
type MockBackend struct {
	mu          sync.Mutex
	meetings    map[string]*mockMeeting
	commitments map[string]*entities.Commitment

	processingDelay time.Duration
	tokenDelay      time.Duration
	now             func() time.Time
	logger          *zap.Logger
}

type mockMeeting struct {
	meeting entities.Meeting
	readyAt time.Time
}

var _ repositories.MemoryBackend = (*MockBackend)(nil)

// MockOption configures a MockBackend
type MockOption func(*MockBackend)

// WithProcessingDelay sets how long submitted meetings stay processing
func WithProcessingDelay(d time.Duration) MockOption {
	return func(m *MockBackend) { m.processingDelay = d }
}

// WithTokenDelay sets the pause between streamed briefing tokens
func WithTokenDelay(d time.Duration) MockOption {
	return func(m *MockBackend) { m.tokenDelay = d }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) MockOption {
	return func(m *MockBackend) { m.now = now }
}

// WithMockLogger attaches a logger
func WithMockLogger(l *zap.Logger) MockOption {
	return func(m *MockBackend) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewMockBackend creates an empty mock backend
func NewMockBackend(opts ...MockOption) *MockBackend {
	m := &MockBackend{
		meetings:        make(map[string]*mockMeeting),
		commitments:     make(map[string]*entities.Commitment),
		processingDelay: 3 * time.Second,
		tokenDelay:      20 * time.Millisecond,
		now:             time.Now,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SubmitMeeting stores the meeting as processing
func (m *MockBackend) SubmitMeeting(_ context.Context, input entities.MeetingInput) (*entities.SubmitResult, error) {
	if input.Title == "" || len(input.Participants) == 0 {
		return nil, errors.ErrMeetingSubmitFailed(
			errors.ErrBackendRejected("submit meeting", 422, "title and participants are required"))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.insertLocked(input, m.now().Add(m.processingDelay))

	m.logger.Info("📥 Mock meeting accepted",
		zap.String("meeting_id", id),
		zap.Duration("processing_delay", m.processingDelay),
	)
	return &entities.SubmitResult{MeetingID: id, Status: entities.MeetingStatusProcessing}, nil
}

// GetMeeting returns one meeting, settling it first if its processing time
// has elapsed
func (m *MockBackend) GetMeeting(_ context.Context, id string) (*entities.Meeting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settleLocked()

	mm, ok := m.meetings[id]
	if !ok {
		return nil, errors.ErrMeetingNotFound(id)
	}
	return mm.meeting.Clone(), nil
}

// GetMeetings lists meetings newest first. The participant filter is a
// case-insensitive substring match.
func (m *MockBackend) GetMeetings(_ context.Context, filter entities.MeetingFilter) ([]entities.Meeting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settleLocked()

	needle := strings.ToLower(filter.Participant)
	out := make([]entities.Meeting, 0, len(m.meetings))
	for _, mm := range m.meetings {
		if needle != "" && !anyContains(mm.meeting.Participants, needle) {
			continue
		}
		out = append(out, *mm.meeting.Clone())
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].MeetingDate.Equal(out[b].MeetingDate) {
			return out[a].ID < out[b].ID
		}
		return out[a].MeetingDate.After(out[b].MeetingDate)
	})
	return out, nil
}

// GetCommitments lists commitments ordered by due date (creation time when
// undated). Contact is a case-insensitive substring match on owner or
// recipient.
func (m *MockBackend) GetCommitments(_ context.Context, filter entities.CommitmentFilter) ([]entities.Commitment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settleLocked()

	needle := strings.ToLower(filter.Contact)
	out := make([]entities.Commitment, 0, len(m.commitments))
	for _, c := range m.commitments {
		if filter.Status != "" && filter.Status != entities.StatusFilterAll && string(c.Status) != filter.Status {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(c.Owner), needle) &&
			!strings.Contains(strings.ToLower(c.Recipient), needle) {
			continue
		}
		out = append(out, *c)
	}
	sort.SliceStable(out, func(a, b int) bool {
		ka, kb := sortKey(&out[a]), sortKey(&out[b])
		if ka.Equal(kb) {
			return out[a].ID < out[b].ID
		}
		return ka.Before(kb)
	})
	return out, nil
}

// UpdateCommitment applies a status and/or due date change
func (m *MockBackend) UpdateCommitment(_ context.Context, id string, update entities.CommitmentUpdate) (*entities.Commitment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.commitments[id]
	if !ok {
		return nil, errors.ErrCommitmentNotFound(id)
	}
	if update.Status != nil {
		if !update.Status.IsValid() {
			return nil, errors.ErrCommitmentUpdateFailed(id, entities.ErrInvalidStatus)
		}
		c.Status = *update.Status
		c.CompletedAt = nil
		if c.Status == entities.CommitmentStatusCompleted {
			now := m.now().UTC()
			c.CompletedAt = &now
		}
	}
	if update.DueDate != nil {
		due := *update.DueDate
		c.DueDate = &due
	}
	out := *c
	return &out, nil
}

// SearchMemories matches every query word against completed meetings' title
// and notes
func (m *MockBackend) SearchMemories(_ context.Context, query, contact string) ([]entities.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settleLocked()

	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return []entities.SearchResult{}, nil
	}
	contactNeedle := strings.ToLower(contact)

	out := make([]entities.SearchResult, 0)
	for _, mm := range m.meetings {
		mt := mm.meeting
		if mt.Status != entities.MeetingStatusCompleted {
			continue
		}
		if contactNeedle != "" && !anyContains(mt.Participants, contactNeedle) {
			continue
		}
		haystack := strings.ToLower(mt.Title + "\n" + mt.Notes)
		if !containsAll(haystack, words) {
			continue
		}
		summary := ""
		if mt.Summary != nil {
			summary = *mt.Summary
		}
		out = append(out, entities.SearchResult{
			Content:      summary,
			MeetingTitle: mt.Title,
			MeetingDate:  mt.MeetingDate,
			Participants: append([]string(nil), mt.Participants...),
			MemoryType:   "episodic_memory",
		})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].MeetingDate.After(out[b].MeetingDate)
	})
	return out, nil
}

// OpenBriefingStream streams a canned briefing as token events then done
func (m *MockBackend) OpenBriefingStream(ctx context.Context, contact string) (repositories.Subscription, error) {
	if contact == "" {
		return nil, errors.ErrInvalidArgument("contact is required")
	}

	payloads := make([]string, 0, 64)
	for _, chunk := range briefingChunks(contact) {
		data, err := json.Marshal(entities.BriefingEvent{Type: entities.BriefingEventToken, Content: chunk})
		if err != nil {
			return nil, errors.ErrBriefingStreamFailed(contact, err)
		}
		payloads = append(payloads, string(data))
	}
	done, _ := json.Marshal(entities.BriefingEvent{Type: entities.BriefingEventDone})
	payloads = append(payloads, string(done))

	m.logger.Info("📡 Mock briefing stream opened", zap.String("contact", contact))
	return newScriptedSubscription(ctx, payloads, m.tokenDelay), nil
}

// Health always succeeds
func (m *MockBackend) Health(context.Context) error {
	return nil
}

// Seed loads demo meetings that are already completed
func (m *MockBackend) Seed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(demoMeetings))
	now := m.now()
	for _, input := range demoMeetings {
		ids = append(ids, m.insertLocked(input, now))
	}
	m.settleLocked()

	m.logger.Info("🌱 Seeded demo meetings", zap.Int("count", len(ids)))
	return ids
}

func (m *MockBackend) insertLocked(input entities.MeetingInput, readyAt time.Time) string {
	id := uuid.NewString()
	m.meetings[id] = &mockMeeting{
		meeting: entities.Meeting{
			ID:           id,
			Title:        input.Title,
			Participants: append([]string(nil), input.Participants...),
			MeetingDate:  input.MeetingDate,
			Notes:        input.Notes,
			Status:       entities.MeetingStatusProcessing,
			CreatedAt:    m.now().UTC(),
		},
		readyAt: readyAt,
	}
	return id
}

// settleLocked finishes processing for every meeting whose delay has passed
func (m *MockBackend) settleLocked() {
	now := m.now()
	for id, mm := range m.meetings {
		if mm.meeting.Status != entities.MeetingStatusProcessing || now.Before(mm.readyAt) {
			continue
		}
		if strings.Contains(mm.meeting.Notes, FailMarker) {
			mm.meeting.Status = entities.MeetingStatusFailed
			m.logger.Warn("⚠️ Mock meeting processing failed", zap.String("meeting_id", id))
			continue
		}
		for _, c := range extractCommitments(&mm.meeting, now.UTC()) {
			m.commitments[c.ID] = &c
		}
		summary := fmt.Sprintf("%s with %s.", mm.meeting.Title, strings.Join(mm.meeting.Participants, ", "))
		mm.meeting.Summary = &summary
		mm.meeting.Status = entities.MeetingStatusCompleted
		m.logger.Info("✅ Mock meeting processed", zap.String("meeting_id", id))
	}
}

// extractCommitments stands in for backend extraction
func extractCommitments(meeting *entities.Meeting, now time.Time) []entities.Commitment {
	base := entities.Commitment{
		Direction:    entities.DirectionOwedToMe,
		Status:       entities.CommitmentStatusPending,
		MeetingID:    meeting.ID,
		MeetingTitle: meeting.Title,
		CreatedAt:    now,
	}

	p := meeting.Participants
	if len(p) < 2 {
		c := base
		c.ID = uuid.NewString()
		c.Description = "Follow up on action items from meeting"
		c.Owner = p[0]
		c.Recipient = "Team"
		return []entities.Commitment{c}
	}

	first := base
	first.ID = uuid.NewString()
	first.Description = fmt.Sprintf("Share meeting summary with %s", p[1])
	first.Owner = p[0]
	first.Recipient = p[1]

	second := base
	second.ID = uuid.NewString()
	second.Description = "Review and send feedback on the discussed proposal"
	second.Owner = p[1]
	second.Recipient = p[0]
	due := meeting.MeetingDate.AddDate(0, 0, 14)
	second.DueDate = &due

	return []entities.Commitment{first, second}
}

// briefingChunks splits the canned briefing into word-sized tokens
func briefingChunks(contact string) []string {
	text := fmt.Sprintf("## Last Meeting Summary\n\nYou last met with %[1]s to discuss project progress. "+
		"Key topics included timeline adjustments and resource allocation.\n\n"+
		"## Open Commitments\n\nReview the pending items between you and %[1]s before the next meeting.\n\n"+
		"## Relationship Profile\n\n%[1]s prefers data-driven discussions and values concise updates.\n", contact)

	chunks := make([]string, 0, 64)
	start := 0
	for i, r := range text {
		if r == ' ' || r == '\n' {
			chunks = append(chunks, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		chunks = append(chunks, text[start:])
	}
	return chunks
}

func sortKey(c *entities.Commitment) time.Time {
	if c.DueDate != nil {
		return *c.DueDate
	}
	return c.CreatedAt
}

func anyContains(names []string, needle string) bool {
	for _, n := range names {
		if strings.Contains(strings.ToLower(n), needle) {
			return true
		}
	}
	return false
}

func containsAll(haystack string, words []string) bool {
	for _, w := range words {
		if !strings.Contains(haystack, w) {
			return false
		}
	}
	return true
}

// scriptedSubscription replays fixed payloads with a delay between them
type scriptedSubscription struct {
	ctx      context.Context
	payloads []string
	delay    time.Duration

	mu     sync.Mutex
	next   int
	closed chan struct{}
	once   sync.Once
}

func newScriptedSubscription(ctx context.Context, payloads []string, delay time.Duration) *scriptedSubscription {
	return &scriptedSubscription{
		ctx:      ctx,
		payloads: payloads,
		delay:    delay,
		closed:   make(chan struct{}),
	}
}

func (s *scriptedSubscription) Next() (string, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-s.closed:
			return "", io.ErrClosedPipe
		case <-s.ctx.Done():
			return "", s.ctx.Err()
		}
	}

	select {
	case <-s.closed:
		return "", io.ErrClosedPipe
	case <-s.ctx.Done():
		return "", s.ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.payloads) {
		return "", io.EOF
	}
	p := s.payloads[s.next]
	s.next++
	return p, nil
}

func (s *scriptedSubscription) Close() error {
	s.once.Do(func() { close(s.closed) })
	return nil
}
