package insights

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/domain/repositories"
	"github.com/johnquangdev/meetingmind/internal/usecase/aggregation"
	usecaseErrors "github.com/johnquangdev/meetingmind/internal/usecase/errors"
)

// topContactLimit is how many contacts the overview ranks
const topContactLimit = 5

// Backend is the slice of the backend client the service reads from
type Backend interface {
	GetMeetings(ctx context.Context, filter entities.MeetingFilter) ([]entities.Meeting, error)
	GetCommitments(ctx context.Context, filter entities.CommitmentFilter) ([]entities.Commitment, error)
}

var _ Backend = (repositories.MemoryBackend)(nil)

// InsightsService handles contact and dashboard aggregation
type InsightsService struct {
	backend Backend
	logger  *zap.Logger
}

// NewInsightsService creates a new insights service
func NewInsightsService(backend Backend, logger *zap.Logger) *InsightsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightsService{
		backend: backend,
		logger:  logger,
	}
}

// Contacts returns one summary per participant, most met first
func (s *InsightsService) Contacts(ctx context.Context) ([]entities.ContactSummary, error) {
	meetings, commitments, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return aggregation.ComputeContactSummaries(meetings, commitments), nil
}

// Contact returns the timeline and summary of one contact. Names match
// exactly; an unknown name yields ErrContactNotFound.
func (s *InsightsService) Contact(ctx context.Context, name string) (*ContactView, error) {
	if name == "" {
		return nil, entities.ErrEmptyContact
	}

	meetings, commitments, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	timeline := aggregation.ContactTimeline(name, meetings, commitments)
	if len(timeline.Meetings) == 0 && len(timeline.OpenCommitments) == 0 && len(timeline.CompletedCommitments) == 0 {
		return nil, usecaseErrors.ErrContactNotFound
	}

	view := &ContactView{Timeline: timeline}
	for _, summary := range aggregation.ComputeContactSummaries(meetings, commitments) {
		if summary.Name == name {
			view.Summary = &summary
			break
		}
	}
	return view, nil
}

// Overview returns the dashboard numbers and the top contacts
func (s *InsightsService) Overview(ctx context.Context) (*OverviewView, error) {
	meetings, commitments, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	top := aggregation.ComputeContactSummaries(meetings, commitments)
	if len(top) > topContactLimit {
		top = top[:topContactLimit]
	}
	return &OverviewView{
		Overview:    aggregation.BuildOverview(meetings, commitments),
		TopContacts: top,
	}, nil
}

// Commitments asks the backend for a coarse match, then applies the exact
// filter locally
func (s *InsightsService) Commitments(ctx context.Context, filter entities.CommitmentFilter) ([]entities.Commitment, error) {
	commitments, err := s.backend.GetCommitments(ctx, filter)
	if err != nil {
		return nil, err
	}
	return aggregation.FilterCommitments(commitments, filter), nil
}

// load fetches both collections concurrently
func (s *InsightsService) load(ctx context.Context) ([]entities.Meeting, []entities.Commitment, error) {
	var (
		meetings    []entities.Meeting
		commitments []entities.Commitment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		meetings, err = s.backend.GetMeetings(gctx, entities.MeetingFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		commitments, err = s.backend.GetCommitments(gctx, entities.CommitmentFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("⚠️ Failed to load collections for aggregation", zap.Error(err))
		return nil, nil, err
	}

	s.logger.Debug("Loaded collections",
		zap.Int("meetings", len(meetings)),
		zap.Int("commitments", len(commitments)),
	)
	return meetings, commitments, nil
}
