// Package insights combines independently fetched meetings and commitments
// into contact and dashboard views.
package insights

import (
	"context"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

// Service defines the interface for the insights use case
type Service interface {
	// Contacts returns one summary per participant, most met first
	Contacts(ctx context.Context) ([]entities.ContactSummary, error)

	// Contact returns the timeline and summary of one contact
	Contact(ctx context.Context, name string) (*ContactView, error)

	// Overview returns the dashboard numbers and the top contacts
	Overview(ctx context.Context) (*OverviewView, error)

	// Commitments lists commitments with exact contact matching
	Commitments(ctx context.Context, filter entities.CommitmentFilter) ([]entities.Commitment, error)
}

// ContactView is everything known about one contact
type ContactView struct {
	Timeline entities.ContactTimeline
	Summary  *entities.ContactSummary
}

// OverviewView is the dashboard
type OverviewView struct {
	entities.Overview
	TopContacts []entities.ContactSummary
}

// Ensure InsightsService implements Service interface
var _ Service = (*InsightsService)(nil)
