package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetingmind/internal/adapter/dto"
	"github.com/johnquangdev/meetingmind/internal/adapter/presenter"
	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/usecase/insights"
)

// Contact serves contact rollups and the dashboard
type Contact struct {
	insights insights.Service
	logger   *zap.Logger
	now      func() time.Time
}

// NewContactHandler creates a new contact handler
func NewContactHandler(svc insights.Service, logger *zap.Logger) *Contact {
	return &Contact{
		insights: svc,
		logger:   logger,
		now:      time.Now,
	}
}

// ListContacts handles GET /contacts
// @Summary      List contacts
// @Description  One summary per participant, most met first
// @Tags         Contacts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   entities.ContactSummary
// @Router       /contacts [get]
func (h *Contact) ListContacts(c echo.Context) error {
	contacts, err := h.insights.Contacts(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if contacts == nil {
		contacts = []entities.ContactSummary{}
	}
	return HandleSuccess(h.logger, c, contacts)
}

// GetContact handles GET /contacts/:name
// @Summary      Get contact timeline
// @Tags         Contacts
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Exact contact name"
// @Success      200   {object}  dto.ContactTimelineResponse
// @Failure      404   {object}  map[string]interface{}  "Contact not found"
// @Router       /contacts/{name} [get]
func (h *Contact) GetContact(c echo.Context) error {
	var req dto.ContactNameRequest
	if err := bind(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	view, err := h.insights.Contact(c.Request().Context(), req.Name)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	now := h.now()
	return HandleSuccess(h.logger, c, dto.ContactTimelineResponse{
		Name:                 view.Timeline.Name,
		Summary:              view.Summary,
		Meetings:             presenter.ToMeetingListResponse(view.Timeline.Meetings),
		OpenCommitments:      presenter.ToCommitmentListResponse(view.Timeline.OpenCommitments, now),
		CompletedCommitments: presenter.ToCommitmentListResponse(view.Timeline.CompletedCommitments, now),
	})
}

// Dashboard handles GET /dashboard
// @Summary      Dashboard
// @Description  Meeting and pending commitment counts, recent meetings and top contacts
// @Tags         Contacts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DashboardResponse
// @Router       /dashboard [get]
func (h *Contact) Dashboard(c echo.Context) error {
	view, err := h.insights.Overview(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	contacts := view.Contacts
	if contacts == nil {
		contacts = []string{}
	}
	top := view.TopContacts
	if top == nil {
		top = []entities.ContactSummary{}
	}
	return HandleSuccess(h.logger, c, dto.DashboardResponse{
		MeetingCount:       view.MeetingCount,
		PendingCommitments: view.PendingCommitments,
		RecentMeetings:     presenter.ToMeetingListResponse(view.RecentMeetings),
		Contacts:           contacts,
		TopContacts:        top,
	})
}
