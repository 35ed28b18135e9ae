package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetingmind/internal/adapter/dto"
	"github.com/johnquangdev/meetingmind/internal/adapter/presenter"
	"github.com/johnquangdev/meetingmind/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/meetingmind/internal/usecase/errors"
	"github.com/johnquangdev/meetingmind/internal/usecase/insights"
)

// Commitment handles commitment listing and edits
type Commitment struct {
	insights    insights.Service
	commitments repositories.CommitmentRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewCommitmentHandler creates a new commitment handler
func NewCommitmentHandler(svc insights.Service, commitments repositories.CommitmentRepository, logger *zap.Logger) *Commitment {
	return &Commitment{
		insights:    svc,
		commitments: commitments,
		logger:      logger,
		now:         time.Now,
	}
}

// ListCommitments handles GET /commitments
// @Summary      List commitments
// @Description  Lists commitments by status and exact contact name (owner or recipient)
// @Tags         Commitments
// @Produce      json
// @Security     BearerAuth
// @Param        status   query     string  false  "all, pending, completed or overdue"
// @Param        contact  query     string  false  "Contact name"
// @Success      200      {array}   dto.CommitmentResponse
// @Router       /commitments [get]
func (h *Commitment) ListCommitments(c echo.Context) error {
	var req dto.ListCommitmentsRequest
	if err := bind(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	commitments, err := h.insights.Commitments(c.Request().Context(), req.Filter())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToCommitmentListResponse(commitments, h.now()))
}

// UpdateCommitment handles PATCH /commitments/:id
// @Summary      Update commitment
// @Description  Marks a commitment pending or completed and/or changes its due date
// @Tags         Commitments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                       true  "Commitment ID"
// @Param        request  body      dto.UpdateCommitmentRequest  true  "Fields to change"
// @Success      200      {object}  dto.CommitmentResponse
// @Failure      400      {object}  map[string]interface{}  "Nothing to update"
// @Failure      404      {object}  map[string]interface{}  "Commitment not found"
// @Router       /commitments/{id} [patch]
func (h *Commitment) UpdateCommitment(c echo.Context) error {
	var req dto.UpdateCommitmentRequest
	if err := bind(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	if req.Empty() {
		return HandleError(h.logger, c, usecaseErrors.ErrNothingToUpdate)
	}

	updated, err := h.commitments.UpdateCommitment(c.Request().Context(), req.ID, req.ToUpdate())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	h.logger.Info("✏️ Commitment updated",
		zap.String("commitment_id", updated.ID),
		zap.String("status", string(updated.Status)),
	)
	return HandleSuccess(h.logger, c, presenter.ToCommitmentResponse(updated, h.now()))
}
