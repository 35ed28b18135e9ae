package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetingmind/internal/adapter/dto"
	"github.com/johnquangdev/meetingmind/internal/adapter/presenter"
	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/domain/repositories"
	"github.com/johnquangdev/meetingmind/internal/usecase/tracker"
)

// eventsHeartbeat keeps idle event streams open through proxies
const eventsHeartbeat = 15 * time.Second

// Meeting handles meeting submission, lookup and status tracking
type Meeting struct {
	meetings repositories.MeetingRepository
	registry *tracker.Registry
	logger   *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetings repositories.MeetingRepository, registry *tracker.Registry, logger *zap.Logger) *Meeting {
	return &Meeting{
		meetings: meetings,
		registry: registry,
		logger:   logger,
	}
}

// SubmitMeeting handles POST /meetings
// @Summary      Submit a meeting
// @Description  Sends meeting notes to the memory backend and starts tracking its processing
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      dto.SubmitMeetingRequest  true  "Meeting"
// @Success      201      {object}  dto.SubmitMeetingResponse
// @Failure      400      {object}  map[string]interface{}  "Validation failed"
// @Failure      502      {object}  map[string]interface{}  "Backend rejected the meeting"
// @Router       /meetings [post]
func (h *Meeting) SubmitMeeting(c echo.Context) error {
	var req dto.SubmitMeetingRequest
	if err := bind(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	res, err := h.meetings.SubmitMeeting(c.Request().Context(), req.ToInput())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	resp := dto.SubmitMeetingResponse{MeetingID: res.MeetingID, Status: res.Status}
	if rec, err := h.registry.Track(res.MeetingID); err != nil {
		h.logger.Warn("⚠️ Failed to start tracking submitted meeting",
			zap.String("meeting_id", res.MeetingID),
			zap.Error(err),
		)
	} else {
		resp.Tracking = &rec
	}

	return HandleCreated(h.logger, c, resp)
}

// ListMeetings handles GET /meetings
// @Summary      List meetings
// @Description  Lists meetings newest first, optionally by participant (substring match)
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        participant  query     string  false  "Participant name"
// @Success      200          {array}   dto.MeetingResponse
// @Router       /meetings [get]
func (h *Meeting) ListMeetings(c echo.Context) error {
	var req dto.ListMeetingsRequest
	if err := bind(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	meetings, err := h.meetings.GetMeetings(c.Request().Context(), entities.MeetingFilter{Participant: req.Participant})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingListResponse(meetings))
}

// GetMeeting handles GET /meetings/:id
// @Summary      Get meeting
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  dto.MeetingResponse
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id} [get]
func (h *Meeting) GetMeeting(c echo.Context) error {
	var req dto.MeetingIDRequest
	if err := bind(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	meeting, err := h.meetings.GetMeeting(c.Request().Context(), req.ID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(meeting))
}

// GetStatus handles GET /meetings/:id/status
// @Summary      Get tracking status
// @Description  Returns the latest tracker snapshot, starting a tracker when none is known
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  tracker.Record
// @Router       /meetings/{id}/status [get]
func (h *Meeting) GetStatus(c echo.Context) error {
	var req dto.MeetingIDRequest
	if err := bind(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	rec, found, err := h.registry.Status(c.Request().Context(), req.ID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if !found {
		if rec, err = h.registry.Track(req.ID); err != nil {
			return HandleError(h.logger, c, err)
		}
	}

	return HandleSuccess(h.logger, c, rec)
}

// Events handles GET /meetings/:id/events
// @Summary      Stream tracking status
// @Description  Server-sent events: one "snapshot" per tracker update, then "end" once the tracker stops
// @Tags         Meetings
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  tracker.Record
// @Router       /meetings/{id}/events [get]
func (h *Meeting) Events(c echo.Context) error {
	var req dto.MeetingIDRequest
	if err := bind(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	rec, err := h.registry.Track(req.ID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	records, stop, live := h.registry.Watch(req.ID)
	defer stop()

	ctx := c.Request().Context()
	sse := startSSE(c)
	if err := sse.event("snapshot", rec); err != nil {
		return nil
	}

	last := rec
	// finish sends the cached final record when the live channel missed it
	finish := func() {
		if !last.Terminal {
			if final, found, err := h.registry.Status(ctx, req.ID); err == nil && found && final.Terminal {
				_ = sse.event("snapshot", final)
			}
		}
		_ = sse.event("end", map[string]string{"meeting_id": req.ID})
	}
	if !live {
		finish()
		return nil
	}

	heartbeat := time.NewTicker(eventsHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case rec, ok := <-records:
			if !ok {
				finish()
				return nil
			}
			if err := sse.event("snapshot", rec); err != nil {
				return nil
			}
			last = rec
		case <-heartbeat.C:
			if err := sse.comment("ping"); err != nil {
				return nil
			}
		case <-ctx.Done():
			return nil
		}
	}
}
