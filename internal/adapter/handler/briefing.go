package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetingmind/internal/adapter/dto"
	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/domain/repositories"
	"github.com/johnquangdev/meetingmind/internal/usecase/briefing"
)

// briefingError is relayed to the client when the stream fails
type briefingError struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Briefing relays pre-meeting briefings as server-sent events
type Briefing struct {
	streamer repositories.BriefingStreamer
	logger   *zap.Logger
}

// NewBriefingHandler creates a new briefing handler
func NewBriefingHandler(streamer repositories.BriefingStreamer, logger *zap.Logger) *Briefing {
	return &Briefing{streamer: streamer, logger: logger}
}

// StreamBriefing handles GET /briefings/:contact
// @Summary      Stream a briefing
// @Description  Relays {"type":"token"} events followed by {"type":"done"}, or a single {"type":"error"} event
// @Tags         Briefings
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        contact  path  string  true  "Contact name"
// @Success      200      {object}  entities.BriefingEvent
// @Router       /briefings/{contact} [get]
func (h *Briefing) StreamBriefing(c echo.Context) error {
	var req dto.BriefingRequest
	if err := bind(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	consumer := briefing.New(h.streamer, briefing.WithLogger(h.logger))
	defer consumer.Dispose()

	ctx := c.Request().Context()
	sse := startSSE(c)
	err := consumer.Start(ctx, req.Contact, briefing.Handlers{
		OnToken: func(token string) {
			if err := sse.data(entities.BriefingEvent{Type: entities.BriefingEventToken, Content: token}); err != nil {
				consumer.Stop()
			}
		},
		OnDone: func() {
			_ = sse.data(entities.BriefingEvent{Type: entities.BriefingEventDone})
		},
		OnError: func(err error) {
			_ = sse.data(briefingError{Type: "error", Content: err.Error()})
		},
	})
	if err != nil {
		_ = sse.data(briefingError{Type: "error", Content: err.Error()})
		return nil
	}

	select {
	case <-consumer.Done():
	case <-ctx.Done():
	}
	return nil
}
