package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/meetingmind/internal/usecase/tracker"
	"github.com/johnquangdev/meetingmind/pkg/config"
)

// healthTimeout bounds the backend probe of /health
const healthTimeout = 3 * time.Second

// HealthChecker reports whether the memory backend is reachable
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Router holds all handlers
type Router struct {
	cfg      *config.Config
	backend  HealthChecker
	registry *tracker.Registry
	auth     echo.MiddlewareFunc

	meetingHandler    *Meeting
	commitmentHandler *Commitment
	contactHandler    *Contact
	briefingHandler   *Briefing
	searchHandler     *Search
}

// NewRouter creates a new router with all handlers. auth may be nil, in
// which case the /v1 routes are public.
func NewRouter(
	cfg *config.Config,
	backend HealthChecker,
	registry *tracker.Registry,
	auth echo.MiddlewareFunc,
	meetingHandler *Meeting,
	commitmentHandler *Commitment,
	contactHandler *Contact,
	briefingHandler *Briefing,
	searchHandler *Search,
) *Router {
	return &Router{
		cfg:               cfg,
		backend:           backend,
		registry:          registry,
		auth:              auth,
		meetingHandler:    meetingHandler,
		commitmentHandler: commitmentHandler,
		contactHandler:    contactHandler,
		briefingHandler:   briefingHandler,
		searchHandler:     searchHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")
	if rt.auth != nil {
		v1.Use(rt.auth)
	}

	rt.setupMeetingRoutes(v1)
	rt.setupCommitmentRoutes(v1)
	rt.setupContactRoutes(v1)

	v1.GET("/briefings/:contact", rt.briefingHandler.StreamBriefing)
	v1.GET("/search", rt.searchHandler.SearchMemories)
}

func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")
	meetings.POST("", rt.meetingHandler.SubmitMeeting)
	meetings.GET("", rt.meetingHandler.ListMeetings)
	meetings.GET("/:id", rt.meetingHandler.GetMeeting)
	meetings.GET("/:id/status", rt.meetingHandler.GetStatus)
	meetings.GET("/:id/events", rt.meetingHandler.Events)
}

func (rt *Router) setupCommitmentRoutes(g *echo.Group) {
	commitments := g.Group("/commitments")
	commitments.GET("", rt.commitmentHandler.ListCommitments)
	commitments.PATCH("/:id", rt.commitmentHandler.UpdateCommitment)
}

func (rt *Router) setupContactRoutes(g *echo.Group) {
	g.GET("/contacts", rt.contactHandler.ListContacts)
	g.GET("/contacts/:name", rt.contactHandler.GetContact)
	g.GET("/dashboard", rt.contactHandler.Dashboard)
}

// healthCheck returns health status. The gateway stays up when the backend
// is down, so the endpoint reports degraded instead of failing.
func (rt *Router) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	status := "ok"
	backend := "ok"
	if err := rt.backend.Health(ctx); err != nil {
		status = "degraded"
		backend = err.Error()
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":          status,
		"environment":     rt.cfg.Server.Environment,
		"backend_mode":    rt.cfg.Backend.Mode,
		"backend":         backend,
		"active_trackers": rt.registry.Active(),
	})
}
