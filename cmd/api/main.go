package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/johnquangdev/meetingmind/docs"
	pkgvalidator "github.com/johnquangdev/meetingmind/pkg/validator"

	"github.com/johnquangdev/meetingmind/internal/adapter/handler"
	"github.com/johnquangdev/meetingmind/internal/domain/repositories"
	"github.com/johnquangdev/meetingmind/internal/infrastructure/cache"
	"github.com/johnquangdev/meetingmind/internal/infrastructure/external/memorybackend"
	httpmw "github.com/johnquangdev/meetingmind/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meetingmind/internal/usecase/insights"
	"github.com/johnquangdev/meetingmind/internal/usecase/tracker"
	"github.com/johnquangdev/meetingmind/pkg/config"
	"github.com/johnquangdev/meetingmind/pkg/jwt"
)

// @title           MeetingMind Gateway API
// @version         1.0
// @description     Gateway in front of the MeetingMind memory backend: meeting submission and tracking, commitments, contacts and streamed briefings

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestID())

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize memory backend
	backend := newBackend(cfg, logger)

	// Initialize snapshot cache
	log.Println("📦 Initializing snapshot cache...")
	store, err := cache.New(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}
	defer store.Close()

	// Initialize job tracker registry
	log.Println("⏱️  Initializing job tracker registry...")
	registry := tracker.NewRegistry(backend, store,
		tracker.WithPollInterval(cfg.Tracker.PollInterval),
		tracker.WithSnapshotTTL(cfg.Tracker.SnapshotTTL),
		tracker.WithRegistryLogger(logger),
	)

	// Initialize services and handlers
	log.Println("⚙️  Initializing handlers...")
	insightsService := insights.NewInsightsService(backend, logger)

	meetingHandler := handler.NewMeetingHandler(backend, registry, logger)
	commitmentHandler := handler.NewCommitmentHandler(insightsService, backend, logger)
	contactHandler := handler.NewContactHandler(insightsService, logger)
	briefingHandler := handler.NewBriefingHandler(backend, logger)
	searchHandler := handler.NewSearchHandler(backend, logger)

	var authEchoMW echo.MiddlewareFunc
	if cfg.AuthEnabled() {
		log.Println("🔑 Initializing JWT manager...")
		jwtManager := jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry, cfg.Auth.Issuer)
		authEchoMW = httpmw.EchoAuth(jwtManager)
	} else {
		log.Println("⚠️  JWT_SECRET not set, /v1 routes are public")
	}

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, backend, registry, authEchoMW,
		meetingHandler, commitmentHandler, contactHandler, briefingHandler, searchHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := cfg.GetServerAddr()
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Stop trackers first so open event streams see their channels close
	registry.Close()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newBackend(cfg *config.Config, logger *zap.Logger) repositories.MemoryBackend {
	if cfg.Backend.Mode == config.BackendModeMock {
		mock := memorybackend.NewMockBackend(
			memorybackend.WithProcessingDelay(cfg.Backend.MockProcessingDelay),
			memorybackend.WithMockLogger(logger),
		)
		if cfg.Backend.MockSeed {
			mock.Seed()
		}
		log.Println("⚠️  Memory backend running in MOCK mode (no real server needed)")
		return mock
	}

	log.Printf("✅ Memory backend: %s", cfg.Backend.BaseURL)
	return memorybackend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout,
		memorybackend.WithLogger(logger),
		memorybackend.WithMaxRetries(cfg.Backend.MaxRetries),
	)
}
