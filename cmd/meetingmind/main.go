// Command meetingmind is a terminal client for the MeetingMind memory
// backend: submit and track meetings, stream briefings and review
// commitments and contacts.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetingmind/internal/domain/repositories"
	"github.com/johnquangdev/meetingmind/internal/infrastructure/external/memorybackend"
	"github.com/johnquangdev/meetingmind/internal/usecase/insights"
	"github.com/johnquangdev/meetingmind/pkg/config"
)

var (
	verbose    bool
	backendURL string
	useMock    bool
	version    = "dev"
)

// app holds what every subcommand needs. It is built once in
// PersistentPreRunE.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	backend  repositories.MemoryBackend
	insights insights.Service
}

var current *app

var rootCmd = &cobra.Command{
	Use:   "meetingmind",
	Short: "Relationship memory for your meetings",
	Long: `Submit meeting notes to the MeetingMind memory backend, follow their
processing, stream pre-meeting briefings and keep track of commitments.

Quick Start:
  meetingmind submit --title "Weekly sync" -p Alice -p Bob --notes-file notes.md
  meetingmind brief "Alice Chen"
  meetingmind commitments --status pending --contact "Alice Chen"`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		current = a
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if current != nil {
			_ = current.logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "Memory backend URL (overrides BACKEND_URL)")
	rootCmd.PersistentFlags().BoolVar(&useMock, "mock", false, "Use the seeded in-process mock backend")
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if backendURL != "" {
		cfg.Backend.Mode = config.BackendModeHTTP
		cfg.Backend.BaseURL = backendURL
	}
	if useMock {
		cfg.Backend.Mode = config.BackendModeMock
	}

	logger := zap.NewNop()
	if verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	var backend repositories.MemoryBackend
	if cfg.Backend.Mode == config.BackendModeMock {
		mock := memorybackend.NewMockBackend(
			memorybackend.WithProcessingDelay(cfg.Backend.MockProcessingDelay),
			memorybackend.WithMockLogger(logger),
		)
		mock.Seed()
		backend = mock
	} else {
		backend = memorybackend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout,
			memorybackend.WithLogger(logger),
			memorybackend.WithMaxRetries(cfg.Backend.MaxRetries),
		)
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		backend:  backend,
		insights: insights.NewInsightsService(backend, logger),
	}, nil
}

// signalContext is cancelled on Ctrl-C so long-running commands can stop
// their tracker or consumer cleanly
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}
}
