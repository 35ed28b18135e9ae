package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meetingmind/internal/usecase/briefing"
)

var briefCmd = &cobra.Command{
	Use:   "brief <contact>",
	Short: "Stream a pre-meeting briefing for a contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()

		out := cmd.OutOrStdout()
		consumer := briefing.New(current.backend, briefing.WithLogger(current.logger))
		defer consumer.Dispose()

		var streamErr error
		err := consumer.Start(ctx, args[0], briefing.Handlers{
			OnToken: func(token string) { fmt.Fprint(out, token) },
			OnDone:  func() { fmt.Fprintln(out) },
			OnError: func(err error) { streamErr = err },
		})
		if err != nil {
			return err
		}

		select {
		case <-consumer.Done():
		case <-ctx.Done():
			consumer.Cancel()
			fmt.Fprintln(out, "\n"+warningStyle.Render("Briefing cancelled"))
			return nil
		}
		if streamErr != nil {
			return fmt.Errorf("briefing failed after %d characters: %w", len(consumer.Text()), streamErr)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(briefCmd)
}
