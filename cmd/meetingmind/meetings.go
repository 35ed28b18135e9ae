package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/usecase/tracker"
)

var (
	submitTitle        string
	submitParticipants []string
	submitDate         string
	submitNotes        string
	submitNotesFile    string
	submitWait         bool

	listParticipant string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit meeting notes for processing",
	Long: `Submit meeting notes to the memory backend. With --wait the command
follows processing until the meeting completes or fails and then prints the
extracted commitments.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := readNotes()
		if err != nil {
			return err
		}
		date := time.Now()
		if submitDate != "" {
			if date, err = time.Parse(time.RFC3339, submitDate); err != nil {
				if date, err = time.Parse("2006-01-02", submitDate); err != nil {
					return fmt.Errorf("invalid --date %q: use RFC3339 or YYYY-MM-DD", submitDate)
				}
			}
		}

		input := entities.MeetingInput{
			Title:        strings.TrimSpace(submitTitle),
			Participants: trimAll(submitParticipants),
			MeetingDate:  date,
			Notes:        notes,
		}
		if input.Title == "" || len(input.Participants) == 0 || strings.TrimSpace(input.Notes) == "" {
			return fmt.Errorf("--title, at least one --participant and notes are required")
		}

		res, err := current.backend.SubmitMeeting(cmd.Context(), input)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", successStyle.Render("✓ Submitted"), idStyle.Render(res.MeetingID))

		if !submitWait {
			fmt.Fprintf(out, "Follow it with: meetingmind track %s\n", res.MeetingID)
			return nil
		}
		return trackMeeting(cmd, res.MeetingID)
	},
}

var trackCmd = &cobra.Command{
	Use:   "track <meeting-id>",
	Short: "Follow a meeting until processing finishes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return trackMeeting(cmd, args[0])
	},
}

var meetingsCmd = &cobra.Command{
	Use:   "meetings",
	Short: "List meetings, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		meetings, err := current.backend.GetMeetings(cmd.Context(), entities.MeetingFilter{Participant: listParticipant})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Meetings (%s)", countStyle.Render(fmt.Sprint(len(meetings))))))
		for i := range meetings {
			printMeeting(out, &meetings[i])
		}
		return nil
	},
}

var meetingCmd = &cobra.Command{
	Use:   "meeting <meeting-id>",
	Short: "Show one meeting with its notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := current.backend.GetMeeting(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		printMeeting(out, m)
		fmt.Fprintf(out, "\n%s\n", m.Notes)
		return nil
	},
}

// trackMeeting runs a tracker in the foreground and prints every status
// change. Ctrl-C cancels the tracker.
func trackMeeting(cmd *cobra.Command, meetingID string) error {
	ctx, stop := signalContext(cmd.Context())
	defer stop()

	out := cmd.OutOrStdout()
	t := tracker.New(current.backend,
		tracker.WithInterval(current.cfg.Tracker.PollInterval),
		tracker.WithLogger(current.logger),
	)
	defer t.Dispose()

	var last entities.MeetingStatus
	t.Subscribe(func(s tracker.Snapshot) {
		if s.Meeting == nil || s.Meeting.Status == last {
			return
		}
		last = s.Meeting.Status
		fmt.Fprintf(out, "%s %s\n",
			dateStyle.Render(time.Now().Format("15:04:05")),
			statusStyle(string(last)).Render(string(last)),
		)
	})

	if err := t.Start(ctx, meetingID); err != nil {
		return err
	}

	select {
	case <-t.Done():
	case <-ctx.Done():
		t.Cancel()
		fmt.Fprintln(out, warningStyle.Render("Stopped tracking"))
		return nil
	}

	snap := t.Snapshot()
	if snap.Err != nil {
		return snap.Err
	}
	if snap.Meeting != nil {
		printMeeting(out, snap.Meeting)
	}
	if snap.CommitmentsErr != nil {
		current.logger.Warn("⚠️ Failed to load commitments", zap.Error(snap.CommitmentsErr))
		fmt.Fprintln(out, warningStyle.Render("Could not load commitments: ")+snap.CommitmentsErr.Error())
		return nil
	}
	if len(snap.Commitments) > 0 {
		fmt.Fprintln(out, headerStyle.Render("Commitments"))
		now := time.Now()
		for i := range snap.Commitments {
			printCommitment(out, &snap.Commitments[i], now)
		}
	}
	return nil
}

func readNotes() (string, error) {
	switch {
	case submitNotes != "":
		return submitNotes, nil
	case submitNotesFile == "-":
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	case submitNotesFile != "":
		b, err := os.ReadFile(submitNotesFile)
		if err != nil {
			return "", fmt.Errorf("failed to read notes: %w", err)
		}
		return string(b), nil
	}
	return "", nil
}

func trimAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func init() {
	submitCmd.Flags().StringVarP(&submitTitle, "title", "t", "", "Meeting title")
	submitCmd.Flags().StringSliceVarP(&submitParticipants, "participant", "p", nil, "Participant name (repeatable)")
	submitCmd.Flags().StringVar(&submitDate, "date", "", "Meeting date, RFC3339 or YYYY-MM-DD (default now)")
	submitCmd.Flags().StringVar(&submitNotes, "notes", "", "Meeting notes")
	submitCmd.Flags().StringVar(&submitNotesFile, "notes-file", "", "Read notes from a file, or - for stdin")
	submitCmd.Flags().BoolVarP(&submitWait, "wait", "w", false, "Track the meeting until processing finishes")

	meetingsCmd.Flags().StringVarP(&listParticipant, "participant", "p", "", "Only meetings with this participant")

	rootCmd.AddCommand(submitCmd, trackCmd, meetingsCmd, meetingCmd)
}
