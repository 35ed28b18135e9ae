package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

var (
	commitmentStatus  string
	commitmentContact string
	dueDate           string
	searchContact     string
)

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "List everyone you have met, most met first",
	RunE: func(cmd *cobra.Command, args []string) error {
		contacts, err := current.insights.Contacts(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Contacts (%s)", countStyle.Render(fmt.Sprint(len(contacts))))))
		for _, c := range contacts {
			fmt.Fprintf(out, "%-24s %s meetings  %s pending  last %s\n",
				titleStyle.Render(c.Name),
				countStyle.Render(fmt.Sprint(c.MeetingCount)),
				countStyle.Render(fmt.Sprint(c.PendingCommitments)),
				dateStyle.Render(formatDate(c.LastMeeting)),
			)
		}
		return nil
	},
}

var contactCmd = &cobra.Command{
	Use:   "contact <name>",
	Short: "Show meetings and commitments shared with one contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := current.insights.Contact(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		now := time.Now()

		fmt.Fprintln(out, titleStyle.Render(view.Timeline.Name))
		if view.Summary != nil {
			fmt.Fprintf(out, "%s meetings, %s pending, last met %s\n",
				countStyle.Render(fmt.Sprint(view.Summary.MeetingCount)),
				countStyle.Render(fmt.Sprint(view.Summary.PendingCommitments)),
				dateStyle.Render(formatDate(view.Summary.LastMeeting)),
			)
		}

		fmt.Fprintln(out, headerStyle.Render("Meetings"))
		for i := range view.Timeline.Meetings {
			printMeeting(out, &view.Timeline.Meetings[i])
		}
		fmt.Fprintln(out, headerStyle.Render("Open commitments"))
		for i := range view.Timeline.OpenCommitments {
			printCommitment(out, &view.Timeline.OpenCommitments[i], now)
		}
		fmt.Fprintln(out, headerStyle.Render("Completed"))
		for i := range view.Timeline.CompletedCommitments {
			printCommitment(out, &view.Timeline.CompletedCommitments[i], now)
		}
		return nil
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show totals, recent meetings and top contacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := current.insights.Overview(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s meetings  %s pending commitments  %s contacts\n",
			countStyle.Render(fmt.Sprint(view.MeetingCount)),
			countStyle.Render(fmt.Sprint(view.PendingCommitments)),
			countStyle.Render(fmt.Sprint(len(view.Contacts))),
		)
		fmt.Fprintln(out, headerStyle.Render("Recent meetings"))
		for i := range view.RecentMeetings {
			printMeeting(out, &view.RecentMeetings[i])
		}
		fmt.Fprintln(out, headerStyle.Render("Top contacts"))
		for _, c := range view.TopContacts {
			fmt.Fprintf(out, "%-24s %s meetings\n", titleStyle.Render(c.Name), countStyle.Render(fmt.Sprint(c.MeetingCount)))
		}
		return nil
	},
}

var commitmentsCmd = &cobra.Command{
	Use:   "commitments",
	Short: "List commitments",
	Long: `List commitments, optionally filtered by status (all, pending,
completed, overdue) and by exact contact name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := entities.CommitmentFilter{Status: commitmentStatus, Contact: commitmentContact}
		commitments, err := current.insights.Commitments(cmd.Context(), filter)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Commitments (%s)", countStyle.Render(fmt.Sprint(len(commitments))))))
		now := time.Now()
		for i := range commitments {
			printCommitment(out, &commitments[i], now)
		}
		return nil
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete <commitment-id>",
	Short: "Mark a commitment completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateCommitment(cmd, args[0], entities.CommitmentStatusCompleted)
	},
}

var reopenCmd = &cobra.Command{
	Use:   "reopen <commitment-id>",
	Short: "Mark a commitment pending again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateCommitment(cmd, args[0], entities.CommitmentStatusPending)
	},
}

func updateCommitment(cmd *cobra.Command, id string, status entities.CommitmentStatus) error {
	update := entities.CommitmentUpdate{Status: &status}
	if dueDate != "" {
		due, err := time.Parse("2006-01-02", dueDate)
		if err != nil {
			return fmt.Errorf("invalid --due %q: use YYYY-MM-DD", dueDate)
		}
		update.DueDate = &due
	}

	c, err := current.backend.UpdateCommitment(cmd.Context(), id, update)
	if err != nil {
		return err
	}
	printCommitment(cmd.OutOrStdout(), c, time.Now())
	return nil
}

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search meeting memories",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := current.backend.SearchMemories(cmd.Context(), strings.Join(args, " "), searchContact)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, warningStyle.Render("No memories found"))
			return nil
		}
		for _, r := range results {
			score := ""
			if r.RelevanceScore != nil {
				score = fmt.Sprintf(" %.2f", *r.RelevanceScore)
			}
			fmt.Fprintf(out, "%s %s%s\n", titleStyle.Render(r.MeetingTitle), dateStyle.Render(formatDate(r.MeetingDate)), idStyle.Render(score))
			fmt.Fprintf(out, "  %s\n", r.Content)
		}
		return nil
	},
}

func init() {
	commitmentsCmd.Flags().StringVarP(&commitmentStatus, "status", "s", entities.StatusFilterAll, "all, pending, completed or overdue")
	commitmentsCmd.Flags().StringVarP(&commitmentContact, "contact", "c", "", "Exact contact name (owner or recipient)")
	completeCmd.Flags().StringVar(&dueDate, "due", "", "Also set the due date (YYYY-MM-DD)")
	reopenCmd.Flags().StringVar(&dueDate, "due", "", "Also set the due date (YYYY-MM-DD)")
	searchCmd.Flags().StringVarP(&searchContact, "contact", "c", "", "Restrict to a contact")

	rootCmd.AddCommand(contactsCmd, contactCmd, dashboardCmd, commitmentsCmd, completeCmd, reopenCmd, searchCmd)
}
