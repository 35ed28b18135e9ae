package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func statusStyle(status string) lipgloss.Style {
	switch status {
	case string(entities.MeetingStatusCompleted):
		return successStyle
	case string(entities.MeetingStatusFailed), string(entities.CommitmentStatusOverdue):
		return errorStyle
	default:
		return warningStyle
	}
}

func printMeeting(w io.Writer, m *entities.Meeting) {
	fmt.Fprintf(w, "%s  %s\n", titleStyle.Render(m.Title), idStyle.Render(m.ID))
	fmt.Fprintf(w, "  %s  %s  %s\n",
		dateStyle.Render(formatDate(m.MeetingDate)),
		statusStyle(string(m.Status)).Render(string(m.Status)),
		strings.Join(m.Participants, ", "),
	)
	if m.Summary != nil && *m.Summary != "" {
		fmt.Fprintf(w, "  %s\n", *m.Summary)
	}
}

func printCommitment(w io.Writer, c *entities.Commitment, now time.Time) {
	status := string(c.Status)
	if c.Status.IsOpen() && c.DueDate != nil && c.DueDate.Before(now) {
		status += " (past due)"
	}
	due := "no due date"
	if c.DueDate != nil {
		due = "due " + formatDate(*c.DueDate)
	}
	fmt.Fprintf(w, "%s %s\n", statusStyle(string(c.Status)).Render("["+status+"]"), c.Description)
	fmt.Fprintf(w, "  %s → %s  %s  %s  %s\n",
		c.Owner, c.Recipient,
		dateStyle.Render(due),
		idStyle.Render(c.ID),
		dateStyle.Render(c.MeetingTitle),
	)
}
