package main

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thesrcielos/exambuddy/internal/dashboard"
	"github.com/thesrcielos/exambuddy/internal/stats"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B5CF6"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#94A3B8"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F43F5E"))
	hintStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#94A3B8"))

	badgeStyles = map[string]lipgloss.Style{
		stats.BadgeExpert:     lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")),
		stats.BadgeProficient: lipgloss.NewStyle().Foreground(lipgloss.Color("#14B8A6")),
		stats.BadgeLearning:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316")),
		stats.BadgeNeedsWork:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F43F5E")),
	}
)

const (
	topicWidth = 28
	numWidth   = 10
)

func cell(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}

// renderDashboard writes the topic cards and weak topics of snap.
func renderDashboard(w io.Writer, snap dashboard.Snapshot, topics []string) {
	var b strings.Builder
	b.WriteString(titleStyle.Render("ExamBuddy progress") + "\n\n")

	switch snap.State {
	case dashboard.StateLoading:
		b.WriteString(hintStyle.Render("Loading stats...") + "\n")
		fmt.Fprint(w, b.String())
		return
	case dashboard.StateFailed:
		b.WriteString(noticeStyle.Render(fmt.Sprintf("Could not load stats: %v", snap.Err)) + "\n")
		fmt.Fprint(w, b.String())
		return
	}

	cards := stats.TopicCards(snap.Stats, topics)
	if len(cards) == 0 {
		b.WriteString(hintStyle.Render("No answers recorded yet.") + "\n")
	} else {
		b.WriteString(headerStyle.Render(
			cell("Topic", topicWidth)+cell("Answered", numWidth)+cell("Correct", numWidth)+cell("Accuracy", numWidth)+"Badge",
		) + "\n")
		for _, card := range cards {
			b.WriteString(
				cell(card.Topic, topicWidth) +
					cell(fmt.Sprint(card.Total), numWidth) +
					cell(fmt.Sprint(card.Correct), numWidth) +
					cell(fmt.Sprintf("%d%%", card.Percentage), numWidth) +
					badgeStyles[card.Badge].Render(card.Badge) + "\n",
			)
		}
	}

	weak := stats.WeakTopics(snap.Stats, topics)
	b.WriteString("\n")
	if len(weak) == 0 {
		b.WriteString(hintStyle.Render("No weak topics yet (a topic needs 5 answers).") + "\n")
	} else {
		names := make([]string, 0, len(weak))
		for _, card := range weak {
			names = append(names, fmt.Sprintf("%s (%d%%)", card.Topic, card.Percentage))
		}
		b.WriteString(headerStyle.Render("Focus next: ") + strings.Join(names, ", ") + "\n")
	}

	if snap.Notice != "" {
		b.WriteString("\n" + noticeStyle.Render(snap.Notice) + "\n")
	}
	fmt.Fprint(w, b.String())
}
