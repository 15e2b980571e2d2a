package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sourcequiz/internal/review"
	"github.com/abhisek/sourcequiz/internal/screen"
	"github.com/abhisek/sourcequiz/internal/ui/components"
	"github.com/abhisek/sourcequiz/internal/ui/layout"
	"github.com/abhisek/sourcequiz/internal/ui/theme"
)

// SummaryScreen shows the tally of a finished review.
type SummaryScreen struct {
	summary *review.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *review.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Review Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Done"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder
	b.WriteString(center(theme.Title.Render("Review complete")))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center(theme.Muted.Render(fmt.Sprintf("Duration: %d:%02d", mins, secs))))
	b.WriteString("\n\n")

	b.WriteString(center(theme.Body.Render(fmt.Sprintf("Reviewed: %d        Correct: %d        Accuracy: %.0f%%",
		sum.Reviewed, sum.Correct, sum.Accuracy*100))))
	b.WriteString("\n")
	b.WriteString(center(
		theme.Correct.Render(fmt.Sprintf("Accepted %d", sum.Accepted)) + "    " +
			theme.Incorrect.Render(fmt.Sprintf("Rejected %d", sum.Rejected)) + "    " +
			theme.Flagged.Render(fmt.Sprintf("Flagged %d", sum.Flagged))))
	b.WriteString("\n\n")

	if len(sum.Concepts) == 0 {
		return b.String()
	}

	barWidth := min(width-8, 60)
	b.WriteString(center(theme.Muted.Render("Concepts")))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", barWidth))))
	b.WriteString("\n\n")

	for _, c := range sum.Concepts {
		pct := float64(c.Correct) / float64(c.Attempted)
		label := fmt.Sprintf("%-24s %d/%d", c.Concept, c.Correct, c.Attempted)
		b.WriteString(center(components.NewProgressBar(label, pct, true, barWidth).View()))
		b.WriteString("\n")
	}
	return b.String()
}
