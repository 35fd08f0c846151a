package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zayfen/InterviewQuestionBank/internal/question"
	"github.com/zayfen/InterviewQuestionBank/internal/router"
	"github.com/zayfen/InterviewQuestionBank/internal/screen"
	"github.com/zayfen/InterviewQuestionBank/internal/session"
	"github.com/zayfen/InterviewQuestionBank/internal/ui/components"
	"github.com/zayfen/InterviewQuestionBank/internal/ui/layout"
	"github.com/zayfen/InterviewQuestionBank/internal/ui/theme"
)

// SummaryScreen displays the results of a finished interview.
type SummaryScreen struct {
	summary   session.Summary
	shortfall int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. shortfall is how many questions the
// server could not supply.
func New(sum session.Summary, shortfall int) *SummaryScreen {
	return &SummaryScreen{summary: sum, shortfall: shortfall}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Any key", Description: "Home"},
	}
}

// HandlesBack keeps Esc from popping back into the finished interview.
func (s *SummaryScreen) HandlesBack() bool { return true }

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Interview complete!"))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.Text).Render(
		fmt.Sprintf("Questions: %d        Reached: %d", sum.Total, sum.Reached)))
	b.WriteString("\n\n")

	barWidth := min(width-8, 60)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.NewProgressBar("Completion", sum.Completion(), true, barWidth).View()))
	b.WriteString("\n\n")

	if s.shortfall > 0 {
		b.WriteString(center.Foreground(theme.Warning).Render(
			fmt.Sprintf("The bank had %d fewer questions than requested.", s.shortfall)))
		b.WriteString("\n\n")
	}

	if sum.Total == 0 {
		return b.String()
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", barWidth))

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Difficulty")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")
	var parts []string
	for _, d := range question.AllDifficulties() {
		if n := sum.ByDifficulty[d]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", theme.DifficultyBadge(d), n))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(parts, "    ")))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Categories")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")
	for _, c := range question.AllCategories() {
		n := sum.ByCategory[c]
		if n == 0 {
			continue
		}
		line := fmt.Sprintf("%-30s %d", c.Label(), n)
		b.WriteString(center.Foreground(theme.Text).Render(line))
		b.WriteString("\n")
	}

	return b.String()
}
