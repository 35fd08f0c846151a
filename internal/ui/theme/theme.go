package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/zayfen/InterviewQuestionBank/internal/question"
)

// Color palette, muted for long reading sessions
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Yellow
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#E2E8F0") // Light Slate
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	WarningText = lipgloss.NewStyle().
			Foreground(Warning)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	AnalysisCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Disabled = lipgloss.NewStyle().
			Foreground(Border)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)

// DifficultyColor returns the color used to mark a difficulty.
func DifficultyColor(d question.Difficulty) color.Color {
	switch d {
	case question.DifficultyEasy:
		return Success
	case question.DifficultyMedium:
		return Warning
	case question.DifficultyHard:
		return Error
	default:
		return TextDim
	}
}

// DifficultyBadge renders a compact difficulty label.
func DifficultyBadge(d question.Difficulty) string {
	return lipgloss.NewStyle().
		Foreground(DifficultyColor(d)).
		Bold(true).
		Render(d.Label())
}

// CategoryBadge renders a compact category label.
func CategoryBadge(c question.Category) string {
	return lipgloss.NewStyle().
		Foreground(Secondary).
		Render("#" + c.Label())
}
