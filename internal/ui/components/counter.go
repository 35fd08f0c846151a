package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zayfen/InterviewQuestionBank/internal/ui/theme"
)

// Counter is a bounded integer adjusted with left/right or -/+.
type Counter struct {
	Label string
	Value int
	Min   int
	Max   int
}

// NewCounter creates a counter clamped to [lo, hi].
func NewCounter(label string, value, lo, hi int) Counter {
	return Counter{Label: label, Value: min(max(value, lo), hi), Min: lo, Max: hi}
}

// Update handles key events.
func (c Counter) Update(msg tea.Msg) Counter {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c
	}
	switch kmsg.String() {
	case "left", "h", "-":
		if c.Value > c.Min {
			c.Value--
		}
	case "right", "l", "+", "=":
		if c.Value < c.Max {
			c.Value++
		}
	}
	return c
}

// View renders the counter.
func (c Counter) View(focused bool) string {
	label := fmt.Sprintf("%-8s", c.Label)
	value := fmt.Sprintf("◂ %2d ▸", c.Value)
	if focused {
		return theme.Selected.Render("▸ "+label) + " " +
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(value)
	}
	return theme.Unselected.Render("  "+label) + " " + theme.Subtitle.Render(value)
}
