package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/zayfen/InterviewQuestionBank/internal/ui/theme"
)

// MultiSelect is a checklist. Space toggles the highlighted option.
type MultiSelect struct {
	Options  []string
	Checked  []bool
	Selected int
}

// NewMultiSelect creates a checklist with nothing checked.
func NewMultiSelect(options []string) MultiSelect {
	return MultiSelect{
		Options: options,
		Checked: make([]bool, len(options)),
	}
}

// Update handles keyboard navigation and toggling.
func (m MultiSelect) Update(msg tea.Msg) MultiSelect {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Options) == 0 {
		return m
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "space", " ", "x":
		checked := append([]bool(nil), m.Checked...)
		checked[m.Selected] = !checked[m.Selected]
		m.Checked = checked
	}
	return m
}

// Values returns the checked options in display order.
func (m MultiSelect) Values() []string {
	var out []string
	for i, on := range m.Checked {
		if on {
			out = append(out, m.Options[i])
		}
	}
	return out
}

// View renders the checklist. focused controls whether the cursor is drawn.
func (m MultiSelect) View(focused bool) string {
	var b strings.Builder
	for i, opt := range m.Options {
		box := "[ ]"
		if m.Checked[i] {
			box = "[x]"
		}
		line := box + " " + opt
		if focused && i == m.Selected {
			b.WriteString(theme.Selected.Render("▸ " + line))
		} else {
			b.WriteString(theme.Unselected.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
