package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zayfen/InterviewQuestionBank/internal/ui/theme"
)

// ConfirmResult is the outcome of a Confirm prompt.
type ConfirmResult int

const (
	ConfirmPending ConfirmResult = iota
	ConfirmYes
	ConfirmNo
)

// Confirm is a yes/no prompt. y and Enter confirm; n and Esc cancel.
type Confirm struct {
	Prompt string
	Result ConfirmResult
}

// NewConfirm creates a pending prompt.
func NewConfirm(prompt string) Confirm {
	return Confirm{Prompt: prompt}
}

// Update handles key events.
func (c Confirm) Update(msg tea.Msg) Confirm {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || c.Result != ConfirmPending {
		return c
	}
	switch kmsg.String() {
	case "y", "Y", "enter":
		c.Result = ConfirmYes
	case "n", "N", "esc":
		c.Result = ConfirmNo
	}
	return c
}

// View renders the prompt.
func (c Confirm) View() string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(0, 2).
		Render(theme.Body.Render(c.Prompt) + "  " + theme.Hint.Render("[y/N]"))
}
