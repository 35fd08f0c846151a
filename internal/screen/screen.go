package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zayfen/InterviewQuestionBank/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BackHandler is implemented by screens that sometimes consume Esc
// themselves, for example to close a prompt. While HandlesBack returns
// true the app forwards Esc to the screen instead of popping it.
type BackHandler interface {
	HandlesBack() bool
}

// WantsBack reports whether s currently consumes Esc.
func WantsBack(s Screen) bool {
	bh, ok := s.(BackHandler)
	return ok && bh.HandlesBack()
}
