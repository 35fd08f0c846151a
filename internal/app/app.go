package app

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zayfen/InterviewQuestionBank/internal/api"
	"github.com/zayfen/InterviewQuestionBank/internal/router"
	"github.com/zayfen/InterviewQuestionBank/internal/screen"
	"github.com/zayfen/InterviewQuestionBank/internal/screens/home"
	"github.com/zayfen/InterviewQuestionBank/internal/screens/interview"
	"github.com/zayfen/InterviewQuestionBank/internal/selection"
	"github.com/zayfen/InterviewQuestionBank/internal/ui/layout"
)

// Options holds the dependencies for the TUI.
type Options struct {
	Client *api.Client
	Logger *slog.Logger

	// Start, when set, opens an interview for it directly on top of home.
	Start selection.Spec
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	status string
	start  screen.Screen
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	requestor := selection.NewRequestor(opts.Client)

	host := hostOf(opts.Client.BaseURL())
	homeScreen := home.New(home.Deps{
		Backend:  opts.Client,
		Resolver: requestor,
		Logger:   opts.Logger,
		Host:     host,
	})

	m := AppModel{
		router: router.New(homeScreen),
		status: host,
	}
	if opts.Start != nil {
		m.start = interview.New(requestor, opts.Start, opts.Logger)
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	if m.start != nil {
		start := m.start
		cmds = append(cmds, func() tea.Msg { return router.PushScreenMsg{Screen: start} })
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 && !screen.WantsBack(m.router.Active()) {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// hostOf returns the host part of a base URL, or the URL itself when it
// does not parse.
func hostOf(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return baseURL
	}
	return u.Host
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
