package interview

import (
	"context"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zayfen/InterviewQuestionBank/internal/question"
	"github.com/zayfen/InterviewQuestionBank/internal/router"
	"github.com/zayfen/InterviewQuestionBank/internal/screen"
	"github.com/zayfen/InterviewQuestionBank/internal/screens/summary"
	"github.com/zayfen/InterviewQuestionBank/internal/selection"
	"github.com/zayfen/InterviewQuestionBank/internal/session"
	"github.com/zayfen/InterviewQuestionBank/internal/ui/components"
	"github.com/zayfen/InterviewQuestionBank/internal/ui/layout"
)

// Resolver turns a selection spec into an ordered question list.
// *selection.Requestor implements it.
type Resolver interface {
	Resolve(ctx context.Context, spec selection.Spec) ([]question.Question, error)
}

// InterviewScreen runs one mock interview: it resolves the selection,
// then steps through the questions with the session controller.
type InterviewScreen struct {
	resolver Resolver
	spec     selection.Spec
	logger   *slog.Logger

	state     *session.State
	seq       int
	loading   bool
	ticking   bool
	err       error
	confirm   *components.Confirm
	shortfall int
	elapsed   time.Duration
}

var _ screen.Screen = (*InterviewScreen)(nil)
var _ screen.KeyHintProvider = (*InterviewScreen)(nil)
var _ screen.BackHandler = (*InterviewScreen)(nil)

// New creates a new InterviewScreen for spec. A nil logger discards output.
func New(resolver Resolver, spec selection.Spec, logger *slog.Logger) *InterviewScreen {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &InterviewScreen{
		resolver: resolver,
		spec:     spec,
		logger:   logger,
		state:    session.New(),
	}
}

func (s *InterviewScreen) Init() tea.Cmd {
	return s.resolve()
}

func (s *InterviewScreen) Title() string {
	return "Mock Interview"
}

// HandlesBack is always true: Esc ends the interview through a prompt.
func (s *InterviewScreen) HandlesBack() bool { return true }

func (s *InterviewScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirm != nil:
		return []layout.KeyHint{
			{Key: "y", Description: "Yes"},
			{Key: "n", Description: "No"},
		}
	case s.err != nil:
		return []layout.KeyHint{
			{Key: "r", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	case s.loading:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Cancel"},
		}
	case s.state.TotalQuestions() == 0:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Finish"},
		}
	}
	return []layout.KeyHint{
		{Key: "←/p", Description: "Previous"},
		{Key: "→/n", Description: "Next"},
		{Key: "a", Description: "Analysis"},
		{Key: "Esc", Description: "End"},
	}
}

// State exposes the session controller for inspection.
func (s *InterviewScreen) State() *session.State {
	return s.state
}

func (s *InterviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsResolvedMsg:
		return s.handleResolved(msg)
	case timerTickMsg:
		return s.handleTimerTick(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *InterviewScreen) View(width, height int) string {
	switch {
	case s.confirm != nil:
		return renderConfirm(*s.confirm, width)
	case s.err != nil:
		return renderError(width, s.err)
	case s.loading:
		return renderLoading(width, s.spec)
	case s.state.TotalQuestions() == 0:
		return renderEmpty(width)
	}
	return s.renderQuestionView(width, height)
}

// resolve starts a selection request. Any earlier request still in
// flight is superseded.
func (s *InterviewScreen) resolve() tea.Cmd {
	s.seq++
	s.loading = true
	s.err = nil

	seq := s.seq
	resolver, spec := s.resolver, s.spec
	return func() tea.Msg {
		qs, err := resolver.Resolve(context.Background(), spec)
		return questionsResolvedMsg{Seq: seq, Questions: qs, Err: err}
	}
}

func (s *InterviewScreen) handleResolved(msg questionsResolvedMsg) (screen.Screen, tea.Cmd) {
	if msg.Seq != s.seq {
		return s, nil
	}
	s.loading = false

	if msg.Err != nil {
		s.logger.Error("resolve interview questions", "error", msg.Err)
		s.err = msg.Err
		return s, nil
	}

	s.state.Start(msg.Questions)
	s.shortfall = selection.Shortfall(s.spec.Requested(), len(msg.Questions))
	s.elapsed = 0
	s.logger.Info("interview started",
		"session", s.state.ID(),
		"questions", s.state.TotalQuestions(),
		"shortfall", s.shortfall)

	if s.ticking {
		return s, nil
	}
	s.ticking = true
	return s, tickCmd()
}

func (s *InterviewScreen) handleTimerTick(_ timerTickMsg) (screen.Screen, tea.Cmd) {
	if !s.state.Active() {
		s.ticking = false
		return s, nil
	}
	s.elapsed = time.Since(s.state.StartedAt())
	return s, tickCmd()
}

func (s *InterviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// End confirmation dialog.
	if s.confirm != nil {
		c := s.confirm.Update(msg)
		switch c.Result {
		case components.ConfirmYes:
			s.confirm = nil
			return s.finish()
		case components.ConfirmNo:
			s.confirm = nil
		default:
			s.confirm = &c
		}
		return s, nil
	}

	// Failed request.
	if s.err != nil {
		switch key {
		case "r":
			return s, s.resolve()
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	// Waiting for the server. Leaving drops the pending result.
	if s.loading {
		if key == "esc" {
			s.seq++
			s.loading = false
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if s.state.TotalQuestions() == 0 {
		switch key {
		case "enter", "esc", "q":
			return s.finish()
		}
		return s, nil
	}

	switch key {
	case "right", "n", "l":
		s.state.Next()
	case "left", "p", "h":
		s.state.Previous()
	case "a", "space", " ":
		s.state.ToggleAnalysis()
	case "enter":
		if !s.state.Next() {
			s.promptEnd("Finish the interview?")
		}
	case "esc", "q":
		s.promptEnd("End the interview now?")
	}
	return s, nil
}

func (s *InterviewScreen) promptEnd(prompt string) {
	c := components.NewConfirm(prompt)
	s.confirm = &c
}

// finish captures the summary, ends the session and replaces this screen
// with the summary screen.
func (s *InterviewScreen) finish() (screen.Screen, tea.Cmd) {
	sum := s.state.Summary()
	shortfall := s.shortfall
	s.state.End()
	s.logger.Info("interview ended",
		"session", sum.ID,
		"reached", sum.Reached,
		"total", sum.Total,
		"duration", sum.Duration)

	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum, shortfall)}
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
