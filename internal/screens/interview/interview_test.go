package interview

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/zayfen/InterviewQuestionBank/internal/api"
	"github.com/zayfen/InterviewQuestionBank/internal/question"
	"github.com/zayfen/InterviewQuestionBank/internal/router"
	"github.com/zayfen/InterviewQuestionBank/internal/screens/summary"
	"github.com/zayfen/InterviewQuestionBank/internal/selection"
)

func testQuestions(n int) []question.Question {
	diffs := question.AllDifficulties()
	qs := make([]question.Question, n)
	for i := range qs {
		qs[i] = question.Question{
			ID:         int64(i + 1),
			Title:      "Question " + string(rune('A'+i)),
			Content:    "Explain something.",
			Category:   question.CategoryBackend,
			Difficulty: diffs[i%len(diffs)],
			Analysis:   "Reference answer.",
		}
	}
	return qs
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// startScreen resolves the initial request synchronously.
func startScreen(t *testing.T, spec selection.Spec, responses ...selection.MockResponse) (*InterviewScreen, *selection.MockRemote) {
	t.Helper()
	remote := selection.NewMockRemote(responses...)
	s := New(selection.NewRequestor(remote), spec, nil)
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected Init to return a command")
	}
	if !s.loading {
		t.Fatal("expected loading state after Init")
	}
	s.Update(cmd())
	return s, remote
}

func TestInterviewScreen_Title(t *testing.T) {
	s := New(nil, selection.DefaultBuckets(), nil)
	if s.Title() != "Mock Interview" {
		t.Errorf("expected title 'Mock Interview', got %q", s.Title())
	}
	if !s.HandlesBack() {
		t.Error("interview should consume Esc")
	}
}

func TestInterviewScreen_ResolvesAndStarts(t *testing.T) {
	s, remote := startScreen(t, selection.BucketSpec{Easy: 1, Medium: 1, Hard: 1},
		selection.MockResponse{Page: selection.PageOf(testQuestions(3)...)})

	if remote.CallCount() != 1 {
		t.Fatalf("expected 1 remote call, got %d", remote.CallCount())
	}
	if !s.State().Active() {
		t.Fatal("expected active session")
	}
	if s.State().TotalQuestions() != 3 {
		t.Errorf("TotalQuestions = %d, want 3", s.State().TotalQuestions())
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "Q 1/3") {
		t.Error("expected position indicator in view")
	}
	if !strings.Contains(view, "Question A") {
		t.Error("expected first question in view")
	}
}

func TestInterviewScreen_Navigation(t *testing.T) {
	s, _ := startScreen(t, selection.BucketSpec{Easy: 3},
		selection.MockResponse{Page: selection.PageOf(testQuestions(3)...)})

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if s.State().CurrentIndex() != 1 {
		t.Fatalf("index = %d after right, want 1", s.State().CurrentIndex())
	}
	s.Update(key('n'))
	if s.State().CurrentIndex() != 2 {
		t.Fatalf("index = %d after n, want 2", s.State().CurrentIndex())
	}
	s.Update(key('n'))
	if s.State().CurrentIndex() != 2 {
		t.Errorf("index = %d past the end, want 2", s.State().CurrentIndex())
	}
	s.Update(key('p'))
	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if s.State().CurrentIndex() != 0 {
		t.Errorf("index = %d after going back, want 0", s.State().CurrentIndex())
	}
}

func TestInterviewScreen_ToggleAnalysis(t *testing.T) {
	s, _ := startScreen(t, selection.BucketSpec{Easy: 2},
		selection.MockResponse{Page: selection.PageOf(testQuestions(2)...)})

	if strings.Contains(s.View(100, 40), "Reference answer.") {
		t.Fatal("analysis should be hidden initially")
	}
	s.Update(key('a'))
	if !s.State().ShowAnalysis() {
		t.Fatal("expected analysis shown after a")
	}
	if !strings.Contains(s.View(100, 40), "Reference answer.") {
		t.Error("expected analysis in view")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if s.State().ShowAnalysis() {
		t.Error("expected analysis hidden after space")
	}

	s.Update(key('a'))
	s.Update(key('n'))
	if s.State().ShowAnalysis() {
		t.Error("moving should hide the analysis")
	}
}

func TestInterviewScreen_EscConfirmsThenSummary(t *testing.T) {
	s, _ := startScreen(t, selection.BucketSpec{Easy: 2},
		selection.MockResponse{Page: selection.PageOf(testQuestions(2)...)})

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Fatal("esc should only open the prompt")
	}
	if s.confirm == nil {
		t.Fatal("expected confirmation prompt")
	}

	_, cmd = s.Update(key('n'))
	if cmd != nil || s.confirm != nil {
		t.Fatal("n should dismiss the prompt")
	}
	if !s.State().Active() {
		t.Fatal("session should still be active")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	_, cmd = s.Update(key('y'))
	if cmd == nil {
		t.Fatal("expected command after confirming")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("expected summary screen, got %T", msg.Screen)
	}
	if s.State().Active() {
		t.Error("session should be ended")
	}
}

func TestInterviewScreen_EnterOnLastPromptsFinish(t *testing.T) {
	s, _ := startScreen(t, selection.BucketSpec{Easy: 2},
		selection.MockResponse{Page: selection.PageOf(testQuestions(2)...)})

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.State().CurrentIndex() != 1 || s.confirm != nil {
		t.Fatal("enter should advance when not on the last question")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.confirm == nil {
		t.Fatal("enter on the last question should prompt to finish")
	}
}

func TestInterviewScreen_ErrorAndRetry(t *testing.T) {
	unavailable := &api.ErrUnavailable{Err: errors.New("connection refused")}
	s, remote := startScreen(t, selection.BucketSpec{Easy: 1},
		selection.MockResponse{Err: unavailable},
		selection.MockResponse{Page: selection.PageOf(testQuestions(1)...)})

	if s.err == nil {
		t.Fatal("expected error state")
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "Is the question bank running?") {
		t.Error("expected unavailable hint in view")
	}
	if s.State().Active() {
		t.Fatal("session should not start on error")
	}

	_, cmd := s.Update(key('r'))
	if cmd == nil {
		t.Fatal("expected retry command")
	}
	s.Update(cmd())
	if remote.CallCount() != 2 {
		t.Errorf("expected 2 remote calls, got %d", remote.CallCount())
	}
	if s.err != nil || !s.State().Active() {
		t.Error("expected active session after retry")
	}
}

func TestInterviewScreen_ErrorEscGoesBack(t *testing.T) {
	s, _ := startScreen(t, selection.BucketSpec{Easy: 1},
		selection.MockResponse{Err: errors.New("boom")})

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestInterviewScreen_StaleResultDropped(t *testing.T) {
	remote := selection.NewMockRemote(
		selection.MockResponse{Page: selection.PageOf(testQuestions(3)...)},
		selection.MockResponse{Page: selection.PageOf(testQuestions(1)...)},
	)
	s := New(selection.NewRequestor(remote), selection.BucketSpec{Easy: 1}, nil)

	first := s.Init()
	second := s.resolve()

	// The remote answers in call order: the superseded request gets three
	// questions, the latest gets one. Deliver them newest first.
	superseded := first()
	latest := second()
	s.Update(latest)
	s.Update(superseded)
	if s.State().TotalQuestions() != 1 {
		t.Errorf("TotalQuestions = %d, want result of the latest request", s.State().TotalQuestions())
	}
}

func TestInterviewScreen_CancelWhileLoading(t *testing.T) {
	remote := selection.NewMockRemote(selection.MockResponse{Page: selection.PageOf(testQuestions(2)...)})
	s := New(selection.NewRequestor(remote), selection.BucketSpec{Easy: 2}, nil)
	pending := s.Init()

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop on esc while loading")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}

	s.Update(pending())
	if s.State().Active() {
		t.Error("cancelled request must not start a session")
	}
}

func TestInterviewScreen_Shortfall(t *testing.T) {
	s, _ := startScreen(t, selection.BucketSpec{Easy: 2, Hard: 3},
		selection.MockResponse{Page: selection.PageOf(testQuestions(3)...)})

	if s.shortfall != 2 {
		t.Errorf("shortfall = %d, want 2", s.shortfall)
	}
	if !strings.Contains(s.View(100, 40), "Only 3 of 5 requested questions") {
		t.Error("expected shortfall warning in view")
	}
}

func TestInterviewScreen_PresetShortfall(t *testing.T) {
	tests := []struct {
		key  string
		got  int
		want int
	}{
		{"quick", 5, 0},
		{"quick", 2, 3},
		{"comprehensive", 10, 3},
		{"custom-recipe", 1, 0},
	}
	for _, tt := range tests {
		s, _ := startScreen(t, selection.PresetSpec{Key: tt.key},
			selection.MockResponse{Page: selection.PageOf(testQuestions(tt.got)...)})

		if s.shortfall != tt.want {
			t.Errorf("%s with %d questions: shortfall = %d, want %d", tt.key, tt.got, s.shortfall, tt.want)
		}
	}
}

func TestInterviewScreen_EmptySession(t *testing.T) {
	s, remote := startScreen(t, selection.BucketSpec{})

	if remote.CallCount() != 0 {
		t.Errorf("zero total should not call the remote, got %d calls", remote.CallCount())
	}
	if !strings.Contains(s.View(100, 40), "No questions matched") {
		t.Error("expected empty message")
	}
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected summary transition")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected ReplaceScreenMsg")
	}
}

func TestInterviewScreen_InvalidSpec(t *testing.T) {
	s, remote := startScreen(t, selection.BucketSpec{Easy: -1})

	if remote.CallCount() != 0 {
		t.Error("invalid spec should not reach the remote")
	}
	var invalid *selection.InvalidSpecError
	if !errors.As(s.err, &invalid) {
		t.Fatalf("expected InvalidSpecError, got %v", s.err)
	}
}

func TestInterviewScreen_TimerStopsWhenEnded(t *testing.T) {
	s, _ := startScreen(t, selection.BucketSpec{Easy: 1},
		selection.MockResponse{Page: selection.PageOf(testQuestions(1)...)})

	if _, cmd := s.Update(timerTickMsg{}); cmd == nil {
		t.Fatal("expected next tick while active")
	}
	s.State().End()
	if _, cmd := s.Update(timerTickMsg{}); cmd != nil {
		t.Error("expected no tick after the session ended")
	}
}
