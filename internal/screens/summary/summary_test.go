package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zayfen/InterviewQuestionBank/internal/question"
	"github.com/zayfen/InterviewQuestionBank/internal/router"
	"github.com/zayfen/InterviewQuestionBank/internal/session"
)

func testSummary() session.Summary {
	return session.Summary{
		ID:       "abc",
		Total:    3,
		Reached:  2,
		Duration: 95 * time.Second,
		ByDifficulty: map[question.Difficulty]int{
			question.DifficultyEasy: 2,
			question.DifficultyHard: 1,
		},
		ByCategory: map[question.Category]int{
			question.CategoryBackend:  2,
			question.CategoryDatabase: 1,
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary(), 0)
	if s.Title() != "Session Summary" {
		t.Errorf("expected title 'Session Summary', got %q", s.Title())
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	view := New(testSummary(), 0).View(80, 24)
	for _, want := range []string{"Duration: 1:35", "Questions: 3", "Reached: 2", "Backend", "Databases"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "fewer questions") {
		t.Error("did not expect a shortfall warning")
	}
}

func TestSummaryScreen_Shortfall(t *testing.T) {
	view := New(testSummary(), 2).View(80, 24)
	if !strings.Contains(view, "2 fewer questions than requested") {
		t.Error("expected shortfall warning")
	}
}

func TestSummaryScreen_Empty(t *testing.T) {
	view := New(session.Summary{}, 0).View(80, 24)
	if !strings.Contains(view, "Questions: 0") {
		t.Error("expected zero count in view")
	}
}

func TestSummaryScreen_AnyKeyReturnsHome(t *testing.T) {
	s := New(testSummary(), 0)
	for _, k := range []tea.KeyPressMsg{
		{Code: tea.KeyEnter},
		{Code: tea.KeyEscape},
		{Code: 'q', Text: "q"},
	} {
		_, cmd := s.Update(k)
		if cmd == nil {
			t.Fatalf("expected command for %q", k.String())
		}
		if _, ok := cmd().(router.PopToRootMsg); !ok {
			t.Errorf("key %q: expected PopToRootMsg", k.String())
		}
	}
	if !s.HandlesBack() {
		t.Error("summary should consume Esc")
	}
}
