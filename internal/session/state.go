package session

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/zayfen/InterviewQuestionBank/internal/question"
)

// Phase represents the lifecycle phase of a practice session.
type Phase int

const (
	PhaseInactive Phase = iota // No session; initial and terminal
	PhaseActive                // Walking through a question sequence
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	default:
		return "inactive"
	}
}

// State is a cursor over an ordered question sequence. The zero value is
// an inactive session ready for Start. State is not safe for concurrent use.
type State struct {
	id           string
	phase        Phase
	questions    []question.Question
	index        int
	furthest     int
	showAnalysis bool
	startedAt    time.Time

	now func() time.Time
}

// New returns an inactive session.
func New() *State {
	return &State{}
}

// Start begins a session over qs, discarding any previous one. The slice
// is copied so later changes by the caller do not affect the session.
func (s *State) Start(qs []question.Question) {
	s.questions = append([]question.Question(nil), qs...)
	s.index = 0
	s.furthest = 0
	s.showAnalysis = false
	s.phase = PhaseActive
	s.id = uuid.NewString()
	s.startedAt = s.clock()
}

// Next moves forward one question. It reports whether the position changed.
func (s *State) Next() bool {
	if s.phase != PhaseActive || s.index >= len(s.questions)-1 {
		return false
	}
	s.index++
	if s.index > s.furthest {
		s.furthest = s.index
	}
	s.showAnalysis = false
	return true
}

// Previous moves back one question. It reports whether the position changed.
func (s *State) Previous() bool {
	if s.phase != PhaseActive || s.index <= 0 {
		return false
	}
	s.index--
	s.showAnalysis = false
	return true
}

// ToggleAnalysis flips analysis visibility for the current question.
// Without a current question it does nothing.
func (s *State) ToggleAnalysis() {
	if _, ok := s.CurrentQuestion(); !ok {
		return
	}
	s.showAnalysis = !s.showAnalysis
}

// End tears down the session. Calling End on an inactive session is a no-op.
func (s *State) End() {
	s.questions = nil
	s.index = 0
	s.furthest = 0
	s.showAnalysis = false
	s.phase = PhaseInactive
}

// CurrentQuestion returns a copy of the question at the cursor. ok is false
// when there is none.
func (s *State) CurrentQuestion() (q question.Question, ok bool) {
	if s.phase != PhaseActive || len(s.questions) == 0 {
		return question.Question{}, false
	}
	q = s.questions[s.index]
	q.Tags = slices.Clone(q.Tags)
	return q, true
}

// TotalQuestions returns the length of the sequence.
func (s *State) TotalQuestions() int { return len(s.questions) }

// CurrentIndex returns the zero-based cursor position.
func (s *State) CurrentIndex() int { return s.index }

// ShowAnalysis reports whether the current question's analysis is visible.
func (s *State) ShowAnalysis() bool { return s.showAnalysis }

// Phase returns the lifecycle phase.
func (s *State) Phase() Phase { return s.phase }

// Active reports whether a session is running.
func (s *State) Active() bool { return s.phase == PhaseActive }

// ID returns the identifier assigned by the most recent Start.
func (s *State) ID() string { return s.id }

// StartedAt returns when the most recent Start happened.
func (s *State) StartedAt() time.Time { return s.startedAt }

// Progress returns how far through the session the cursor is, counting
// the current question, as a fraction in [0, 1].
func (s *State) Progress() float64 {
	if len(s.questions) == 0 {
		return 0
	}
	return float64(s.index+1) / float64(len(s.questions))
}

// ProgressPercent returns Progress scaled to a whole percentage.
func (s *State) ProgressPercent() int {
	return int(s.Progress()*100 + 0.5)
}

func (s *State) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}
