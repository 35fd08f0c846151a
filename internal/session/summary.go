package session

import (
	"time"

	"github.com/zayfen/InterviewQuestionBank/internal/question"
)

// Summary holds the data displayed on the summary screen. It must be
// built before End, which discards the sequence.
type Summary struct {
	ID           string
	Total        int
	Reached      int
	Duration     time.Duration
	ByDifficulty map[question.Difficulty]int
	ByCategory   map[question.Category]int
}

// Completion is the fraction of questions reached.
func (s Summary) Completion() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Reached) / float64(s.Total)
}

// Summary builds a Summary from the current session.
func (s *State) Summary() Summary {
	sum := Summary{
		ID:           s.id,
		Total:        len(s.questions),
		ByDifficulty: make(map[question.Difficulty]int),
		ByCategory:   make(map[question.Category]int),
	}
	if len(s.questions) > 0 {
		sum.Reached = s.furthest + 1
	}
	if !s.startedAt.IsZero() {
		sum.Duration = s.clock().Sub(s.startedAt)
	}
	for _, q := range s.questions {
		sum.ByDifficulty[q.Difficulty]++
		sum.ByCategory[q.Category]++
	}
	return sum
}
