package interview

import (
	"time"

	"github.com/zayfen/InterviewQuestionBank/internal/question"
)

// questionsResolvedMsg is sent when the selection request completes. Seq
// identifies the request so superseded results can be dropped.
type questionsResolvedMsg struct {
	Seq       int
	Questions []question.Question
	Err       error
}

// timerTickMsg is sent every second to refresh the elapsed clock.
type timerTickMsg time.Time
