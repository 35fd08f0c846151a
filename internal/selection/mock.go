package selection

import (
	"context"
	"errors"
	"sync"

	"github.com/zayfen/InterviewQuestionBank/internal/question"
)

// ErrNoMockResponse is returned by MockRemote when its queue is empty.
var ErrNoMockResponse = errors.New("mock remote: no response queued")

// MockResponse is a canned reply for MockRemote.
type MockResponse struct {
	Page *question.Page
	Err  error
}

// MockCall records one call made against MockRemote.
type MockCall struct {
	Op        string
	Random    question.RandomRequest
	Interview question.InterviewRequest
	Preset    string
}

// MockRemote is a deterministic Remote for tests. It returns canned
// responses in FIFO order and records all calls.
type MockRemote struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []MockCall
}

// NewMockRemote creates a MockRemote with the given canned responses.
func NewMockRemote(responses ...MockResponse) *MockRemote {
	return &MockRemote{responses: responses}
}

func (m *MockRemote) AdvancedRandom(_ context.Context, req question.RandomRequest) (*question.Page, error) {
	return m.next(MockCall{Op: OpAdvancedRandom, Random: req})
}

func (m *MockRemote) PresetInterview(_ context.Context, key string) (*question.Page, error) {
	return m.next(MockCall{Op: OpPreset, Preset: key})
}

func (m *MockRemote) InterviewSession(_ context.Context, req question.InterviewRequest) (*question.Page, error) {
	return m.next(MockCall{Op: OpBuckets, Interview: req})
}

// AddResponse appends a canned response to the queue.
func (m *MockRemote) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of calls made.
func (m *MockRemote) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockRemote) next(call MockCall) (*question.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, call)

	if len(m.responses) == 0 {
		return nil, ErrNoMockResponse
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}
	return resp.Page, nil
}

// PageOf wraps questions in a single-page response the way the server does.
func PageOf(qs ...question.Question) *question.Page {
	return &question.Page{
		Items: qs,
		Total: len(qs),
		Page:  1,
		Size:  len(qs),
		Pages: 1,
	}
}
