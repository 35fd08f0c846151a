// Package apitest provides an in-memory question bank server for tests.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/zayfen/InterviewQuestionBank/internal/question"
	"github.com/zayfen/InterviewQuestionBank/internal/selection"
)

// Request is one request the server received.
type Request struct {
	Method string
	Path   string
	Query  map[string][]string
	Body   []byte
}

type failure struct {
	status int
	detail string
	header http.Header
}

// Server is a fake question bank. Random selections are deterministic:
// matching questions are returned in ID order.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	questions map[int64]question.Question
	nextID    int64
	requests  []Request
	failures  []failure
	now       func() time.Time
}

// NewServer starts a fake server seeded with qs. It is closed when the test ends.
func NewServer(t testing.TB, qs ...question.Question) *Server {
	t.Helper()

	s := &Server{
		questions: make(map[int64]question.Question),
		nextID:    1,
		now:       func() time.Time { return time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC) },
	}
	for _, q := range qs {
		s.put(q)
	}

	r := mux.NewRouter()
	r.Use(s.record)
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/questions/", s.listQuestions).Methods(http.MethodGet)
	v1.HandleFunc("/questions/", s.createQuestion).Methods(http.MethodPost)
	v1.HandleFunc("/questions/search", s.listQuestions).Methods(http.MethodGet)
	v1.HandleFunc("/questions/{id:[0-9]+}", s.getQuestion).Methods(http.MethodGet)
	v1.HandleFunc("/questions/{id:[0-9]+}", s.updateQuestion).Methods(http.MethodPut)
	v1.HandleFunc("/questions/{id:[0-9]+}", s.deleteQuestion).Methods(http.MethodDelete)
	v1.HandleFunc("/ai/generate", s.generate).Methods(http.MethodPost)
	v1.HandleFunc("/ai/categories", s.categories).Methods(http.MethodGet)
	v1.HandleFunc("/ai/difficulties", s.difficulties).Methods(http.MethodGet)
	v1.HandleFunc("/random/", s.random).Methods(http.MethodGet)
	v1.HandleFunc("/random/advanced", s.advancedRandom).Methods(http.MethodPost)
	v1.HandleFunc("/interview/", s.interview).Methods(http.MethodPost)
	v1.HandleFunc("/interview/preset/{type}", s.preset).Methods(http.MethodGet)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// APIURL returns the versioned API root.
func (s *Server) APIURL() string { return s.URL + "/api/v1" }

// FailNext makes the next request answer with status and detail.
// Calls queue up in order.
func (s *Server) FailNext(status int, detail string) {
	s.FailNextWithHeader(status, detail, nil)
}

// FailNextWithHeader is FailNext with extra response headers.
func (s *Server) FailNextWithHeader(status int, detail string, header http.Header) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{status: status, detail: detail, header: header})
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// LastRequest returns the most recent request.
func (s *Server) LastRequest() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}
	}
	return s.requests[len(s.requests)-1]
}

// Question returns the stored question with id.
func (s *Server) Question(id int64) (question.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[id]
	return q, ok
}

// Len returns the number of stored questions.
func (s *Server) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions)
}

func (s *Server) put(q question.Question) question.Question {
	if q.ID == 0 {
		q.ID = s.nextID
	}
	if q.ID >= s.nextID {
		s.nextID = q.ID + 1
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = s.now()
	}
	if q.Tags == nil {
		q.Tags = []string{}
	}
	s.questions[q.ID] = q
	return q
}

func (s *Server) sorted(match func(question.Question) bool) []question.Question {
	out := make([]question.Question, 0, len(s.questions))
	for _, q := range s.questions {
		if match == nil || match(q) {
			out = append(out, q)
		}
	}
	slices.SortFunc(out, func(a, b question.Question) int { return int(a.ID - b.ID) })
	return out
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Body:   body,
		})
		var f *failure
		if len(s.failures) > 0 {
			f = &s.failures[0]
			s.failures = s.failures[1:]
		}
		s.mu.Unlock()

		if f != nil {
			for k, vs := range f.header {
				for _, v := range vs {
					w.Header().Add(k, v)
				}
			}
			writeDetail(w, f.status, f.detail)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) listQuestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, size, ok := pageParams(w, q.Get("page"), q.Get("size"))
	if !ok {
		return
	}
	cat := question.Category(q.Get("category"))
	diff := question.Difficulty(q.Get("difficulty"))
	if cat != "" && !cat.Valid() {
		writeIssue(w, "query", "category", "Input should be a valid category")
		return
	}
	if diff != "" && !diff.Valid() {
		writeIssue(w, "query", "difficulty", "Input should be 'easy', 'medium' or 'hard'")
		return
	}
	term := strings.ToLower(q.Get("q"))

	s.mu.Lock()
	all := s.sorted(func(x question.Question) bool {
		if cat != "" && x.Category != cat {
			return false
		}
		if diff != "" && x.Difficulty != diff {
			return false
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(x.Title), term) &&
			!strings.Contains(strings.ToLower(x.Content), term) {
			return false
		}
		return true
	})
	s.mu.Unlock()

	start := min((page-1)*size, len(all))
	end := min(start+size, len(all))
	writeJSON(w, http.StatusOK, question.Page{
		Items: all[start:end],
		Total: len(all),
		Page:  page,
		Size:  size,
		Pages: (len(all) + size - 1) / size,
	})
}

func (s *Server) createQuestion(w http.ResponseWriter, r *http.Request) {
	var in question.Create
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		writeIssue(w, "body", "title", err.Error())
		return
	}

	s.mu.Lock()
	q := s.put(question.Question{
		Title:      in.Title,
		Content:    in.Content,
		Category:   in.Category,
		Difficulty: in.Difficulty,
		Analysis:   in.Analysis,
		Tags:       in.Tags,
	})
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, q)
}

func (s *Server) getQuestion(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	q, ok := s.Question(id)
	if !ok {
		writeDetail(w, http.StatusNotFound, "question not found")
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) updateQuestion(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	var in question.Update
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[id]
	if !ok {
		writeDetail(w, http.StatusNotFound, "question not found")
		return
	}
	if in.Title != nil {
		q.Title = *in.Title
	}
	if in.Content != nil {
		q.Content = *in.Content
	}
	if in.Category != nil {
		q.Category = *in.Category
	}
	if in.Difficulty != nil {
		q.Difficulty = *in.Difficulty
	}
	if in.Analysis != nil {
		q.Analysis = *in.Analysis
	}
	if in.Tags != nil {
		q.Tags = in.Tags
	}
	now := s.now()
	q.UpdatedAt = &now
	s.questions[id] = q
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[id]
	if !ok {
		writeDetail(w, http.StatusNotFound, "question not found")
		return
	}
	delete(s.questions, id)
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var req question.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if req.Count < 1 || req.Count > 10 {
		writeIssue(w, "body", "count", "Input should be between 1 and 10")
		return
	}

	s.mu.Lock()
	out := make([]question.Question, 0, req.Count)
	for i := range req.Count {
		out = append(out, s.put(question.Question{
			Title:      fmt.Sprintf("Generated %s question %d", req.Category, i+1),
			Content:    "Explain the concept.",
			Category:   req.Category,
			Difficulty: req.Difficulty,
			Analysis:   "A model answer.",
		}))
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) categories(w http.ResponseWriter, _ *http.Request) {
	out := make([]string, 0)
	for _, c := range question.AllCategories() {
		out = append(out, string(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) difficulties(w http.ResponseWriter, _ *http.Request) {
	out := make([]string, 0)
	for _, d := range question.AllDifficulties() {
		out = append(out, string(d))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) random(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	count, err := strconv.Atoi(q.Get("count"))
	if err != nil || count < 1 || count > 50 {
		writeIssue(w, "query", "count", "Input should be between 1 and 50")
		return
	}
	picked, ok := s.pick(w, count, q["categories"], q["difficulties"])
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, picked)
}

func (s *Server) advancedRandom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Count        int      `json:"count"`
		Categories   []string `json:"categories"`
		Difficulties []string `json:"difficulties"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if req.Count < 1 || req.Count > 50 {
		writeIssue(w, "body", "count", "Input should be between 1 and 50")
		return
	}
	picked, ok := s.pick(w, req.Count, req.Categories, req.Difficulties)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, selection.PageOf(picked...))
}

func (s *Server) pick(w http.ResponseWriter, count int, cats, diffs []string) ([]question.Question, bool) {
	s.mu.Lock()
	matches := s.sorted(func(x question.Question) bool {
		if len(cats) > 0 && !slices.Contains(cats, string(x.Category)) {
			return false
		}
		if len(diffs) > 0 && !slices.Contains(diffs, string(x.Difficulty)) {
			return false
		}
		return true
	})
	s.mu.Unlock()

	if len(matches) == 0 {
		writeDetail(w, http.StatusNotFound, "no questions match the filters")
		return nil, false
	}
	return matches[:min(count, len(matches))], true
}

func (s *Server) interview(w http.ResponseWriter, r *http.Request) {
	var req question.InterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	for field, n := range map[string]int{
		"easy_count":   req.EasyCount,
		"medium_count": req.MediumCount,
		"hard_count":   req.HardCount,
	} {
		if n < 0 || n > 10 {
			writeIssue(w, "body", field, "Input should be between 0 and 10")
			return
		}
	}
	if req.EasyCount+req.MediumCount+req.HardCount == 0 {
		writeDetail(w, http.StatusBadRequest, "total question count cannot be 0")
		return
	}
	writeJSON(w, http.StatusOK, selection.PageOf(s.buckets(req.EasyCount, req.MediumCount, req.HardCount)...))
}

func (s *Server) preset(w http.ResponseWriter, r *http.Request) {
	p, ok := selection.LookupPreset(mux.Vars(r)["type"])
	if !ok {
		writeDetail(w, http.StatusBadRequest, "unsupported preset type")
		return
	}
	writeJSON(w, http.StatusOK, selection.PageOf(s.buckets(p.Easy, p.Medium, p.Hard)...))
}

func (s *Server) buckets(easy, medium, hard int) []question.Question {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []question.Question
	for _, b := range []struct {
		d question.Difficulty
		n int
	}{
		{question.DifficultyEasy, easy},
		{question.DifficultyMedium, medium},
		{question.DifficultyHard, hard},
	} {
		matches := s.sorted(func(x question.Question) bool { return x.Difficulty == b.d })
		out = append(out, matches[:min(b.n, len(matches))]...)
	}
	if out == nil {
		out = []question.Question{}
	}
	return out
}

func pageParams(w http.ResponseWriter, rawPage, rawSize string) (int, int, bool) {
	page, size := 1, question.DefaultPageSize
	if rawPage != "" {
		n, err := strconv.Atoi(rawPage)
		if err != nil || n < 1 {
			writeIssue(w, "query", "page", "Input should be greater than or equal to 1")
			return 0, 0, false
		}
		page = n
	}
	if rawSize != "" {
		n, err := strconv.Atoi(rawSize)
		if err != nil || n < 1 || n > question.MaxPageSize {
			writeIssue(w, "query", "size", "Input should be between 1 and 100")
			return 0, 0, false
		}
		size = n
	}
	return page, size, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeIssue(w http.ResponseWriter, where, field, msg string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"detail": []map[string]any{
			{"loc": []string{where, field}, "msg": msg, "type": "value_error"},
		},
	})
}
