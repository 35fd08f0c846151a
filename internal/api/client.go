package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/zayfen/InterviewQuestionBank/internal/question"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// Client talks to the question bank HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*clientOptions)

type clientOptions struct {
	transport http.RoundTripper
	logger    *slog.Logger
}

// WithTransport sets the base transport. Logging and retry wrap it.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) { o.transport = rt }
}

// WithLogger sets the logger for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// New creates a Client from cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := clientOptions{
		transport: http.DefaultTransport,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}

	rt := WithLogging(o.transport, o.logger)
	if cfg.Retry.MaxAttempts > 1 {
		rt = WithRetry(rt, cfg.Retry)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Transport: rt, Timeout: cfg.Timeout},
	}, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// ListQuestions returns one page of questions. When params carries a search
// or filter criterion the server searches instead of listing.
func (c *Client) ListQuestions(ctx context.Context, params question.SearchParams) (*question.Page, error) {
	var page question.Page
	if err := c.do(ctx, http.MethodGet, "/questions/", searchQuery(params), nil, PageSchema, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SearchQuestions searches titles and content and filters by category and difficulty.
func (c *Client) SearchQuestions(ctx context.Context, params question.SearchParams) (*question.Page, error) {
	var page question.Page
	if err := c.do(ctx, http.MethodGet, "/questions/search", searchQuery(params), nil, PageSchema, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetQuestion fetches a single question by ID.
func (c *Client) GetQuestion(ctx context.Context, id int64) (*question.Question, error) {
	var q question.Question
	if err := c.do(ctx, http.MethodGet, questionPath(id), nil, nil, QuestionSchema, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// CreateQuestion stores a new question. The input is checked locally first.
func (c *Client) CreateQuestion(ctx context.Context, in question.Create) (*question.Question, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}
	var q question.Question
	if err := c.do(ctx, http.MethodPost, "/questions/", nil, in, QuestionSchema, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// UpdateQuestion applies a partial edit to a question.
func (c *Client) UpdateQuestion(ctx context.Context, id int64, in question.Update) (*question.Question, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var q question.Question
	if err := c.do(ctx, http.MethodPut, questionPath(id), nil, in, QuestionSchema, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// DeleteQuestion removes a question and returns it as it was.
func (c *Client) DeleteQuestion(ctx context.Context, id int64) (*question.Question, error) {
	var q question.Question
	if err := c.do(ctx, http.MethodDelete, questionPath(id), nil, nil, QuestionSchema, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// GenerateQuestions asks the server's AI backend to write and store new questions.
func (c *Client) GenerateQuestions(ctx context.Context, req question.GenerateRequest) ([]question.Question, error) {
	var qs []question.Question
	if err := c.do(ctx, http.MethodPost, "/ai/generate", nil, req, QuestionListSchema, &qs); err != nil {
		return nil, err
	}
	return qs, nil
}

// Categories lists the category values the server knows.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/ai/categories", nil, nil, StringListSchema, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Difficulties lists the difficulty values the server knows.
func (c *Client) Difficulties(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/ai/difficulties", nil, nil, StringListSchema, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RandomQuestions draws questions at random via the quick GET endpoint.
func (c *Client) RandomQuestions(ctx context.Context, req question.RandomRequest) ([]question.Question, error) {
	q := url.Values{}
	q.Set("count", strconv.Itoa(req.Count))
	for _, cat := range req.Categories {
		q.Add("categories", string(cat))
	}
	for _, d := range req.Difficulties {
		q.Add("difficulties", string(d))
	}

	var qs []question.Question
	if err := c.do(ctx, http.MethodGet, "/random/", q, nil, QuestionListSchema, &qs); err != nil {
		return nil, err
	}
	return qs, nil
}

// AdvancedRandom draws questions at random matching optional allow-lists.
func (c *Client) AdvancedRandom(ctx context.Context, req question.RandomRequest) (*question.Page, error) {
	var page question.Page
	if err := c.do(ctx, http.MethodPost, "/random/advanced", nil, req, PageSchema, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// InterviewSession draws questions per difficulty bucket, ordered easy to hard.
func (c *Client) InterviewSession(ctx context.Context, req question.InterviewRequest) (*question.Page, error) {
	var page question.Page
	if err := c.do(ctx, http.MethodPost, "/interview/", nil, req, PageSchema, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// PresetInterview draws the questions of a named server-side recipe.
func (c *Client) PresetInterview(ctx context.Context, key string) (*question.Page, error) {
	var page question.Page
	path := "/interview/preset/" + url.PathEscape(key)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, PageSchema, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// HealthStatus is the body of the server's health check.
type HealthStatus struct {
	Status string `json:"status"`
}

// Health queries the health endpoint on the server root.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}
	u.Path = "/health"
	u.RawQuery = ""

	var hs HealthStatus
	if err := c.doURL(ctx, http.MethodGet, u.String(), nil, nil, &hs); err != nil {
		return nil, err
	}
	return &hs, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, schema *Schema, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return c.doURL(ctx, method, target, body, schema, out)
}

func (c *Client) doURL(ctx context.Context, method, target string, body any, schema *Schema, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &ErrUnavailable{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &ErrUnavailable{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ErrStatus{StatusCode: resp.StatusCode, Detail: parseDetail(raw)}
	}
	if out == nil {
		return nil
	}

	return decodeResponse(schema, raw, out)
}

func questionPath(id int64) string {
	return "/questions/" + strconv.FormatInt(id, 10)
}

func searchQuery(p question.SearchParams) url.Values {
	q := url.Values{}
	if p.Query != "" {
		q.Set("q", p.Query)
	}
	if p.Category != "" {
		q.Set("category", string(p.Category))
	}
	if p.Difficulty != "" {
		q.Set("difficulty", string(p.Difficulty))
	}
	page := p.Page
	if page < 1 {
		page = 1
	}
	size := p.Size
	if size < 1 {
		size = question.DefaultPageSize
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	return q
}
