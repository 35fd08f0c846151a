package question

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// MaxTitleLength is the longest title the question bank accepts.
const MaxTitleLength = 200

// Page is a paginated list of questions.
type Page struct {
	Items []Question `json:"items"`
	Total int        `json:"total"`
	Page  int        `json:"page"`
	Size  int        `json:"size"`
	Pages int        `json:"pages"`
}

// Create holds the fields for a new question.
type Create struct {
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Category   Category   `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
	Analysis   string     `json:"analysis,omitempty"`
	Tags       []string   `json:"tags"`
}

// Validate checks the fields the question bank would reject.
func (c Create) Validate() error {
	var errs []error
	if c.Title == "" {
		errs = append(errs, errors.New("title is required"))
	} else if utf8.RuneCountInString(c.Title) > MaxTitleLength {
		errs = append(errs, fmt.Errorf("title exceeds %d characters", MaxTitleLength))
	}
	if c.Content == "" {
		errs = append(errs, errors.New("content is required"))
	}
	if !c.Category.Valid() {
		errs = append(errs, fmt.Errorf("unknown category %q", c.Category))
	}
	if !c.Difficulty.Valid() {
		errs = append(errs, fmt.Errorf("unknown difficulty %q", c.Difficulty))
	}
	return errors.Join(errs...)
}

// Update holds a partial edit. Nil fields are left untouched by the server.
type Update struct {
	Title      *string     `json:"title,omitempty"`
	Content    *string     `json:"content,omitempty"`
	Category   *Category   `json:"category,omitempty"`
	Difficulty *Difficulty `json:"difficulty,omitempty"`
	Analysis   *string     `json:"analysis,omitempty"`
	Tags       []string    `json:"tags,omitempty"`
}

// Empty reports whether the update changes nothing.
func (u Update) Empty() bool {
	return u.Title == nil && u.Content == nil && u.Category == nil &&
		u.Difficulty == nil && u.Analysis == nil && u.Tags == nil
}

// Validate checks the fields that are set.
func (u Update) Validate() error {
	var errs []error
	if u.Title != nil {
		if *u.Title == "" {
			errs = append(errs, errors.New("title cannot be empty"))
		} else if utf8.RuneCountInString(*u.Title) > MaxTitleLength {
			errs = append(errs, fmt.Errorf("title exceeds %d characters", MaxTitleLength))
		}
	}
	if u.Content != nil && *u.Content == "" {
		errs = append(errs, errors.New("content cannot be empty"))
	}
	if u.Category != nil && !u.Category.Valid() {
		errs = append(errs, fmt.Errorf("unknown category %q", *u.Category))
	}
	if u.Difficulty != nil && !u.Difficulty.Valid() {
		errs = append(errs, fmt.Errorf("unknown difficulty %q", *u.Difficulty))
	}
	return errors.Join(errs...)
}

// Default and maximum page sizes accepted by the list endpoints.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// SearchParams filters and paginates the question list.
type SearchParams struct {
	Query      string
	Category   Category
	Difficulty Difficulty
	Page       int // 1-based; 0 means first page
	Size       int // 0 means DefaultPageSize
}

// Filtered reports whether any search or filter criterion is set.
func (p SearchParams) Filtered() bool {
	return p.Query != "" || p.Category != "" || p.Difficulty != ""
}

// GenerateRequest asks the question bank to generate questions with its AI backend.
type GenerateRequest struct {
	Category   Category   `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
	Count      int        `json:"count"`
}

// RandomRequest is the body of an advanced random selection; also used as the
// query of the quick random endpoint.
type RandomRequest struct {
	Count        int          `json:"count"`
	Categories   []Category   `json:"categories,omitempty"`
	Difficulties []Difficulty `json:"difficulties,omitempty"`
}

// InterviewRequest asks for a session drawn by difficulty bucket.
type InterviewRequest struct {
	EasyCount   int `json:"easy_count"`
	MediumCount int `json:"medium_count"`
	HardCount   int `json:"hard_count"`
}
