package question

import (
	"encoding/json"
	"fmt"
	"time"
)

// Category is the subject area a question belongs to.
type Category string

const (
	CategoryAlgorithm    Category = "algorithm"
	CategoryDatabase     Category = "database"
	CategorySystemDesign Category = "system_design"
	CategoryFrontend     Category = "frontend"
	CategoryBackend      Category = "backend"
	CategoryDevOps       Category = "devops"
	CategoryMobile       Category = "mobile"
	CategoryDataScience  Category = "data_science"
	CategorySecurity     Category = "security"
	CategoryTesting      Category = "testing"
	CategoryReactNative  Category = "react_native"
	CategoryReact        Category = "react"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryAlgorithm,
		CategoryDatabase,
		CategorySystemDesign,
		CategoryFrontend,
		CategoryBackend,
		CategoryDevOps,
		CategoryMobile,
		CategoryDataScience,
		CategorySecurity,
		CategoryTesting,
		CategoryReactNative,
		CategoryReact,
	}
}

// Label returns a human-readable name for the category.
func (c Category) Label() string {
	switch c {
	case CategoryAlgorithm:
		return "Algorithms & Data Structures"
	case CategoryDatabase:
		return "Databases"
	case CategorySystemDesign:
		return "System Design"
	case CategoryFrontend:
		return "Frontend"
	case CategoryBackend:
		return "Backend"
	case CategoryDevOps:
		return "Ops & DevOps"
	case CategoryMobile:
		return "Mobile"
	case CategoryDataScience:
		return "Data Science"
	case CategorySecurity:
		return "Security"
	case CategoryTesting:
		return "Software Testing"
	case CategoryReactNative:
		return "React Native"
	case CategoryReact:
		return "React"
	default:
		return string(c)
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory converts a wire value into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Difficulty is the difficulty tier of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// AllDifficulties returns the difficulties from easiest to hardest.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// Label returns a human-readable name for the difficulty.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return string(d)
	}
}

// Rank orders difficulties: easy=1, medium=2, hard=3, unknown=0.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	default:
		return 0
	}
}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	return d.Rank() > 0
}

// ParseDifficulty converts a wire value into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
	return d, nil
}

// Question is a single interview question as served by the question bank.
type Question struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Category   Category   `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
	Analysis   string     `json:"analysis,omitempty"`
	Tags       []string   `json:"tags"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// HasAnalysis reports whether the question carries a reference analysis.
func (q Question) HasAnalysis() bool {
	return q.Analysis != ""
}

// timestampLayouts are the forms the question bank uses for timestamps.
// Naive values carry no zone and are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// UnmarshalJSON accepts both zoned and naive timestamps.
func (q *Question) UnmarshalJSON(data []byte) error {
	type alias Question
	aux := struct {
		*alias
		CreatedAt *string `json:"created_at"`
		UpdatedAt *string `json:"updated_at"`
	}{alias: (*alias)(q)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	q.CreatedAt = time.Time{}
	if aux.CreatedAt != nil && *aux.CreatedAt != "" {
		t, err := parseTimestamp(*aux.CreatedAt)
		if err != nil {
			return fmt.Errorf("created_at: %w", err)
		}
		q.CreatedAt = t
	}

	q.UpdatedAt = nil
	if aux.UpdatedAt != nil && *aux.UpdatedAt != "" {
		t, err := parseTimestamp(*aux.UpdatedAt)
		if err != nil {
			return fmt.Errorf("updated_at: %w", err)
		}
		q.UpdatedAt = &t
	}
	return nil
}
