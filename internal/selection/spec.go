package selection

import (
	"fmt"
	"strings"

	"github.com/zayfen/InterviewQuestionBank/internal/question"
)

// Spec is a selection request. It is one of FilterSpec, BucketSpec or PresetSpec.
type Spec interface {
	// Validate reports an *InvalidSpecError when the selection is malformed.
	Validate() error

	// Requested is the number of questions asked for, or -1 when the
	// server decides (presets).
	Requested() int

	isSpec()
}

// FilterSpec asks for Count questions matching optional allow-lists.
// Empty allow-lists mean "any".
type FilterSpec struct {
	Count        int
	Categories   []question.Category
	Difficulties []question.Difficulty
}

func (FilterSpec) isSpec() {}

// Requested returns Count.
func (s FilterSpec) Requested() int { return s.Count }

// Validate checks the count and allow-list values.
func (s FilterSpec) Validate() error {
	if s.Count < 0 {
		return &InvalidSpecError{Field: "count", Reason: fmt.Sprintf("must be non-negative, got %d", s.Count)}
	}
	for _, c := range s.Categories {
		if !c.Valid() {
			return &InvalidSpecError{Field: "categories", Reason: fmt.Sprintf("unknown category %q", c)}
		}
	}
	for _, d := range s.Difficulties {
		if !d.Valid() {
			return &InvalidSpecError{Field: "difficulties", Reason: fmt.Sprintf("unknown difficulty %q", d)}
		}
	}
	return nil
}

// BucketSpec asks for an explicit number of questions per difficulty.
type BucketSpec struct {
	Easy   int
	Medium int
	Hard   int
}

func (BucketSpec) isSpec() {}

// Total is the sum of the three buckets.
func (s BucketSpec) Total() int { return s.Easy + s.Medium + s.Hard }

// Requested returns Total.
func (s BucketSpec) Requested() int { return s.Total() }

// Validate rejects negative bucket counts.
func (s BucketSpec) Validate() error {
	buckets := []struct {
		field string
		n     int
	}{
		{"easy_count", s.Easy},
		{"medium_count", s.Medium},
		{"hard_count", s.Hard},
	}
	for _, b := range buckets {
		if b.n < 0 {
			return &InvalidSpecError{Field: b.field, Reason: fmt.Sprintf("must be non-negative, got %d", b.n)}
		}
	}
	return nil
}

// PresetSpec names a server-defined selection recipe.
type PresetSpec struct {
	Key string
}

func (PresetSpec) isSpec() {}

// Requested returns the size of a known recipe, or -1 when the key is not
// in the local catalog and only the server knows its size.
func (s PresetSpec) Requested() int {
	if p, ok := LookupPreset(s.Key); ok {
		return p.Total()
	}
	return -1
}

// Validate rejects a blank key. Unknown keys are left for the server to reject.
func (s PresetSpec) Validate() error {
	if strings.TrimSpace(s.Key) == "" {
		return &InvalidSpecError{Field: "preset", Reason: "key is required"}
	}
	return nil
}

// Shortfall returns how many questions are missing from a resolved
// selection, or 0 when the request was met or the size was server-defined.
func Shortfall(requested, got int) int {
	if requested < 0 || got >= requested {
		return 0
	}
	return requested - got
}
