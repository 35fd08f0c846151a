package selection

import (
	"context"
	"fmt"

	"github.com/zayfen/InterviewQuestionBank/internal/question"
)

// Remote is the part of the question bank API the requestor needs.
type Remote interface {
	AdvancedRandom(ctx context.Context, req question.RandomRequest) (*question.Page, error)
	PresetInterview(ctx context.Context, key string) (*question.Page, error)
	InterviewSession(ctx context.Context, req question.InterviewRequest) (*question.Page, error)
}

// Operation names carried by RequestError.
const (
	OpAdvancedRandom = "advanced-random-select"
	OpPreset         = "preset-interview"
	OpBuckets        = "bucketed-interview-session"
)

// Requestor turns a selection spec into one remote call and flattens the
// paginated result into an ordered question list. Selection and
// randomization happen on the server.
type Requestor struct {
	remote Remote
}

// NewRequestor creates a Requestor backed by remote.
func NewRequestor(remote Remote) *Requestor {
	return &Requestor{remote: remote}
}

// Resolve dispatches on the concrete spec type.
func (r *Requestor) Resolve(ctx context.Context, spec Spec) ([]question.Question, error) {
	switch s := spec.(type) {
	case FilterSpec:
		return r.ResolveByFilters(ctx, s)
	case BucketSpec:
		return r.ResolveByBuckets(ctx, s)
	case PresetSpec:
		return r.ResolveByPreset(ctx, s)
	case nil:
		return nil, &InvalidSpecError{Field: "spec", Reason: "is nil"}
	default:
		return nil, &InvalidSpecError{Field: "spec", Reason: fmt.Sprintf("unsupported type %T", spec)}
	}
}

// ResolveByFilters asks for spec.Count questions matching the allow-lists.
// A zero count resolves to an empty session without a remote call.
func (r *Requestor) ResolveByFilters(ctx context.Context, spec FilterSpec) ([]question.Question, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if spec.Count == 0 {
		return []question.Question{}, nil
	}

	page, err := r.remote.AdvancedRandom(ctx, question.RandomRequest{
		Count:        spec.Count,
		Categories:   spec.Categories,
		Difficulties: spec.Difficulties,
	})
	if err != nil {
		return nil, &RequestError{Op: OpAdvancedRandom, Err: err}
	}
	return items(page), nil
}

// ResolveByPreset fetches the named preset bundle.
func (r *Requestor) ResolveByPreset(ctx context.Context, spec PresetSpec) ([]question.Question, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	page, err := r.remote.PresetInterview(ctx, spec.Key)
	if err != nil {
		return nil, &RequestError{Op: OpPreset, Err: err}
	}
	return items(page), nil
}

// ResolveByBuckets asks for questions per difficulty bucket. Whatever the
// server supplies is returned as-is, including fewer than requested.
// A zero total resolves to an empty session without a remote call.
func (r *Requestor) ResolveByBuckets(ctx context.Context, spec BucketSpec) ([]question.Question, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if spec.Total() == 0 {
		return []question.Question{}, nil
	}

	page, err := r.remote.InterviewSession(ctx, question.InterviewRequest{
		EasyCount:   spec.Easy,
		MediumCount: spec.Medium,
		HardCount:   spec.Hard,
	})
	if err != nil {
		return nil, &RequestError{Op: OpBuckets, Err: err}
	}
	return items(page), nil
}

// items drops pagination metadata; a session treats the list as one page.
func items(page *question.Page) []question.Question {
	if page == nil || page.Items == nil {
		return []question.Question{}
	}
	return page.Items
}
