package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrStatus indicates the question bank answered with a non-2xx status.
type ErrStatus struct {
	StatusCode int
	Detail     string
}

func (e *ErrStatus) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("question bank returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("question bank returned %d: %s", e.StatusCode, e.Detail)
}

// ErrUnavailable indicates the question bank could not be reached, or the
// exchange timed out.
type ErrUnavailable struct {
	Err error
}

func (e *ErrUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("question bank unavailable: %v", e.Err)
	}
	return "question bank unavailable"
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates a 2xx body that could not be decoded or
// did not match the expected shape.
type ErrInvalidResponse struct {
	Body json.RawMessage
	Err  error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid question bank response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a 404 from the question bank.
func IsNotFound(err error) bool {
	var se *ErrStatus
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// validationIssue is one entry of a 422 detail array.
type validationIssue struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// parseDetail extracts the human-readable part of an error body. The server
// sends {"detail": "..."} or, for validation failures, {"detail": [...]}.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return strings.TrimSpace(string(body))
	}

	var msg string
	if err := json.Unmarshal(envelope.Detail, &msg); err == nil {
		return msg
	}

	var issues []validationIssue
	if err := json.Unmarshal(envelope.Detail, &issues); err == nil && len(issues) > 0 {
		parts := make([]string, 0, len(issues))
		for _, is := range issues {
			parts = append(parts, formatIssue(is))
		}
		return strings.Join(parts, "; ")
	}

	return string(envelope.Detail)
}

func formatIssue(is validationIssue) string {
	var loc []string
	for _, l := range is.Loc {
		s := fmt.Sprint(l)
		if s == "body" || s == "query" || s == "path" {
			continue
		}
		loc = append(loc, s)
	}
	if len(loc) == 0 {
		return is.Msg
	}
	return strings.Join(loc, ".") + ": " + is.Msg
}
