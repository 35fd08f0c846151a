package selection

import "fmt"

// InvalidSpecError indicates a malformed selection request detected
// locally. It is never sent to the remote service.
type InvalidSpecError struct {
	Field  string
	Reason string
}

func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("invalid selection %s: %s", e.Field, e.Reason)
}

// RequestError indicates the remote call behind a selection failed.
// The underlying transport or status error is kept unchanged.
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }
