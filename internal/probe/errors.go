package probe

import "errors"

// ErrAllAttemptsFailed is returned to callers that want a failing exit
// status when neither the primary nor the fallback attempt produced text.
var ErrAllAttemptsFailed = errors.New("failed to generate content with both models")

var errNoCompletion = errors.New("no completion returned")

// AttemptError is the single error kind produced at the attempt boundary.
// Error returns the cause's message unchanged so it can be printed as-is.
type AttemptError struct {
	Attempt Attempt
	Err     error
}

func (e *AttemptError) Error() string {
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}

func (e *AttemptError) Unwrap() error {
	return e.Err
}
