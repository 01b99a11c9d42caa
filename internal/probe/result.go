package probe

import "time"

// Outcome summarizes how a probe run ended.
type Outcome int

const (
	OutcomePrimary Outcome = iota
	OutcomeFallback
	OutcomeExhausted
)

func (o Outcome) String() string {
	switch o {
	case OutcomePrimary:
		return "primary"
	case OutcomeFallback:
		return "fallback"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Usage represents token usage reported for a completion
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Completion is the text produced by a successful attempt
type Completion struct {
	Text  string
	Usage Usage
}

// AttemptResult records a single attempt. Exactly one of Completion and Err is set.
type AttemptResult struct {
	Attempt    Attempt
	Completion *Completion
	Err        error
	Latency    time.Duration
}

// Success reports whether the attempt produced a completion
func (r AttemptResult) Success() bool {
	return r.Err == nil && r.Completion != nil
}

// Report is the ordered list of attempts made by one run.
type Report struct {
	Attempts []AttemptResult
	Outcome  Outcome
}

// Succeeded reports whether any attempt produced text.
func (r *Report) Succeeded() bool {
	return r.Outcome != OutcomeExhausted
}

// Final returns the last attempt made, or nil if none was made.
func (r *Report) Final() *AttemptResult {
	if len(r.Attempts) == 0 {
		return nil
	}
	return &r.Attempts[len(r.Attempts)-1]
}
