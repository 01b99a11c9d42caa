// Package probe runs the primary/fallback generation check against a
// text generation backend and renders the outcome for a terminal.
package probe

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Generator produces a completion for a single attempt.
type Generator interface {
	Generate(ctx context.Context, attempt Attempt, prompt string) (*Completion, error)
}

// Prober tries the primary attempt and, only if that fails, the fallback.
type Prober struct {
	gen      Generator
	out      io.Writer
	prompt   string
	primary  Attempt
	fallback Attempt
	log      logrus.FieldLogger
}

// Option configures a Prober
type Option func(*Prober)

// WithAttempts overrides the primary and fallback attempts
func WithAttempts(primary, fallback Attempt) Option {
	return func(p *Prober) {
		p.primary = primary
		p.fallback = fallback
	}
}

// WithPrompt overrides the prompt sent on both attempts
func WithPrompt(prompt string) Option {
	return func(p *Prober) {
		p.prompt = prompt
	}
}

// WithLogger sets the logger used for diagnostics
func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Prober) {
		p.log = log
	}
}

// New creates a Prober writing its console output to out.
func New(gen Generator, out io.Writer, opts ...Option) *Prober {
	p := &Prober{
		gen:      gen,
		out:      out,
		prompt:   Prompt,
		primary:  PrimaryAttempt,
		fallback: FallbackAttempt,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes at most two attempts, primary first. Attempt failures are
// printed and folded into the report; Run itself never fails.
func (p *Prober) Run(ctx context.Context) *Report {
	report := &Report{}

	primary := p.try(ctx, p.primary)
	report.Attempts = append(report.Attempts, primary)
	if primary.Success() {
		p.printResponse(primary)
		report.Outcome = OutcomePrimary
		return report
	}

	p.printf("\nError with %s: %v\n", p.primary.Label(), primary.Err)
	p.printf("Trying with a more generic model and default API version...\n")

	fallback := p.try(ctx, p.fallback)
	report.Attempts = append(report.Attempts, fallback)
	if fallback.Success() {
		p.printResponse(fallback)
		report.Outcome = OutcomeFallback
		return report
	}

	p.printf("\nError with %s: %v\n", p.fallback.Label(), fallback.Err)
	p.printf("Failed to generate content with both models. The API key or model availability might be the issue.\n")
	report.Outcome = OutcomeExhausted
	return report
}

func (p *Prober) try(ctx context.Context, attempt Attempt) AttemptResult {
	p.printf("Attempting to generate content with model: %s, API version: %s\n", attempt.Model, attempt.VersionLabel())

	start := time.Now()
	completion, err := p.gen.Generate(ctx, attempt, p.prompt)
	result := AttemptResult{Attempt: attempt, Latency: time.Since(start)}

	fields := logrus.Fields{
		"model":       attempt.Model,
		"api_version": attempt.VersionLabel(),
		"latency_ms":  result.Latency.Milliseconds(),
	}
	if err == nil && completion == nil {
		err = errNoCompletion
	}
	if err != nil {
		result.Err = &AttemptError{Attempt: attempt, Err: err}
		p.log.WithFields(fields).WithError(err).Warn("Attempt failed")
		return result
	}

	result.Completion = completion
	p.log.WithFields(fields).WithFields(logrus.Fields{
		"prompt_tokens":     completion.Usage.PromptTokens,
		"completion_tokens": completion.Usage.CompletionTokens,
		"total_tokens":      completion.Usage.TotalTokens,
	}).Debug("Attempt succeeded")
	return result
}

func (p *Prober) printResponse(r AttemptResult) {
	p.printf("\nResponse from %s:\n", r.Attempt.Label())
	p.printf("%s\n", r.Completion.Text)
}

func (p *Prober) printf(format string, args ...any) {
	// Console output is best effort; a broken stdout has nowhere to report to.
	_, _ = fmt.Fprintf(p.out, format, args...)
}
