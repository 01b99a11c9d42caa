package probe

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedGenerator answers each model from a fixed table and records calls in order.
type scriptedGenerator struct {
	replies map[string]string
	errs    map[string]error
	calls   []Attempt
	prompts []string
}

func (g *scriptedGenerator) Generate(_ context.Context, attempt Attempt, prompt string) (*Completion, error) {
	g.calls = append(g.calls, attempt)
	g.prompts = append(g.prompts, prompt)
	if err, ok := g.errs[attempt.Model]; ok {
		return nil, err
	}
	return &Completion{Text: g.replies[attempt.Model], Usage: Usage{TotalTokens: 7}}, nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestProber_Run(t *testing.T) {
	const nigeria = "Nigeria uses a common-law system derived from English law, mixed with customary and Islamic law in different regions."

	tests := []struct {
		name         string
		gen          *scriptedGenerator
		wantOutcome  Outcome
		wantCalls    []Attempt
		wantInOrder  []string
		wantAbsent   []string
		wantResponse int
	}{
		{
			name: "primary succeeds",
			gen: &scriptedGenerator{
				replies: map[string]string{PrimaryAttempt.Model: "primary text"},
			},
			wantOutcome: OutcomePrimary,
			wantCalls:   []Attempt{PrimaryAttempt},
			wantInOrder: []string{
				"Attempting to generate content with model: gemini-1.5-flash-001, API version: v1",
				"Response from gemini-1.5-flash-001 (v1):",
				"primary text",
			},
			wantAbsent:   []string{"Error with", "Trying with", "gemini-pro"},
			wantResponse: 1,
		},
		{
			name: "primary fails, fallback succeeds",
			gen: &scriptedGenerator{
				replies: map[string]string{FallbackAttempt.Model: nigeria},
				errs:    map[string]error{PrimaryAttempt.Model: errors.New("404 model not found")},
			},
			wantOutcome: OutcomeFallback,
			wantCalls:   []Attempt{PrimaryAttempt, FallbackAttempt},
			wantInOrder: []string{
				"Error with gemini-1.5-flash-001 (v1): 404 model not found",
				"Trying with a more generic model and default API version...",
				"Attempting to generate content with model: gemini-pro, API version: default",
				"Response from gemini-pro (default API version):",
				nigeria,
			},
			wantAbsent:   []string{"Failed to generate content with both models"},
			wantResponse: 1,
		},
		{
			name: "both fail",
			gen: &scriptedGenerator{
				errs: map[string]error{
					PrimaryAttempt.Model:  errors.New("API key not valid"),
					FallbackAttempt.Model: errors.New("permission denied"),
				},
			},
			wantOutcome: OutcomeExhausted,
			wantCalls:   []Attempt{PrimaryAttempt, FallbackAttempt},
			wantInOrder: []string{
				"Error with gemini-1.5-flash-001 (v1): API key not valid",
				"Error with gemini-pro (default API version): permission denied",
				"Failed to generate content with both models. The API key or model availability might be the issue.",
			},
			wantResponse: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			report := New(tt.gen, &out, WithLogger(quietLogger())).Run(context.Background())

			assert.Equal(t, tt.wantOutcome, report.Outcome)
			assert.Equal(t, tt.wantCalls, tt.gen.calls)
			require.Len(t, report.Attempts, len(tt.wantCalls))

			got := out.String()
			assertInOrder(t, got, tt.wantInOrder)
			for _, s := range tt.wantAbsent {
				assert.NotContains(t, got, s)
			}
			assert.Equal(t, tt.wantResponse, strings.Count(got, "Response from "))
		})
	}
}

func TestProber_SamePromptOnBothAttempts(t *testing.T) {
	gen := &scriptedGenerator{errs: map[string]error{
		PrimaryAttempt.Model:  errors.New("boom"),
		FallbackAttempt.Model: errors.New("boom"),
	}}

	New(gen, io.Discard, WithLogger(quietLogger())).Run(context.Background())

	require.Len(t, gen.prompts, 2)
	assert.Equal(t, Prompt, gen.prompts[0])
	assert.Equal(t, gen.prompts[0], gen.prompts[1])
}

func TestProber_AttemptErrorWrapsCause(t *testing.T) {
	cause := errors.New("quota exceeded")
	gen := &scriptedGenerator{
		errs:    map[string]error{PrimaryAttempt.Model: cause},
		replies: map[string]string{FallbackAttempt.Model: "ok"},
	}

	report := New(gen, io.Discard, WithLogger(quietLogger())).Run(context.Background())

	first := report.Attempts[0]
	assert.False(t, first.Success())
	assert.ErrorIs(t, first.Err, cause)

	var attemptErr *AttemptError
	require.ErrorAs(t, first.Err, &attemptErr)
	assert.Equal(t, PrimaryAttempt, attemptErr.Attempt)
	assert.Equal(t, "quota exceeded", attemptErr.Error())

	assert.True(t, report.Succeeded())
	assert.Equal(t, "ok", report.Final().Completion.Text)
}

func TestProber_NilCompletionIsFailure(t *testing.T) {
	gen := generatorFunc(func(_ context.Context, a Attempt, _ string) (*Completion, error) {
		return nil, nil
	})

	report := New(gen, io.Discard, WithLogger(quietLogger())).Run(context.Background())

	assert.Equal(t, OutcomeExhausted, report.Outcome)
	assert.Len(t, report.Attempts, 2)
}

func TestProber_WithOptions(t *testing.T) {
	primary := Attempt{Model: "m1", APIVersion: "v1alpha"}
	fallback := Attempt{Model: "m2"}
	gen := &scriptedGenerator{
		errs:    map[string]error{"m1": errors.New("nope")},
		replies: map[string]string{"m2": "fine"},
	}

	var out bytes.Buffer
	New(gen, &out, WithAttempts(primary, fallback), WithPrompt("ping"), WithLogger(quietLogger())).Run(context.Background())

	assert.Equal(t, []Attempt{primary, fallback}, gen.calls)
	assert.Equal(t, []string{"ping", "ping"}, gen.prompts)
	assert.Contains(t, out.String(), "Error with m1 (v1alpha): nope")
	assert.Contains(t, out.String(), "Response from m2 (default API version):\nfine\n")
}

func TestAttempt_Labels(t *testing.T) {
	assert.Equal(t, "v1", PrimaryAttempt.VersionLabel())
	assert.Equal(t, "default", FallbackAttempt.VersionLabel())
	assert.Equal(t, "gemini-1.5-flash-001 (v1)", PrimaryAttempt.Label())
	assert.Equal(t, "gemini-pro (default API version)", FallbackAttempt.Label())
	assert.True(t, FallbackAttempt.UsesDefaultVersion())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "primary", OutcomePrimary.String())
	assert.Equal(t, "fallback", OutcomeFallback.String())
	assert.Equal(t, "exhausted", OutcomeExhausted.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}

type generatorFunc func(ctx context.Context, attempt Attempt, prompt string) (*Completion, error)

func (f generatorFunc) Generate(ctx context.Context, attempt Attempt, prompt string) (*Completion, error) {
	return f(ctx, attempt, prompt)
}

func assertInOrder(t *testing.T, got string, want []string) {
	t.Helper()
	rest := got
	for _, s := range want {
		i := strings.Index(rest, s)
		if !assert.GreaterOrEqual(t, i, 0, "missing or out of order: %q\noutput:\n%s", s, got) {
			return
		}
		rest = rest[i+len(s):]
	}
}
