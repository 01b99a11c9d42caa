package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/tingly-dev/gemini-probe/internal/config"
	"github.com/tingly-dev/gemini-probe/internal/probe"
)

// ErrEmptyResponse is returned when the API answers without any text,
// e.g. when every candidate was blocked.
var ErrEmptyResponse = errors.New("response contained no text")

// GoogleClient wraps the Google genai SDK client
type GoogleClient struct {
	client     *genai.Client
	httpClient *http.Client
}

// GoogleOption configures a GoogleClient
type GoogleOption func(*googleOptions)

type googleOptions struct {
	httpClient *http.Client
	debug      bool
}

// WithHTTPClient uses the given HTTP client instead of one built from the config
func WithHTTPClient(c *http.Client) GoogleOption {
	return func(o *googleOptions) {
		o.httpClient = c
	}
}

// WithDebug logs every HTTP exchange at debug level
func WithDebug(debug bool) GoogleOption {
	return func(o *googleOptions) {
		o.debug = debug
	}
}

// NewGoogleClient creates a new Google client wrapper
func NewGoogleClient(ctx context.Context, cfg *config.Config, opts ...GoogleOption) (*GoogleClient, error) {
	o := &googleOptions{}
	for _, opt := range opts {
		opt(o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = CreateHTTPClientWithProxy(cfg.ProxyURL)
		if cfg.ProxyURL != "" {
			logrus.Infof("Using proxy for Google client: %s", cfg.ProxyURL)
		}
	}
	if o.debug {
		// Never mutate a shared client such as http.DefaultClient.
		wrapped := *httpClient
		wrapped.Transport = NewDebugRoundTripper(httpClient.Transport)
		httpClient = &wrapped
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GoogleClient{
		client:     client,
		httpClient: httpClient,
	}, nil
}

// Client returns the underlying Google genai SDK client
func (c *GoogleClient) Client() *genai.Client {
	return c.client
}

// GenerateContent generates content using the Google API
func (c *GoogleClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, genConfig *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return c.client.Models.GenerateContent(ctx, model, contents, genConfig)
}

// Generate sends prompt to the attempt's model. A non-empty API version is
// applied to this request only; otherwise the SDK default is used.
func (c *GoogleClient) Generate(ctx context.Context, attempt probe.Attempt, prompt string) (*probe.Completion, error) {
	var genConfig *genai.GenerateContentConfig
	if !attempt.UsesDefaultVersion() {
		genConfig = &genai.GenerateContentConfig{
			HTTPOptions: &genai.HTTPOptions{APIVersion: attempt.APIVersion},
		}
	}

	resp, err := c.GenerateContent(ctx, attempt.Model, genai.Text(prompt), genConfig)
	if err != nil {
		return nil, err
	}

	text := resp.Text()
	if text == "" {
		return nil, ErrEmptyResponse
	}

	completion := &probe.Completion{Text: text}
	if u := resp.UsageMetadata; u != nil {
		completion.Usage = probe.Usage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}
	return completion, nil
}
