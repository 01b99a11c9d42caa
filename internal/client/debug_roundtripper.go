package client

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// maxLoggedBody caps how much of each body is written to the debug log.
const maxLoggedBody = 2048

// redactedHeaders never reach the log.
var redactedHeaders = []string{"X-Goog-Api-Key", "Authorization"}

// DebugRoundTripper is an http.RoundTripper that logs requests and responses at debug level
type DebugRoundTripper struct {
	transport http.RoundTripper
	log       logrus.FieldLogger
}

// NewDebugRoundTripper creates a new debug round tripper
func NewDebugRoundTripper(transport http.RoundTripper) *DebugRoundTripper {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &DebugRoundTripper{
		transport: transport,
		log:       logrus.StandardLogger(),
	}
}

// RoundTrip executes a single HTTP transaction and logs both sides of it
func (r *DebugRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	startTime := time.Now()

	fields := logrus.Fields{
		"method":  req.Method,
		"url":     req.URL.String(),
		"headers": redactHeaders(req.Header),
	}
	if req.Body != nil && req.Body != http.NoBody {
		bodyBytes, err := io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, err
		}
		fields["body"] = truncate(bodyBytes)
		// Restore the body for the actual request
		req.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	}
	r.log.WithFields(fields).Debug("HTTP request")

	resp, err := r.transport.RoundTrip(req)
	duration := time.Since(startTime)
	if err != nil {
		r.log.WithError(err).WithField("duration_ms", duration.Milliseconds()).Debug("HTTP request failed")
		return resp, err
	}

	respFields := logrus.Fields{
		"status":      resp.StatusCode,
		"duration_ms": duration.Milliseconds(),
	}
	if resp.Body != nil && resp.Body != http.NoBody {
		bodyBytes, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, readErr
		}
		respFields["body"] = truncate(bodyBytes)
		// Restore the body for the SDK
		resp.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	}
	r.log.WithFields(respFields).Debug("HTTP response")

	return resp, nil
}

func redactHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k := range h {
		result[k] = h.Get(k)
	}
	for _, k := range redactedHeaders {
		if _, ok := result[k]; ok {
			result[k] = "[REDACTED]"
		}
	}
	return result
}

func truncate(b []byte) string {
	if len(b) <= maxLoggedBody {
		return string(b)
	}
	return string(b[:maxLoggedBody]) + "...(truncated)"
}
