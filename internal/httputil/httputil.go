// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across service clients.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxDetailLen bounds the response-body excerpt carried in APIError.
const maxDetailLen = 500

// APIError is a non-2xx response from a remote service. It carries the
// HTTP status and a body excerpt so failures surface the vendor's own
// diagnostic (e.g. an expired-token message) instead of a bare status.
type APIError struct {
	Service    string
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s API returned HTTP %d", e.Service, e.StatusCode)
	}
	return fmt.Sprintf("%s API returned HTTP %d: %s", e.Service, e.StatusCode, e.Detail)
}

// NewJSONRequest builds an HTTP request with a JSON-encoded body. A nil
// body produces a request with no payload.
func NewJSONRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// DoJSON executes req, checks for a 2xx status, and decodes the JSON
// response body into out (skipped when out is nil). Non-2xx statuses
// become an *APIError; a 2xx body that fails to decode is reported as a
// malformed response, distinct from a network error.
func DoJSON(client *http.Client, service string, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", service, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s response: %w", service, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			Service:    service,
			StatusCode: resp.StatusCode,
			Detail:     excerpt(body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("malformed %s response: %w", service, err)
	}
	return nil
}

// excerpt returns a trimmed, length-bounded copy of a response body.
func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxDetailLen {
		s = s[:maxDetailLen] + "..."
	}
	return s
}
