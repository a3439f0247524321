package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/exp/slog"
)

// Retry policy for transient collaborator failures.
const (
	defaultMaxAttempts = 3
	backoffBase        = 1000 * time.Millisecond
)

// TransientServiceError marks a collaborator failure with a recognized
// transient signature. It is returned only after the retry budget is
// exhausted.
type TransientServiceError struct {
	Status int
	Err    error
}

func (e *TransientServiceError) Error() string {
	return fmt.Sprintf("the service is temporarily unavailable (status %d): %v", e.Status, e.Err)
}

func (e *TransientServiceError) Unwrap() error { return e.Err }

// PermanentServiceError is any other collaborator failure: bad input,
// safety rejection, quota. Never retried.
type PermanentServiceError struct {
	Status int
	Err    error
}

func (e *PermanentServiceError) Error() string {
	return fmt.Sprintf("the service rejected the request (status %d): %v", e.Status, e.Err)
}

func (e *PermanentServiceError) Unwrap() error { return e.Err }

// isTransient recognizes the retryable failure signatures: HTTP 503 or a
// body carrying an UNAVAILABLE/overloaded marker.
func isTransient(status int, body string) bool {
	if status == http.StatusServiceUnavailable {
		return true
	}
	return strings.Contains(body, "UNAVAILABLE") ||
		strings.Contains(strings.ToLower(body), "overloaded")
}

// Client calls the identity and image generation endpoints.
type Client struct {
	BaseURL     string
	HTTPClient  *http.Client
	Logger      *slog.Logger
	MaxAttempts int

	// Backoff overrides the initial retry delay. Zero means the default
	// 1000ms base.
	Backoff time.Duration
}

// NewClient creates a client for the generator service rooted at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:     strings.TrimSuffix(baseURL, "/"),
		HTTPClient:  &http.Client{Timeout: 60 * time.Second},
		Logger:      slog.Default(),
		MaxAttempts: defaultMaxAttempts,
	}
}

// GenerateIdentity produces a structured brand identity from the mission
// statement, locale matched to the request.
func (c *Client) GenerateIdentity(ctx context.Context, req IdentityRequest) (*BrandIdentity, error) {
	var identity BrandIdentity
	if err := c.postJSON(ctx, "/v1/identity", req, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// GenerateIcon asks the image generator for a single text-free icon raster
// and returns it as an inline data URL ready for compositing. A response
// without image data (e.g. a safety filter rejection) is a permanent
// failure: retrying the same prompt would be rejected again.
func (c *Client) GenerateIcon(ctx context.Context, prompt string, colors []string) (string, error) {
	var res iconResponse
	if err := c.postJSON(ctx, "/v1/icon", iconRequest{Prompt: prompt, Colors: colors}, &res); err != nil {
		return "", err
	}
	if res.Image == "" {
		return "", &PermanentServiceError{
			Status: http.StatusOK,
			Err:    fmt.Errorf("the generator returned no image for the prompt"),
		}
	}
	return res.Image, nil
}

// postJSON sends one JSON request and decodes the JSON response, retrying
// transient failures with exponential backoff (base 1s, doubling) up to the
// configured attempt budget. Permanent failures surface immediately.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("could not encode the request body: %w", err)
	}

	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}

	var lastErr error
	delay := c.Backoff
	if delay <= 0 {
		delay = backoffBase
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			c.Logger.Warn("retrying transient service failure",
				"path", path, "attempt", attempt, "backoff", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay *= 2
		}

		status, resBody, err := c.post(ctx, path, payload)
		if err != nil {
			// Transport errors (connection refused, reset) are worth a retry.
			lastErr = &TransientServiceError{Err: err}
			continue
		}

		if status == http.StatusOK {
			if err := json.Unmarshal(resBody, out); err != nil {
				return &PermanentServiceError{Status: status,
					Err: fmt.Errorf("could not decode the response body: %w", err)}
			}
			return nil
		}

		if isTransient(status, string(resBody)) {
			lastErr = &TransientServiceError{Status: status,
				Err: fmt.Errorf("%s", strings.TrimSpace(string(resBody)))}
			continue
		}

		return &PermanentServiceError{Status: status,
			Err: fmt.Errorf("%s", strings.TrimSpace(string(resBody)))}
	}

	return lastErr
}

// post performs a single POST round trip.
func (c *Client) post(ctx context.Context, path string, payload []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, err
	}
	return res.StatusCode, resBody, nil
}
