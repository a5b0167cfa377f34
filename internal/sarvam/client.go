package sarvam

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/whitehorse-dev/sarvam-auto-talker/internal/config"
	"github.com/whitehorse-dev/sarvam-auto-talker/internal/ports"
)

// Client talks to the Sarvam API. One instance implements the STT, translate
// and TTS gateway ports; it holds no per-request state.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.SarvamBaseURL, "/"),
		apiKey:  cfg.SarvamAPIKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError carries the provider HTTP status for retry classification plus the
// response body for diagnostics.
type APIError struct {
	Status  int
	Payload ports.Payload // parsed body, nil if the body was not JSON
	Body    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sarvam: status %d: %s", e.Status, e.Body)
}

func (e *APIError) HTTPStatus() int { return e.Status }

func (e *APIError) ProviderPayload() ports.Payload { return e.Payload }

func (c *Client) postJSON(ctx context.Context, path string, body any) (ports.Payload, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, path)
}

func (c *Client) do(req *http.Request, path string) (ports.Payload, error) {
	req.Header.Set("api-subscription-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sarvam %s request: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("sarvam %s read body: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Body: string(body)}
		var parsed ports.Payload
		if json.Unmarshal(body, &parsed) == nil {
			apiErr.Payload = parsed
		}
		return nil, apiErr
	}

	var payload ports.Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("sarvam %s decode body: %w", path, err)
	}
	return payload, nil
}
