package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hpn/voice-agent-gateway/internal/domain"
)

// endpoint is the outbound half shared by every adapter: one fixed URL, one
// bearer token, one HTTP client.
type endpoint struct {
	provider   domain.ProviderType
	apiKey     string
	url        string
	httpClient *http.Client

	timeout    time.Duration
	hasTimeout bool
}

// Option is a functional option for configuring an adapter.
type Option func(*endpoint)

// WithEndpoint overrides the provider's agent-creation URL.
func WithEndpoint(url string) Option {
	return func(e *endpoint) {
		if url != "" {
			e.url = strings.TrimSuffix(url, "/")
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(e *endpoint) {
		if client != nil {
			e.httpClient = client
		}
	}
}

// WithTimeout sets the outbound call timeout. Zero means no timeout.
// It applies regardless of option order and never mutates a client passed
// through WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(e *endpoint) {
		e.timeout = timeout
		e.hasTimeout = true
	}
}

func newEndpoint(provider domain.ProviderType, apiKey, defaultURL string, opts ...Option) endpoint {
	e := endpoint{
		provider:   provider,
		apiKey:     apiKey,
		url:        defaultURL,
		httpClient: &http.Client{},
	}

	for _, opt := range opts {
		opt(&e)
	}

	if e.hasTimeout && e.httpClient.Timeout != e.timeout {
		owned := *e.httpClient
		owned.Timeout = e.timeout
		e.httpClient = &owned
	}

	return e
}

// HasCredentials reports whether an API key was configured.
func (e *endpoint) HasCredentials() bool {
	return e.apiKey != ""
}

// post sends payload as JSON and returns the raw 2xx response body.
func (e *endpoint) post(ctx context.Context, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", e.provider, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+e.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, &domain.NetworkError{Provider: e.provider, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{
			Provider: e.provider,
			Err:      fmt.Errorf("failed to read response: %w", err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamError{
			Provider: e.provider,
			Status:   resp.StatusCode,
			Body:     respBody,
		}
	}

	if len(bytes.TrimSpace(respBody)) == 0 {
		return json.RawMessage(`""`), nil
	}
	if !json.Valid(respBody) {
		return nil, &domain.NetworkError{
			Provider: e.provider,
			Err:      fmt.Errorf("malformed response body (status %d)", resp.StatusCode),
		}
	}

	return json.RawMessage(respBody), nil
}
