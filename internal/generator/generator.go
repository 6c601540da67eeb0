// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generator is the client for the optional neural fallback: an
// external conversational model consulted only when every retrieval
// strategy has declined. It is the one component allowed to block for
// hundreds of milliseconds, so it runs under its own timeout and every
// failure is reported as a decline rather than an error.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/pdiddy/answer-engine/internal/httputil"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// Client calls an external text-generation endpoint. A nil Client is a
// valid always-declining generator.
type Client struct {
	endpoint   string
	apiKey     string
	timeout    time.Duration
	maxRetries int
	httpClient *http.Client
	ready      atomic.Bool
}

// New builds a generator client, or nil when no endpoint is configured.
func New(cfg types.GeneratorConfig) *Client {
	if cfg.Endpoint == "" {
		return nil
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		timeout:    timeout,
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Ready reports whether the warmup probe has succeeded. A nil client is
// never ready.
func (c *Client) Ready() bool {
	return c != nil && c.ready.Load()
}

// Warmup probes the endpoint with a trivial prompt and marks the client
// ready on success. Intended to run in a background goroutine at startup;
// the engine serves CoreReady traffic while this is in flight.
func (c *Client) Warmup(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if _, err := c.generate(ctx, []string{"hello"}); err != nil {
		return fmt.Errorf("generator warmup: %w", err)
	}
	c.ready.Store(true)
	return nil
}

type generateRequest struct {
	History []string `json:"history"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// Generate sends the prompt history to the generation endpoint and returns
// the generated text. An empty result, transport failure, or non-200
// status all return ("", err-or-nil) and the caller treats the strategy as
// declined.
func (c *Client) Generate(ctx context.Context, promptHistory []string) (string, error) {
	if c == nil || !c.ready.Load() {
		return "", nil
	}
	return c.generate(ctx, promptHistory)
}

func (c *Client) generate(ctx context.Context, promptHistory []string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{History: promptHistory})
	if err != nil {
		return "", fmt.Errorf("encoding generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.maxRetries)
	if err != nil {
		return "", fmt.Errorf("calling generation endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("generation endpoint returned %s", resp.Status)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding generation response: %w", err)
	}
	return strings.TrimSpace(out.Text), nil
}
