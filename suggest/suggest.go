// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// Provider returns short gift idea strings for a recipient name. It
// never fails observably: on any internal error it degrades to a
// static fallback list.
type Provider interface {
	Ideas(ctx context.Context, recipientName string) []string
}

// FallbackIdeas is served whenever the upstream API is unavailable,
// unconfigured, or misbehaving.
var FallbackIdeas = []string{
	"A lump of coal (premium edition)",
	"Ugly sweater with flashing lights",
	"Fruitcake from 1995",
}

// Client calls an external gift idea API. Concurrent requests for the
// same recipient collapse into one upstream call via singleflight.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	sf         singleflight.Group
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

type ideasRequest struct {
	Name string `json:"name"`
}

type ideasResponse struct {
	Ideas []string `json:"ideas"`
}

// Ideas returns gift suggestions for a recipient. The result is for
// display only; correctness of the exchange never depends on it.
func (c *Client) Ideas(ctx context.Context, recipientName string) []string {
	if c.baseURL == "" || c.apiKey == "" {
		return FallbackIdeas
	}

	key := strings.ToLower(strings.TrimSpace(recipientName))
	v, err, _ := c.sf.Do(key, func() (interface{}, error) {
		return c.fetch(ctx, recipientName)
	})
	if err != nil {
		slog.Warn("gift idea fetch failed, using fallback", "error", err)
		return FallbackIdeas
	}

	ideas := v.([]string)
	if len(ideas) == 0 {
		return FallbackIdeas
	}
	return ideas
}

func (c *Client) fetch(ctx context.Context, recipientName string) ([]string, error) {
	body, err := json.Marshal(ideasRequest{Name: recipientName})
	if err != nil {
		return nil, fmt.Errorf("failed to encode ideas request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/ideas", strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to build ideas request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ideas request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ideas API returned status %d", resp.StatusCode)
	}

	var parsed ideasResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode ideas response: %w", err)
	}
	return parsed.Ideas, nil
}

// Static is a Provider that always returns the same ideas. Useful in
// tests and as an explicit no-API deployment mode.
type Static struct {
	List []string
}

func (s Static) Ideas(context.Context, string) []string {
	if len(s.List) == 0 {
		return FallbackIdeas
	}
	return s.List
}
