// Package scryfall provides a rate-limited client for the Scryfall card API.
package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/mtgtools/commanderforge/internal/cards"
)

const (
	baseURL        = "https://api.scryfall.com"
	rateLimitDelay = 100 * time.Millisecond // Scryfall asks for 50-100ms between requests
	requestTimeout = 30 * time.Second
	maxRetries     = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 16 * time.Second
)

// Client is a Scryfall API client with rate limiting and retry.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	userAgent   string
	base        string
}

// NewClient creates a new Scryfall API client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		userAgent:   "commanderforge/1.0",
		base:        baseURL,
	}
}

// NewClientWithBase creates a client against a custom base URL. Used by tests
// pointed at an httptest server.
func NewClientWithBase(base string) *Client {
	c := NewClient()
	c.base = base
	return c
}

// GetCardByName retrieves a card by its exact name.
func (c *Client) GetCardByName(ctx context.Context, name string) (*cards.Card, error) {
	endpoint := fmt.Sprintf("%s/cards/named?exact=%s", c.base, url.QueryEscape(name))

	var sc cards.ScryfallCard
	if err := c.doRequest(ctx, endpoint, &sc); err != nil {
		return nil, fmt.Errorf("failed to get card %q: %w", name, err)
	}

	return sc.ToCard(), nil
}

// SearchCards performs a full-text search using Scryfall query syntax.
func (c *Client) SearchCards(ctx context.Context, query string) (*SearchResult, error) {
	endpoint := fmt.Sprintf("%s/cards/search?q=%s", c.base, url.QueryEscape(query))

	var result SearchResult
	if err := c.doRequest(ctx, endpoint, &result); err != nil {
		return nil, fmt.Errorf("failed to search cards with query %q: %w", query, err)
	}

	return &result, nil
}

// GetBulkData retrieves bulk data download information.
func (c *Client) GetBulkData(ctx context.Context) (*BulkDataList, error) {
	endpoint := fmt.Sprintf("%s/bulk-data", c.base)

	var bulkData BulkDataList
	if err := c.doRequest(ctx, endpoint, &bulkData); err != nil {
		return nil, fmt.Errorf("failed to get bulk data: %w", err)
	}

	return &bulkData, nil
}

// DownloadBulkData streams a bulk data file and decodes the card list.
// The oracle-cards bulk file is the canonical corpus source for sync jobs.
func (c *Client) DownloadBulkData(ctx context.Context, downloadURL string) ([]*cards.ScryfallCard, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download bulk data: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bulk data download returned status %d", resp.StatusCode)
	}

	var list []*cards.ScryfallCard
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to parse bulk data: %w", err)
	}

	return list, nil
}

// doRequest performs an HTTP GET with rate limiting and retry logic.
func (c *Client) doRequest(ctx context.Context, endpoint string, result interface{}) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("HTTP request failed: %w", err)
			if attempt < maxRetries {
				time.Sleep(backoff)
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
			if readErr != nil {
				return fmt.Errorf("failed to read response body: %w", readErr)
			}
			if err := json.Unmarshal(body, result); err != nil {
				return fmt.Errorf("failed to parse JSON response: %w", err)
			}
			return nil

		case http.StatusTooManyRequests:
			lastErr = fmt.Errorf("rate limited (HTTP 429)")
			if attempt < maxRetries {
				time.Sleep(backoff)
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return lastErr

		case http.StatusNotFound:
			return &NotFoundError{URL: endpoint}

		default:
			var apiErr APIError
			if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Details != "" {
				return &apiErr
			}
			return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
