// Package serpapi implements the web-search provider against a SerpApi
// compatible endpoint.
package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/FranksOps/marketscope/internal/provider"
	"github.com/FranksOps/marketscope/pkg/httpclient"
	"github.com/FranksOps/marketscope/pkg/ratelimit"
)

const (
	// DefaultBaseURL is the public SerpApi endpoint.
	DefaultBaseURL = "https://serpapi.com"

	// MaxResults caps how many organic results one search collects.
	MaxResults = 25
)

// Client queries a SerpApi-style search endpoint and maps its organic
// results to raw hits.
type Client struct {
	apiKey  string
	baseURL string
	http    *httpclient.Client
	limiter *ratelimit.Limiter
}

var _ provider.SearchProvider = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *httpclient.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLimiter sets a rate limiter applied before every request.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// New creates a search client for the given API key.
func New(apiKey string, opts ...Option) (*Client, error) {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		hc, err := httpclient.New(httpclient.Config{})
		if err != nil {
			return nil, fmt.Errorf("search client: %w", err)
		}
		c.http = hc
	}
	return c, nil
}

// searchResponse mirrors the subset of the SerpApi payload we consume.
type searchResponse struct {
	OrganicResults []organicResult `json:"organic_results"`
	Error          string          `json:"error"`
}

type organicResult struct {
	Title         string `json:"title"`
	Snippet       string `json:"snippet"`
	Description   string `json:"description"`
	Link          string `json:"link"`
	DisplayedLink string `json:"displayed_link"`
	Date          string `json:"date"`
}

// Search runs one Google-engine query and returns up to MaxResults hits.
func (c *Client) Search(ctx context.Context, query string) ([]provider.RawHit, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	q := url.Values{}
	q.Set("engine", "google")
	q.Set("q", query)
	q.Set("num", fmt.Sprintf("%d", MaxResults))
	q.Set("api_key", c.apiKey)

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/search.json?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search request: unexpected status %d: %s", resp.StatusCode, body)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("search response: %w", err)
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("search response: %s", payload.Error)
	}

	hits := make([]provider.RawHit, 0, len(payload.OrganicResults))
	for _, r := range payload.OrganicResults {
		if len(hits) >= MaxResults {
			break
		}
		hits = append(hits, provider.RawHit{
			Title:         r.Title,
			Snippet:       r.Snippet,
			Description:   r.Description,
			Link:          r.Link,
			DisplayedLink: r.DisplayedLink,
			Date:          r.Date,
		})
	}
	return hits, nil
}
