// Package gtrends implements the interest-over-time provider against the
// Google Trends widget API.
//
// The API is unofficial: an explore call issues per-widget tokens, and the
// multiline call returns the timeseries for the TIMESERIES widget. Both
// responses carry an anti-XSSI prefix before the JSON body.
package gtrends

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/FranksOps/marketscope/internal/provider"
	"github.com/FranksOps/marketscope/pkg/httpclient"
	"github.com/FranksOps/marketscope/pkg/ratelimit"
	"github.com/FranksOps/marketscope/pkg/useragent"
)

const (
	// DefaultBaseURL is the public Google Trends host.
	DefaultBaseURL = "https://trends.google.com"

	// DefaultTimeframe matches the three month window the reports describe.
	DefaultTimeframe = "today 3-m"

	// MaxKeywords is the comparison limit the explore endpoint accepts.
	MaxKeywords = 5
)

// Client fetches interest-over-time series for a set of keywords.
type Client struct {
	baseURL   string
	timeframe string
	geo       string
	http      *httpclient.Client
	limiter   *ratelimit.Limiter
	agents    *useragent.Pool
}

var _ provider.TrendsProvider = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTimeframe sets the explore timeframe, e.g. "today 12-m".
func WithTimeframe(tf string) Option {
	return func(c *Client) { c.timeframe = tf }
}

// WithGeo restricts results to a region code, e.g. "US".
func WithGeo(geo string) Option {
	return func(c *Client) { c.geo = geo }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *httpclient.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLimiter sets a rate limiter applied before every request.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// New creates a trends client.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:   DefaultBaseURL,
		timeframe: DefaultTimeframe,
		agents:    useragent.NewPool(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		hc, err := httpclient.New(httpclient.Config{UseCookieJar: true})
		if err != nil {
			return nil, fmt.Errorf("trends client: %w", err)
		}
		c.http = hc
	}
	return c, nil
}

type exploreResponse struct {
	Widgets []exploreWidget `json:"widgets"`
}

type exploreWidget struct {
	ID      string          `json:"id"`
	Token   string          `json:"token"`
	Request json.RawMessage `json:"request"`
}

type multilineResponse struct {
	Default struct {
		TimelineData []timelinePoint `json:"timelineData"`
	} `json:"default"`
}

type timelinePoint struct {
	Time              string    `json:"time"`
	FormattedAxisTime string    `json:"formattedAxisTime"`
	FormattedTime     string    `json:"formattedTime"`
	Value             []float64 `json:"value"`
	HasData           []bool    `json:"hasData"`
	IsPartial         bool      `json:"isPartial"`
}

// Trends fetches one interest-over-time series per keyword. At most
// MaxKeywords are compared; extras are dropped.
func (c *Client) Trends(ctx context.Context, kws []string) ([]provider.RawTrendRow, error) {
	if len(kws) == 0 {
		return nil, nil
	}
	if len(kws) > MaxKeywords {
		kws = kws[:MaxKeywords]
	}

	widget, err := c.explore(ctx, kws)
	if err != nil {
		return nil, err
	}

	points, err := c.multiline(ctx, widget)
	if err != nil {
		return nil, err
	}

	rows := make([]provider.RawTrendRow, 0, len(points))
	for _, pt := range points {
		date := pt.FormattedAxisTime
		if date == "" {
			date = pt.FormattedTime
		}
		values := make(map[string]any, len(kws)+1)
		for i, kw := range kws {
			if i < len(pt.Value) {
				values[kw] = pt.Value[i]
			}
		}
		values["isPartial"] = pt.IsPartial
		rows = append(rows, provider.RawTrendRow{Date: date, Values: values})
	}
	return rows, nil
}

// explore requests widget tokens and returns the TIMESERIES widget.
func (c *Client) explore(ctx context.Context, kws []string) (*exploreWidget, error) {
	type comparisonItem struct {
		Keyword string `json:"keyword"`
		Geo     string `json:"geo"`
		Time    string `json:"time"`
	}
	reqPayload := struct {
		ComparisonItem []comparisonItem `json:"comparisonItem"`
		Category       int              `json:"category"`
		Property       string           `json:"property"`
	}{Category: 0, Property: ""}
	for _, kw := range kws {
		reqPayload.ComparisonItem = append(reqPayload.ComparisonItem, comparisonItem{
			Keyword: kw,
			Geo:     c.geo,
			Time:    c.timeframe,
		})
	}

	reqJSON, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, fmt.Errorf("trends explore: %w", err)
	}

	q := url.Values{}
	q.Set("hl", "en-US")
	q.Set("tz", "0")
	q.Set("req", string(reqJSON))

	body, err := c.get(ctx, c.baseURL+"/trends/api/explore?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("trends explore: %w", err)
	}

	var payload exploreResponse
	if err := json.Unmarshal(stripXSSIPrefix(body), &payload); err != nil {
		return nil, fmt.Errorf("trends explore: %w", err)
	}

	for i := range payload.Widgets {
		if payload.Widgets[i].ID == "TIMESERIES" {
			return &payload.Widgets[i], nil
		}
	}
	return nil, fmt.Errorf("trends explore: no timeseries widget in response")
}

// multiline fetches the timeseries data for an issued widget token.
func (c *Client) multiline(ctx context.Context, widget *exploreWidget) ([]timelinePoint, error) {
	q := url.Values{}
	q.Set("hl", "en-US")
	q.Set("tz", "0")
	q.Set("req", string(widget.Request))
	q.Set("token", widget.Token)

	body, err := c.get(ctx, c.baseURL+"/trends/api/widgetdata/multiline?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("trends multiline: %w", err)
	}

	var payload multilineResponse
	if err := json.Unmarshal(stripXSSIPrefix(body), &payload); err != nil {
		return nil, fmt.Errorf("trends multiline: %w", err)
	}
	return payload.Default.TimelineData, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.agents.GetRandom())
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// stripXSSIPrefix removes the ")]}'" guard bytes preceding the JSON body.
func stripXSSIPrefix(body []byte) []byte {
	if i := bytes.IndexAny(body, "{["); i > 0 {
		return body[i:]
	}
	return body
}
