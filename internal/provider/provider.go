// Package provider defines the narrow contracts for every external
// collaborator the pipeline consumes: search, trends, video and narrative
// generation. Implementations may use scraping, official APIs, or other
// mechanisms; the pipeline only sees the raw payload shapes below.
package provider

import (
	"context"

	"github.com/FranksOps/marketscope/internal/model"
)

// RawHit is a single unnormalized search-engine result. Every field is an
// optional string; normalization applies the defaults.
type RawHit struct {
	Title         string `json:"title"`
	Snippet       string `json:"snippet"`
	Description   string `json:"description"`
	Link          string `json:"link"`
	DisplayedLink string `json:"displayed_link"`
	Date          string `json:"date"`
}

// RawTrendRow is one dated row of an unnormalized trends table. Values may
// contain administrative columns (e.g. a partial-data flag) and mixed
// numeric types; normalization drops and coerces them.
type RawTrendRow struct {
	Date   string         `json:"date"`
	Values map[string]any `json:"values"`
}

// RawVideoItem is a single unnormalized video listing. Upstream page
// formats are unstable, so every field is optional.
type RawVideoItem struct {
	Title       string `json:"title"`
	VideoID     string `json:"video_id"`
	URL         string `json:"url"`
	Channel     string `json:"channel_name"`
	Description string `json:"description"`
	Views       string `json:"views"`
	Duration    string `json:"duration"`
	Published   string `json:"published"`
}

// SearchProvider returns raw hits for a query, in provider ranking order.
type SearchProvider interface {
	Search(ctx context.Context, query string) ([]RawHit, error)
}

// TrendsProvider returns a raw time-indexed interest table for up to five
// keywords. An empty table is a valid response.
type TrendsProvider interface {
	Trends(ctx context.Context, keywords []string) ([]RawTrendRow, error)
}

// VideoProvider returns up to limit raw video listings for a query.
type VideoProvider interface {
	Videos(ctx context.Context, query string, limit int) ([]RawVideoItem, error)
}

// Generator produces opaque narrative text from the aggregated prompt
// context. Failures must not be fatal to the pipeline.
type Generator interface {
	Generate(ctx context.Context, pc model.PromptContext) (string, error)
}
