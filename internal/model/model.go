package model

import "time"

// SearchRecord is a single normalized search-engine hit. Missing upstream
// fields default to empty strings; records are immutable once created.
type SearchRecord struct {
	Title         string `json:"title"`
	Snippet       string `json:"snippet"`
	URL           string `json:"url"`
	DisplayedLink string `json:"displayed_link"`
	PublishedDate string `json:"date,omitempty"`
}

// TrendPoint is one dated row of a trends time series. Values maps each
// requested keyword to a non-negative interest score.
type TrendPoint struct {
	Date   string             `json:"date"`
	Values map[string]float64 `json:"values"`
}

// VideoRecord is a normalized video search result. Every field is optional
// upstream; a record is never rejected for missing fields.
type VideoRecord struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Channel     string `json:"channel_name"`
	Description string `json:"description"`
	Views       string `json:"views"`
	Duration    string `json:"duration"`
	Published   string `json:"published"`
}

// MarketSentiment is the aggregate sentiment over all considered search
// records. Score is the arithmetic mean of per-record sentiments rounded to
// two decimals; an empty input set yields {0, "Neutral"}.
type MarketSentiment struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

// Competitor is a top-ranked SearchRecord with its sentiment attached.
// Order follows the original provider ranking.
type Competitor struct {
	Title     string  `json:"title"`
	Summary   string  `json:"summary"`
	URL       string  `json:"url"`
	Sentiment float64 `json:"sentiment"`
}

// Report is the canonical analysis output. It is assembled once per request
// and never mutated afterwards; it must serialize losslessly to JSON for
// persistence and API responses.
type Report struct {
	ID              string          `json:"id"`
	Query           string          `json:"query"`
	Timestamp       time.Time       `json:"timestamp"`
	Keywords        []string        `json:"keywords"`
	TotalSources    int             `json:"total_sources"`
	MarketSentiment MarketSentiment `json:"market_sentiment"`
	TrendSeries     []TrendPoint    `json:"trend_series"`
	Competitors     []Competitor    `json:"competitor_records"`
	Charts          ChartData       `json:"chart_series"`
	Videos          []VideoRecord   `json:"videos,omitempty"`
	Narrative       string          `json:"narrative_text"`
}
