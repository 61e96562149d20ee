package model

// Dataset is one labelled line of a multi-series chart.
type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// TrendChart plots interest over time: one label per trend date, one
// dataset per requested keyword. Dataset lengths always match the labels.
type TrendChart struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// SentimentChart buckets competitor sentiment into the fixed
// Positive/Neutral/Negative bins.
type SentimentChart struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// CompetitorChart holds one truncated title and one score per competitor,
// in original rank order.
type CompetitorChart struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// TopicChart reports how many competitor titles mention any of the
// requested keywords. Intentionally coarse: a single aggregate count.
type TopicChart struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// ChartData bundles the four chart-ready views derived from one report.
// None of them mutate the underlying records.
type ChartData struct {
	Trends              TrendChart      `json:"trends_chart"`
	Sentiment           SentimentChart  `json:"sentiment_chart"`
	CompetitorSentiment CompetitorChart `json:"competitor_sentiment"`
	TopicDistribution   TopicChart      `json:"topic_distribution"`
}

// CompetitorInsight is the trimmed competitor view handed to the
// generation provider.
type CompetitorInsight struct {
	Title     string  `json:"title"`
	Summary   string  `json:"summary"`
	Sentiment float64 `json:"sentiment"`
}

// TrendSummary carries per-keyword trend values with the matching date
// sequence for the generation prompt.
type TrendSummary struct {
	Values map[string][]float64 `json:"trend_values"`
	Dates  []string             `json:"dates"`
}

// VideoSummary is the condensed video view included in the prompt context
// when video results are present.
type VideoSummary struct {
	Title   string `json:"title"`
	Channel string `json:"channel_name"`
	Views   string `json:"views"`
}

// PromptContext is the provider-agnostic payload handed to the generation
// provider. The aggregator never depends on the provider's response format
// beyond treating it as opaque narrative text.
type PromptContext struct {
	Keywords    []string            `json:"keywords"`
	Competitors []CompetitorInsight `json:"competitor_data"`
	Trends      TrendSummary        `json:"trends_summary"`
	Videos      []VideoSummary      `json:"video_results,omitempty"`
}

// AggregationResult is the combined output of the insight aggregator,
// consumed by the report assembler.
type AggregationResult struct {
	Keywords        []string
	TotalSources    int
	MarketSentiment MarketSentiment
	TrendSeries     []TrendPoint
	Competitors     []Competitor
	Charts          ChartData
	Videos          []VideoRecord
	Prompt          PromptContext
}
