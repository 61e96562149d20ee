// Package insight combines normalized records from every provider into a
// single aggregation result: market sentiment, chart-ready series and the
// prompt context for the generation provider. The combine step has no
// ordering dependency between sources and owns no shared state; a missing
// upstream source degrades to empty fields, never to an error.
package insight

import (
	"math"
	"strings"

	"github.com/FranksOps/marketscope/internal/model"
	"github.com/FranksOps/marketscope/internal/sentiment"
)

const (
	// MaxCompetitors caps the competitor section of a report.
	MaxCompetitors = 5

	// Histogram bin edges. Both edges are closed on the neutral side:
	// exactly 0.2 is neutral, not positive.
	positiveEdge = 0.2
	negativeEdge = -0.2

	titleLabelLen    = 30
	summaryMaxLen    = 150
	promptSnippetLen = 200
)

// Aggregate runs the deterministic combine step over the normalized inputs.
// Inputs are read-only; every derived view is built fresh per call.
func Aggregate(keywords []string, records []model.SearchRecord, trends []model.TrendPoint, videos []model.VideoRecord) model.AggregationResult {
	competitors := topCompetitors(records)

	return model.AggregationResult{
		Keywords:        keywords,
		TotalSources:    len(records),
		MarketSentiment: marketSentiment(records),
		TrendSeries:     trends,
		Competitors:     competitors,
		Charts:          buildCharts(keywords, trends, competitors),
		Videos:          videos,
		Prompt:          buildPrompt(keywords, records, trends, videos),
	}
}

// marketSentiment scores every record's snippet and averages, rounding to
// two decimals. An empty input set yields {0, "Neutral"}.
func marketSentiment(records []model.SearchRecord) model.MarketSentiment {
	if len(records) == 0 {
		return model.MarketSentiment{Score: 0, Label: "Neutral"}
	}

	var sum float64
	for _, r := range records {
		sum += sentiment.Score(r.Snippet)
	}
	score := round2(sum / float64(len(records)))

	return model.MarketSentiment{Score: score, Label: sentiment.Label(score)}
}

// topCompetitors attaches sentiment to the top-ranked records, preserving
// provider order. Never exceeds MaxCompetitors.
func topCompetitors(records []model.SearchRecord) []model.Competitor {
	n := len(records)
	if n > MaxCompetitors {
		n = MaxCompetitors
	}

	competitors := make([]model.Competitor, 0, n)
	for _, r := range records[:n] {
		competitors = append(competitors, model.Competitor{
			Title:     r.Title,
			Summary:   Truncate(r.Snippet, summaryMaxLen),
			URL:       r.URL,
			Sentiment: round2(sentiment.Score(r.Snippet)),
		})
	}
	return competitors
}

// buildCharts derives the four chart views. Label counts always match the
// underlying data point counts.
func buildCharts(keywords []string, trends []model.TrendPoint, competitors []model.Competitor) model.ChartData {
	return model.ChartData{
		Trends:              trendChart(keywords, trends),
		Sentiment:           sentimentHistogram(competitors),
		CompetitorSentiment: competitorChart(competitors),
		TopicDistribution:   topicDistribution(keywords, competitors),
	}
}

// trendChart emits one label per trend date and one dataset per requested
// keyword. A keyword missing from a point contributes 0 so every dataset
// stays the same length as the labels.
func trendChart(keywords []string, trends []model.TrendPoint) model.TrendChart {
	labels := make([]string, 0, len(trends))
	for _, p := range trends {
		labels = append(labels, p.Date)
	}

	datasets := make([]model.Dataset, 0, len(keywords))
	for _, kw := range keywords {
		data := make([]float64, 0, len(trends))
		for _, p := range trends {
			data = append(data, p.Values[kw])
		}
		datasets = append(datasets, model.Dataset{Label: kw, Data: data})
	}

	return model.TrendChart{Labels: labels, Datasets: datasets}
}

// sentimentHistogram buckets competitor sentiment into three fixed bins.
// The bin counts always sum to the number of competitors.
func sentimentHistogram(competitors []model.Competitor) model.SentimentChart {
	var pos, neu, neg int
	for _, c := range competitors {
		switch {
		case c.Sentiment > positiveEdge:
			pos++
		case c.Sentiment < negativeEdge:
			neg++
		default:
			neu++
		}
	}

	return model.SentimentChart{
		Labels: []string{"Positive", "Neutral", "Negative"},
		Data:   []int{pos, neu, neg},
	}
}

// competitorChart pairs a truncated title label with each competitor's
// score, in original rank order. Labels take the first 30 characters of
// the title before any "|" separator.
func competitorChart(competitors []model.Competitor) model.CompetitorChart {
	labels := make([]string, 0, len(competitors))
	data := make([]float64, 0, len(competitors))

	for _, c := range competitors {
		label := c.Title
		if i := strings.Index(label, "|"); i >= 0 {
			label = label[:i]
		}
		if runes := []rune(label); len(runes) > titleLabelLen {
			label = string(runes[:titleLabelLen])
		}
		labels = append(labels, label)
		data = append(data, c.Sentiment)
	}

	return model.CompetitorChart{Labels: labels, Data: data}
}

// topicDistribution counts competitor titles mentioning at least one
// requested keyword. Deliberately coarse: one aggregate count for the
// whole topic list, not a count per keyword.
func topicDistribution(keywords []string, competitors []model.Competitor) model.TopicChart {
	count := 0
	for _, c := range competitors {
		title := strings.ToLower(c.Title)
		for _, kw := range keywords {
			if kw != "" && strings.Contains(title, kw) {
				count++
				break
			}
		}
	}

	return model.TopicChart{
		Labels: append([]string(nil), keywords...),
		Data:   []int{count},
	}
}

// buildPrompt assembles the provider-agnostic payload for the generation
// provider: top competitors with truncated snippets, per-keyword trend
// values with the matching date sequence, and video summaries if present.
func buildPrompt(keywords []string, records []model.SearchRecord, trends []model.TrendPoint, videos []model.VideoRecord) model.PromptContext {
	n := len(records)
	if n > MaxCompetitors {
		n = MaxCompetitors
	}

	insights := make([]model.CompetitorInsight, 0, n)
	for _, r := range records[:n] {
		insights = append(insights, model.CompetitorInsight{
			Title:     r.Title,
			Summary:   Truncate(r.Snippet, promptSnippetLen),
			Sentiment: round2(sentiment.Score(r.Snippet)),
		})
	}

	dates := make([]string, 0, len(trends))
	for _, p := range trends {
		dates = append(dates, p.Date)
	}

	values := make(map[string][]float64, len(keywords))
	for _, kw := range keywords {
		series := make([]float64, 0, len(trends))
		present := false
		for _, p := range trends {
			v, ok := p.Values[kw]
			if ok {
				present = true
			}
			series = append(series, v)
		}
		if present {
			values[kw] = series
		}
	}

	summaries := make([]model.VideoSummary, 0, len(videos))
	for _, v := range videos {
		summaries = append(summaries, model.VideoSummary{
			Title:   v.Title,
			Channel: v.Channel,
			Views:   v.Views,
		})
	}

	return model.PromptContext{
		Keywords:    keywords,
		Competitors: insights,
		Trends:      model.TrendSummary{Values: values, Dates: dates},
		Videos:      summaries,
	}
}

// Truncate shortens s to at most max characters, appending "..." when
// anything was cut. Operates on runes so multi-byte text is not split.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// round2 rounds to two decimal places, the precision every persisted
// sentiment value carries.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
