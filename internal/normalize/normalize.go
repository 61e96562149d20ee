// Package normalize converts raw provider payloads into the canonical
// record types. All transforms are pure and best-effort: malformed items
// are skipped individually, never aborting the whole batch, because
// upstream page and API formats are unstable.
package normalize

import (
	"sort"
	"strconv"
	"strings"

	"github.com/FranksOps/marketscope/internal/model"
	"github.com/FranksOps/marketscope/internal/provider"
)

// Search normalizes one raw hit. Missing fields default to empty strings;
// the snippet concatenates the hit's snippet and description when both are
// present, space-joined.
func Search(hit provider.RawHit) model.SearchRecord {
	snippet := hit.Snippet
	if hit.Description != "" {
		if snippet != "" {
			snippet += " " + hit.Description
		} else {
			snippet = hit.Description
		}
	}

	return model.SearchRecord{
		Title:         hit.Title,
		Snippet:       snippet,
		URL:           hit.Link,
		DisplayedLink: hit.DisplayedLink,
		PublishedDate: hit.Date,
	}
}

// SearchBatch normalizes a slice of raw hits, skipping entirely empty
// entries. Provider ranking order is preserved.
func SearchBatch(hits []provider.RawHit) []model.SearchRecord {
	records := make([]model.SearchRecord, 0, len(hits))
	for _, hit := range hits {
		if hit.Title == "" && hit.Snippet == "" && hit.Description == "" && hit.Link == "" {
			continue
		}
		records = append(records, Search(hit))
	}
	return records
}

// administrative trend columns that never represent a keyword.
var adminColumns = map[string]struct{}{
	"ispartial":  {},
	"is_partial": {},
}

// Trend normalizes a raw trends table into an ordered series. It drops
// administrative columns, coerces every interest value to float64, skips
// undated or valueless rows, deduplicates dates keeping the first
// occurrence and orders the series chronologically. An empty upstream
// payload yields an empty series, not an error.
func Trend(rows []provider.RawTrendRow) []model.TrendPoint {
	points := make([]model.TrendPoint, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))

	for _, row := range rows {
		if row.Date == "" {
			continue
		}
		if _, dup := seen[row.Date]; dup {
			continue
		}

		values := make(map[string]float64, len(row.Values))
		for key, raw := range row.Values {
			if _, admin := adminColumns[strings.ToLower(key)]; admin {
				continue
			}
			v, ok := toFloat(raw)
			if !ok {
				continue
			}
			if v < 0 {
				v = 0
			}
			values[key] = v
		}
		if len(values) == 0 {
			continue
		}

		seen[row.Date] = struct{}{}
		points = append(points, model.TrendPoint{Date: row.Date, Values: values})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})

	return points
}

// toFloat coerces the mixed numeric types seen in trend payloads to a
// uniform float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Video field defaults, documented behavior for missing upstream data.
const (
	DefaultViews     = "0 views"
	DefaultDuration  = "N/A"
	DefaultPublished = "N/A"
)

// Video normalizes one raw video item. Every field is optional; missing
// fields receive the stated defaults and the record is never rejected.
func Video(item provider.RawVideoItem) model.VideoRecord {
	url := item.URL
	if url == "" && item.VideoID != "" {
		url = "https://youtube.com/watch?v=" + item.VideoID
	}

	views := item.Views
	if views == "" {
		views = DefaultViews
	}
	duration := item.Duration
	if duration == "" {
		duration = DefaultDuration
	}
	published := item.Published
	if published == "" {
		published = DefaultPublished
	}

	return model.VideoRecord{
		Title:       item.Title,
		URL:         url,
		Channel:     item.Channel,
		Description: item.Description,
		Views:       views,
		Duration:    duration,
		Published:   published,
	}
}

// VideoBatch normalizes raw video items, stopping once limit records have
// been collected. A limit of zero or less means no cap.
func VideoBatch(items []provider.RawVideoItem, limit int) []model.VideoRecord {
	records := make([]model.VideoRecord, 0, len(items))
	for _, item := range items {
		if item.Title == "" && item.URL == "" && item.VideoID == "" {
			continue
		}
		records = append(records, Video(item))
		if limit > 0 && len(records) >= limit {
			break
		}
	}
	return records
}
