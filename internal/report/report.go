package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/FranksOps/marketscope/internal/model"
	"github.com/google/uuid"
)

// FallbackNarrative replaces the narrative section when the generation
// provider failed. A partial report is always preferred over no report.
const FallbackNarrative = "Narrative analysis is unavailable for this report; the data sections below are complete."

// Assemble merges an aggregation result with the generated narrative into
// the final report. It is a pure merge: it attaches an ID, the original
// query and a timestamp, and never drops the data sections when the
// narrative is missing.
func Assemble(res model.AggregationResult, narrative, query string, ts time.Time) *model.Report {
	if narrative == "" {
		narrative = FallbackNarrative
	}

	return &model.Report{
		ID:              uuid.New().String(),
		Query:           query,
		Timestamp:       ts.UTC(),
		Keywords:        res.Keywords,
		TotalSources:    res.TotalSources,
		MarketSentiment: res.MarketSentiment,
		TrendSeries:     res.TrendSeries,
		Competitors:     res.Competitors,
		Charts:          res.Charts,
		Videos:          res.Videos,
		Narrative:       narrative,
	}
}

// WriteJSON writes the report to the provided writer in indented JSON.
func WriteJSON(w io.Writer, r *model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteText writes a human-readable summary of the report.
func WriteText(w io.Writer, r *model.Report) error {
	const textTmpl = `Market Research Report
----------------------
Query:      {{.Query}}
Time:       {{.Timestamp.Format "2006-01-02 15:04:05"}}
Keywords:   {{range $i, $k := .Keywords}}{{if $i}}, {{end}}{{$k}}{{end}}
Sources:    {{.TotalSources}}
Sentiment:  {{.MarketSentiment.Label}} ({{printf "%.2f" .MarketSentiment.Score}})

Competitors:
{{- range .Competitors}}
  {{printf "%+.2f" .Sentiment}}  {{.Title}}
{{- else}}
  None
{{- end}}

Trend points: {{len .TrendSeries}}
Videos:       {{len .Videos}}

{{.Narrative}}
`

	t, err := template.New("textReport").Parse(textTmpl)
	if err != nil {
		return fmt.Errorf("parse text template: %w", err)
	}
	if err := t.Execute(w, r); err != nil {
		return fmt.Errorf("render text report: %w", err)
	}
	return nil
}

// WriteHTML writes a basic standalone HTML report.
func WriteHTML(w io.Writer, r *model.Report) error {
	const htmlTmpl = `<!DOCTYPE html>
<html>
<head>
<title>Market Research Report</title>
<style>
  body { font-family: sans-serif; margin: 40px; color: #333; }
  h1 { border-bottom: 2px solid #ccc; padding-bottom: 10px; }
  .stat-card { display: inline-block; padding: 20px; margin: 10px 10px 10px 0; background: #f4f4f4; border-radius: 5px; min-width: 150px; }
  .stat-val { font-size: 24px; font-weight: bold; }
  table { border-collapse: collapse; margin-top: 10px; }
  th, td { padding: 8px 12px; border: 1px solid #ccc; text-align: left; }
  th { background: #eaeaea; }
  pre { white-space: pre-wrap; background: #f9f9f9; padding: 15px; border-radius: 5px; }
</style>
</head>
<body>
  <h1>Market Research Report</h1>
  <p><strong>Query:</strong> {{.Query}} &mdash; {{.Timestamp.Format "2006-01-02 15:04:05"}}</p>

  <div class="stat-card">
    <div>Sources</div>
    <div class="stat-val">{{.TotalSources}}</div>
  </div>
  <div class="stat-card">
    <div>Sentiment</div>
    <div class="stat-val">{{.MarketSentiment.Label}} ({{printf "%.2f" .MarketSentiment.Score}})</div>
  </div>
  <div class="stat-card">
    <div>Trend Points</div>
    <div class="stat-val">{{len .TrendSeries}}</div>
  </div>

  <h3>Competitors</h3>
  <table>
    <tr><th>Title</th><th>Sentiment</th><th>URL</th></tr>
    {{- range .Competitors}}
    <tr><td>{{.Title}}</td><td>{{printf "%.2f" .Sentiment}}</td><td>{{.URL}}</td></tr>
    {{- else}}
    <tr><td colspan="3">None</td></tr>
    {{- end}}
  </table>

  <h3>Narrative</h3>
  <pre>{{.Narrative}}</pre>
</body>
</html>
`
	t, err := template.New("htmlReport").Parse(htmlTmpl)
	if err != nil {
		return fmt.Errorf("parse html template: %w", err)
	}
	if err := t.Execute(w, r); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	return nil
}
