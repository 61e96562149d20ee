// Package pipeline orchestrates one market-research analysis: keyword
// extraction, concurrent provider fan-out, normalization, aggregation,
// narrative generation and persistence. Each invocation is request-scoped
// and owns its own records; no state is shared across concurrent runs.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/FranksOps/marketscope/internal/insight"
	"github.com/FranksOps/marketscope/internal/keywords"
	"github.com/FranksOps/marketscope/internal/metrics"
	"github.com/FranksOps/marketscope/internal/model"
	"github.com/FranksOps/marketscope/internal/normalize"
	"github.com/FranksOps/marketscope/internal/provider"
	"github.com/FranksOps/marketscope/internal/report"
	"github.com/FranksOps/marketscope/internal/storage"
	"golang.org/x/sync/errgroup"
)

// DefaultVideoLimit caps how many video results are collected per request.
const DefaultVideoLimit = 5

// Config wires the pipeline's collaborators. Search is the only provider
// that gates report quality; all of them may be nil, degrading the
// corresponding report section.
type Config struct {
	Search     provider.SearchProvider
	Trends     provider.TrendsProvider
	Videos     provider.VideoProvider
	Generator  provider.Generator
	Store      storage.Backend
	VideoLimit int
	Logger     *slog.Logger
}

// Pipeline runs analyses. Safe for concurrent use: every Run call works on
// its own data.
type Pipeline struct {
	cfg Config
	log *slog.Logger
}

// New creates a pipeline from the given configuration.
func New(cfg Config) *Pipeline {
	if cfg.VideoLimit <= 0 {
		cfg.VideoLimit = DefaultVideoLimit
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, log: cfg.Logger}
}

// Run executes the full analysis for one business description. The only
// terminal error is ErrNoKeywords; every upstream failure degrades the
// affected report section and processing continues.
func (p *Pipeline) Run(ctx context.Context, query string) (*model.Report, error) {
	start := time.Now()

	kws := keywords.Extract(query)
	if len(kws) == 0 {
		metrics.RecordAnalysis("no_keywords", time.Since(start))
		return nil, ErrNoKeywords
	}

	searchQuery := strings.Join(kws, " ")

	var (
		searchRecords []model.SearchRecord
		trendSeries   []model.TrendPoint
		videoRecords  []model.VideoRecord
	)

	// Fan out the three data providers. Each goroutine absorbs its own
	// failure; the combine step only needs all of them to have finished.
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hits, err := p.callSearch(gCtx, searchQuery)
		if err != nil {
			p.recover(&ProviderError{Provider: "search", Err: err})
			return nil
		}
		searchRecords = normalize.SearchBatch(hits)
		return nil
	})

	g.Go(func() error {
		rows, err := p.callTrends(gCtx, kws)
		if err != nil {
			p.recover(&ProviderError{Provider: "trends", Err: err})
			return nil
		}
		trendSeries = normalize.Trend(rows)
		return nil
	})

	g.Go(func() error {
		items, err := p.callVideos(gCtx, searchQuery)
		if err != nil {
			p.recover(&ProviderError{Provider: "video", Err: err})
			return nil
		}
		videoRecords = normalize.VideoBatch(items, p.cfg.VideoLimit)
		return nil
	})

	// Workers never return errors, but Wait also observes ctx cancellation.
	if err := g.Wait(); err != nil {
		metrics.RecordAnalysis("canceled", time.Since(start))
		return nil, err
	}

	result := insight.Aggregate(kws, searchRecords, trendSeries, videoRecords)

	narrative := p.generate(ctx, result.Prompt)

	rep := report.Assemble(result, narrative, query, time.Now())

	p.persist(ctx, rep)

	metrics.RecordAnalysis("ok", time.Since(start))
	return rep, nil
}

func (p *Pipeline) callSearch(ctx context.Context, query string) ([]provider.RawHit, error) {
	if p.cfg.Search == nil {
		return nil, nil
	}
	start := time.Now()
	hits, err := p.cfg.Search.Search(ctx, query)
	metrics.RecordProvider("search", time.Since(start), err)
	return hits, err
}

func (p *Pipeline) callTrends(ctx context.Context, kws []string) ([]provider.RawTrendRow, error) {
	if p.cfg.Trends == nil {
		return nil, nil
	}
	start := time.Now()
	rows, err := p.cfg.Trends.Trends(ctx, kws)
	metrics.RecordProvider("trends", time.Since(start), err)
	return rows, err
}

func (p *Pipeline) callVideos(ctx context.Context, query string) ([]provider.RawVideoItem, error) {
	if p.cfg.Videos == nil {
		return nil, nil
	}
	start := time.Now()
	items, err := p.cfg.Videos.Videos(ctx, query, p.cfg.VideoLimit)
	metrics.RecordProvider("video", time.Since(start), err)
	return items, err
}

// generate asks the generation provider for narrative text. On failure it
// returns an empty string so the assembler substitutes the diagnostic
// placeholder; the rest of the report is unaffected.
func (p *Pipeline) generate(ctx context.Context, pc model.PromptContext) string {
	if p.cfg.Generator == nil {
		return ""
	}

	start := time.Now()
	narrative, err := p.cfg.Generator.Generate(ctx, pc)
	metrics.RecordProvider("generation", time.Since(start), err)
	if err != nil {
		p.recover(&GenerationError{Err: err})
		return ""
	}
	return narrative
}

// persist writes the report to the document store. Failures are logged and
// counted but never affect the response returned to the caller.
func (p *Pipeline) persist(ctx context.Context, r *model.Report) {
	if p.cfg.Store == nil {
		return
	}

	if err := p.cfg.Store.Put(ctx, r); err != nil {
		metrics.PersistenceFailures.Inc()
		p.recover(&PersistenceError{Err: err})
	}
}

// recover logs a locally absorbed failure.
func (p *Pipeline) recover(err error) {
	p.log.Warn("pipeline stage degraded", "error", err)
}
