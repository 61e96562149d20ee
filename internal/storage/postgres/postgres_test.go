package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/FranksOps/marketscope/internal/model"
)

func TestPostgresBackend(t *testing.T) {
	// Only run this test if MARKETSCOPE_TEST_PG_DSN is set
	dsn := os.Getenv("MARKETSCOPE_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("Skipping Postgres backend test: MARKETSCOPE_TEST_PG_DSN not set")
	}

	ctx := context.Background()
	b, err := New(ctx, dsn, 10)
	if err != nil {
		t.Fatalf("Failed to create Postgres backend: %v", err)
	}
	defer b.Close()

	r := &model.Report{
		ID:              "pg-test-1",
		Query:           "running shoes",
		Timestamp:       time.Now().UTC(),
		Keywords:        []string{"shoes"},
		TotalSources:    3,
		MarketSentiment: model.MarketSentiment{Score: 0.33, Label: "Positive"},
		TrendSeries: []model.TrendPoint{
			{Date: "2026-01-04", Values: map[string]float64{"shoes": 12}},
		},
		Narrative: "pg narrative",
	}

	if err := b.Put(ctx, r); err != nil {
		t.Fatalf("Failed to put report: %v", err)
	}

	reports, err := b.ListRecent(ctx, 1)
	if err != nil {
		t.Fatalf("Failed to list reports: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
	if reports[0].ID != "pg-test-1" {
		t.Errorf("unexpected report: %+v", reports[0])
	}
	if reports[0].TrendSeries[0].Values["shoes"] != 12 {
		t.Errorf("trend values not preserved: %+v", reports[0].TrendSeries)
	}
}
