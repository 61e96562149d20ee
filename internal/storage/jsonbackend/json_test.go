package jsonbackend

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/FranksOps/marketscope/internal/model"
)

func newTestReport(id string, ts time.Time) *model.Report {
	return &model.Report{
		ID:              id,
		Query:           "running shoes",
		Timestamp:       ts,
		Keywords:        []string{"shoes"},
		TotalSources:    2,
		MarketSentiment: model.MarketSentiment{Score: 0.25, Label: "Positive"},
		TrendSeries: []model.TrendPoint{
			{Date: "2026-01-04", Values: map[string]float64{"shoes": 41.5}},
		},
		Narrative: "narrative for " + id,
	}
}

func TestJSONBackend(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "reports.jsonl")

	b, err := New(filePath)
	if err != nil {
		t.Fatalf("Failed to create JSON backend: %v", err)
	}
	defer b.Close()

	ctx := context.Background()
	now := time.Now().Truncate(time.Millisecond).UTC() // JSON marshals with precision limits

	for i := 0; i < 3; i++ {
		r := newTestReport(fmt.Sprintf("json%d", i), now.Add(time.Duration(i)*time.Minute))
		if err := b.Put(ctx, r); err != nil {
			t.Fatalf("Failed to put report: %v", err)
		}
	}

	reports, err := b.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("Failed to list reports: %v", err)
	}

	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	// Newest first.
	if reports[0].ID != "json2" || reports[1].ID != "json1" {
		t.Errorf("unexpected order: %s, %s", reports[0].ID, reports[1].ID)
	}
	if reports[0].TrendSeries[0].Values["shoes"] != 41.5 {
		t.Errorf("trend value not preserved: %v", reports[0].TrendSeries[0].Values)
	}
}

func TestJSONBackendEmptyFile(t *testing.T) {
	b, err := New(filepath.Join(t.TempDir(), "empty.jsonl"))
	if err != nil {
		t.Fatalf("Failed to create JSON backend: %v", err)
	}
	defer b.Close()

	reports, err := b.ListRecent(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("expected no reports, got %d", len(reports))
	}
}

func TestJSONBackendReopen(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "reports.jsonl")
	ctx := context.Background()

	b, err := New(filePath)
	if err != nil {
		t.Fatalf("Failed to create JSON backend: %v", err)
	}
	if err := b.Put(ctx, newTestReport("persisted", time.Now().UTC())); err != nil {
		t.Fatalf("Failed to put report: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Failed to close backend: %v", err)
	}

	b2, err := New(filePath)
	if err != nil {
		t.Fatalf("Failed to reopen JSON backend: %v", err)
	}
	defer b2.Close()

	reports, err := b2.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("Failed to list reports: %v", err)
	}
	if len(reports) != 1 || reports[0].ID != "persisted" {
		t.Errorf("expected persisted report, got %+v", reports)
	}
}
