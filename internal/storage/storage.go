package storage

import (
	"context"

	"github.com/FranksOps/marketscope/internal/model"
)

// DefaultRetention bounds how many reports a backend keeps. The store is
// append-only up to this bound; inserting past it prunes the oldest
// documents rather than wiping history.
const DefaultRetention = 50

// Backend defines the interface for persisting and retrieving reports.
// Reports are opaque documents: backends never inspect the analysis
// sections, they only order by insertion time.
type Backend interface {
	// Put stores one report. Backends enforce the retention bound either
	// by pruning on write or by capping what ListRecent returns.
	Put(ctx context.Context, r *model.Report) error
	// ListRecent returns up to n reports, newest first.
	ListRecent(ctx context.Context, n int) ([]*model.Report, error)
	Close() error
}
