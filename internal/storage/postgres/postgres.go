package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/FranksOps/marketscope/internal/model"
	"github.com/FranksOps/marketscope/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ensure postgresBackend implements storage.Backend
var _ storage.Backend = (*postgresBackend)(nil)

type postgresBackend struct {
	pool      *pgxpool.Pool
	retention int
}

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	id TEXT PRIMARY KEY,
	query TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	document JSONB NOT NULL
);
`

// New creates a new Postgres-backed storage.Backend. A retention of zero
// or less falls back to storage.DefaultRetention.
func New(ctx context.Context, dsn string, retention int) (storage.Backend, error) {
	if retention <= 0 {
		retention = storage.DefaultRetention
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &postgresBackend{pool: pool, retention: retention}, nil
}

func (b *postgresBackend) Put(ctx context.Context, r *model.Report) error {
	doc, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	_, err = b.pool.Exec(ctx,
		`INSERT INTO reports (id, query, created_at, document) VALUES ($1, $2, $3, $4)`,
		r.ID, r.Query, r.Timestamp, doc,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}

	// Prune beyond the retention bound, oldest first.
	_, err = b.pool.Exec(ctx, `
		DELETE FROM reports WHERE id IN (
			SELECT id FROM reports ORDER BY created_at DESC OFFSET $1
		)`, b.retention)
	if err != nil {
		return fmt.Errorf("prune reports: %w", err)
	}

	return nil
}

func (b *postgresBackend) ListRecent(ctx context.Context, n int) ([]*model.Report, error) {
	if n <= 0 {
		n = b.retention
	}

	rows, err := b.pool.Query(ctx,
		`SELECT document FROM reports ORDER BY created_at DESC LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var reports []*model.Report
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}

		var r model.Report
		if err := json.Unmarshal(doc, &r); err != nil {
			return nil, fmt.Errorf("unmarshal report: %w", err)
		}
		reports = append(reports, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}

	return reports, nil
}

func (b *postgresBackend) Close() error {
	b.pool.Close()
	return nil
}
