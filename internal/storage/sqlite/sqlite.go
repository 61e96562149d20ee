package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/FranksOps/marketscope/internal/model"
	"github.com/FranksOps/marketscope/internal/storage"
	_ "modernc.org/sqlite"
)

// ensure sqliteBackend implements storage.Backend
var _ storage.Backend = (*sqliteBackend)(nil)

type sqliteBackend struct {
	db        *sql.DB
	retention int
}

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	id TEXT PRIMARY KEY,
	query TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	document TEXT NOT NULL
);
`

// New creates a new SQLite-backed storage.Backend. A retention of zero or
// less falls back to storage.DefaultRetention.
func New(dsn string, retention int) (storage.Backend, error) {
	if retention <= 0 {
		retention = storage.DefaultRetention
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &sqliteBackend{db: db, retention: retention}, nil
}

func (b *sqliteBackend) Put(ctx context.Context, r *model.Report) error {
	doc, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	_, err = b.db.ExecContext(ctx,
		`INSERT INTO reports (id, query, created_at, document) VALUES (?, ?, ?, ?)`,
		r.ID, r.Query, r.Timestamp, string(doc),
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}

	_, err = b.db.ExecContext(ctx, `
		DELETE FROM reports WHERE id IN (
			SELECT id FROM reports ORDER BY created_at DESC LIMIT -1 OFFSET ?
		)`, b.retention)
	if err != nil {
		return fmt.Errorf("prune reports: %w", err)
	}

	return nil
}

func (b *sqliteBackend) ListRecent(ctx context.Context, n int) ([]*model.Report, error) {
	if n <= 0 {
		n = b.retention
	}

	rows, err := b.db.QueryContext(ctx,
		`SELECT document FROM reports ORDER BY created_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var reports []*model.Report
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}

		var r model.Report
		if err := json.Unmarshal([]byte(doc), &r); err != nil {
			return nil, fmt.Errorf("unmarshal report: %w", err)
		}
		reports = append(reports, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}

	return reports, nil
}

func (b *sqliteBackend) Close() error {
	return b.db.Close()
}
