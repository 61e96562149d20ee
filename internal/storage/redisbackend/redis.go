package redisbackend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/FranksOps/marketscope/internal/model"
	"github.com/FranksOps/marketscope/internal/storage"
	"github.com/redis/go-redis/v9"
)

// ensure redisBackend implements storage.Backend
var _ storage.Backend = (*redisBackend)(nil)

const reportListKey = "marketscope:reports"

// redisBackend keeps reports in a capped Redis list. LPUSH+LTRIM gives the
// append-only-with-bounded-retention semantics natively: the head of the
// list is always the newest report.
type redisBackend struct {
	client    *redis.Client
	retention int
}

// New creates a Redis-backed storage.Backend from a redis:// URL or a bare
// host:port address. A retention of zero or less falls back to
// storage.DefaultRetention.
func New(ctx context.Context, addr string, retention int) (storage.Backend, error) {
	if retention <= 0 {
		retention = storage.DefaultRetention
	}

	opt, err := redis.ParseURL(addr)
	if err != nil {
		opt = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &redisBackend{client: client, retention: retention}, nil
}

func (b *redisBackend) Put(ctx context.Context, r *model.Report) error {
	doc, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	pipe := b.client.TxPipeline()
	pipe.LPush(ctx, reportListKey, doc)
	pipe.LTrim(ctx, reportListKey, 0, int64(b.retention)-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push report: %w", err)
	}

	return nil
}

func (b *redisBackend) ListRecent(ctx context.Context, n int) ([]*model.Report, error) {
	if n <= 0 {
		n = b.retention
	}

	docs, err := b.client.LRange(ctx, reportListKey, 0, int64(n)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("range reports: %w", err)
	}

	reports := make([]*model.Report, 0, len(docs))
	for _, doc := range docs {
		var r model.Report
		if err := json.Unmarshal([]byte(doc), &r); err != nil {
			return nil, fmt.Errorf("unmarshal report: %w", err)
		}
		reports = append(reports, &r)
	}

	return reports, nil
}

func (b *redisBackend) Close() error {
	return b.client.Close()
}
