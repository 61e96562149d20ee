package jsonbackend

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/FranksOps/marketscope/internal/model"
	"github.com/FranksOps/marketscope/internal/storage"
)

// ensure jsonBackend implements storage.Backend
var _ storage.Backend = (*jsonBackend)(nil)

// jsonBackend appends reports to an NDJSON file. It is the zero-dependency
// backend for local runs; retention is enforced at read time, not by
// rewriting the file.
type jsonBackend struct {
	mu   sync.Mutex
	file *os.File
}

// New creates a new NDJSON-backed storage.Backend.
func New(filePath string) (storage.Backend, error) {
	f, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open report file: %w", err)
	}

	return &jsonBackend{file: f}, nil
}

func (b *jsonBackend) Put(ctx context.Context, r *model.Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append report: %w", err)
	}

	return nil
}

func (b *jsonBackend) ListRecent(ctx context.Context, n int) ([]*model.Report, error) {
	if n <= 0 {
		n = storage.DefaultRetention
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek report file: %w", err)
	}
	defer func() {
		// Restore pointer to end for writing.
		_, _ = b.file.Seek(0, io.SeekEnd)
	}()

	scanner := bufio.NewScanner(b.file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	var all []*model.Report
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var r model.Report
		if err := json.Unmarshal(line, &r); err != nil {
			// Best-effort: a torn write should not poison history.
			continue
		}
		all = append(all, &r)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read report file: %w", err)
	}

	// Newest first (file order is append order).
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}

	if n < len(all) {
		all = all[:n]
	}

	return all, nil
}

func (b *jsonBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.file.Close()
}
