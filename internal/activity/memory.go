package activity

import (
	"context"
	"sync"
)

// MemoryFeed keeps the feed in process. Used when no Redis is configured.
type MemoryFeed struct {
	mu      sync.RWMutex
	entries []Entry // ring buffer
	next    int
	full    bool
}

var _ Feed = (*MemoryFeed)(nil)

func NewMemoryFeed(limit int) *MemoryFeed {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &MemoryFeed{entries: make([]Entry, limit)}
}

func (f *MemoryFeed) Record(ctx context.Context, e Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[f.next] = e
	f.next = (f.next + 1) % len(f.entries)
	if f.next == 0 {
		f.full = true
	}
	return nil
}

func (f *MemoryFeed) Recent(ctx context.Context, limit int) ([]Entry, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	n := f.next
	if f.full {
		n = len(f.entries)
	}
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]Entry, 0, n)
	for i := 1; i <= n; i++ {
		idx := (f.next - i + len(f.entries)) % len(f.entries)
		out = append(out, f.entries[idx])
	}
	return out, nil
}

func (f *MemoryFeed) Ping(ctx context.Context) error { return nil }

func (f *MemoryFeed) Backend() string { return "memory" }

func (f *MemoryFeed) Close() error { return nil }
