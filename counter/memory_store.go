package counter

import (
	"context"
	"sync"
)

// MemoryStore keeps the counters in process, it's goroutine-safe
type MemoryStore struct {
	v map[string]int64
	sync.Mutex
}

// NewMemoryStore returns an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{v: make(map[string]int64)}
}

// Kind implements Store.Kind
func (p *MemoryStore) Kind() string {
	return KindMemory
}

// Get implements Store.Get
func (p *MemoryStore) Get(ctx context.Context, name string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	p.Lock()
	defer p.Unlock()
	return p.v[name], nil
}

// Incr implements Store.Incr
func (p *MemoryStore) Incr(ctx context.Context, name string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	p.Lock()
	defer p.Unlock()
	p.v[name]++
	return p.v[name], nil
}
