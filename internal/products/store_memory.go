package products

import (
	"context"
	"slices"
	"sync"
)

// MemStore keeps products in process memory, in insertion order. Each call
// holds the lock for its own duration only; a read followed by a write from
// a caller is not atomic.
type MemStore struct {
	mu       sync.RWMutex
	products []Product
}

func NewMemStore(seed ...Product) *MemStore {
	s := &MemStore{}
	s.Replace(seed)
	return s
}

// NewStore returns a store holding the three seed products.
func NewStore() *MemStore {
	return NewMemStore(SeedProducts()...)
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

func (s *MemStore) Get(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.products, func(p Product) bool { return p.ID == id })
	if i < 0 {
		return Product{}, false
	}
	return s.products[i], true
}

func (s *MemStore) Append(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
}

func (s *MemStore) Update(id string, pl Payload) ([]Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i, p := range s.products {
		if p.ID != id {
			continue
		}
		s.products[i] = pl.Apply(p)
		found = true
	}
	if !found {
		return nil, false
	}
	return s.snapshot(), true
}

func (s *MemStore) Delete(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.products)
	s.products = slices.DeleteFunc(s.products, func(p Product) bool { return p.ID == id })
	return before - len(s.products)
}

func (s *MemStore) Replace(all []Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = slices.Clone(all)
}

func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// snapshot copies the sequence; callers hold the lock.
func (s *MemStore) snapshot() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}
