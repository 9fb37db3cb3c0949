package product

import (
	"sync"
	"time"
)

// Service is a read-through cache in front of the repository. Each server
// instance keeps its own cache, so staleness across the fleet is bounded by
// the TTL; Invalidate only clears the local copy.
type Service struct {
	repo Repository
	ttl  time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry

	// now is swapped out by tests to step time.
	now func() time.Time
}

type cacheEntry struct {
	product   Product
	fetchedAt time.Time
}

func NewService(repo Repository, ttl time.Duration) *Service {
	return &Service{
		repo:  repo,
		ttl:   ttl,
		cache: make(map[string]cacheEntry),
		now:   time.Now,
	}
}

func (s *Service) GetBySlug(slug string) (Product, error) {
	s.mu.Lock()
	entry, ok := s.cache[slug]
	fresh := ok && s.now().Sub(entry.fetchedAt) < s.ttl
	s.mu.Unlock()

	if fresh {
		return entry.product, nil
	}

	p, err := s.repo.GetBySlug(slug)
	if err != nil {
		// Misses are not cached: a product that appears later should be
		// visible on the next read.
		return Product{}, err
	}

	s.mu.Lock()
	s.cache[slug] = cacheEntry{product: p, fetchedAt: s.now()}
	s.mu.Unlock()
	return p, nil
}

// Invalidate drops the cached copy so the next read hits the repository.
func (s *Service) Invalidate(slug string) {
	s.mu.Lock()
	delete(s.cache, slug)
	s.mu.Unlock()
}

// EnsureSeeded inserts the product only when no row with its slug exists.
// Boot-time seeding must never overwrite edits made through the upsert
// route; those are durable across restarts.
func (s *Service) EnsureSeeded(p Product) error {
	_, err := s.repo.GetBySlug(p.Slug)
	if err == nil {
		return nil
	}
	if err != ErrNotFound {
		return err
	}
	_, err = s.repo.Upsert(p)
	return err
}

// Upsert writes through the repository and invalidates the cached copy.
func (s *Service) Upsert(p Product) (Product, error) {
	out, err := s.repo.Upsert(p)
	if err != nil {
		return Product{}, err
	}
	s.Invalidate(p.Slug)
	return out, nil
}
