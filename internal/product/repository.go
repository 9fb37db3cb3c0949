package product

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("product not found")

type Repository interface {
	GetBySlug(slug string) (Product, error)
	Upsert(p Product) (Product, error)
}

// InMemoryRepository is used by tests and local seeding.
type InMemoryRepository struct {
	mu     sync.RWMutex
	bySlug map[string]Product
	nextID int
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{bySlug: make(map[string]Product, len(seed)), nextID: 1}
	for _, p := range seed {
		if p.ID == 0 {
			p.ID = r.nextID
		}
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
		r.bySlug[p.Slug] = p
	}
	return r
}

func (r *InMemoryRepository) GetBySlug(slug string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.bySlug[slug]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (r *InMemoryRepository) Upsert(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.bySlug[p.Slug]; ok {
		p.ID = existing.ID
	} else {
		p.ID = r.nextID
		r.nextID++
	}
	r.bySlug[p.Slug] = p
	return p, nil
}
