package customer

import (
	"errors"
	"sync"
	"time"
)

var ErrNotFound = errors.New("customer not found")

type Repository interface {
	// Upsert creates the customer when the email is new and refreshes
	// name/phone otherwise. Invoking it twice with the same email must leave
	// exactly one record.
	Upsert(c Customer) (Customer, error)
	GetByEmail(email string) (Customer, error)
}

// InMemoryRepository is used by reconciler and handler tests.
type InMemoryRepository struct {
	mu        sync.RWMutex
	customers map[string]Customer
	nextID    int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{customers: make(map[string]Customer), nextID: 1}
}

func (r *InMemoryRepository) Upsert(c Customer) (Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC().Format(time.RFC3339)
	existing, ok := r.customers[c.Email]
	if ok {
		existing.Name = c.Name
		existing.Phone = c.Phone
		existing.UpdatedAt = now
		r.customers[c.Email] = existing
		return existing, nil
	}
	c.ID = r.nextID
	r.nextID++
	c.CreatedAt = now
	c.UpdatedAt = now
	r.customers[c.Email] = c
	return c, nil
}

func (r *InMemoryRepository) GetByEmail(email string) (Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.customers[email]
	if !ok {
		return Customer{}, ErrNotFound
	}
	return c, nil
}

// Count reports how many customers are stored. Test helper.
func (r *InMemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.customers)
}
