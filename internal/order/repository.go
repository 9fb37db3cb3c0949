package order

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrDuplicate reports that an order already exists for the session
	// identifier. Callers treating webhook replays as no-ops must check for
	// it explicitly.
	ErrDuplicate = errors.New("order already exists for session")
)

type Repository interface {
	// Create inserts the order. It returns ErrDuplicate when an order with
	// the same session identifier already exists; the row is left untouched.
	Create(o Order) (Order, error)
	GetBySessionID(sessionID string) (Order, error)
	// UpdateStatus sets the status for the order with the given session
	// identifier. A transition to SHIPPED records shippedAt and, when
	// non-empty, the tracking number.
	UpdateStatus(sessionID string, status Status, trackingNumber string, shippedAt time.Time) (Order, error)
}

// InMemoryRepository backs handler and reconciler tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]Order
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{orders: make(map[string]Order)}
}

func (r *InMemoryRepository) Create(o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID]; ok {
		return Order{}, ErrDuplicate
	}
	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
	r.orders[o.ID] = o
	return o, nil
}

func (r *InMemoryRepository) GetBySessionID(sessionID string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[sessionID]
	if !ok {
		return Order{}, ErrNotFound
	}
	return o, nil
}

func (r *InMemoryRepository) UpdateStatus(sessionID string, status Status, trackingNumber string, shippedAt time.Time) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[sessionID]
	if !ok {
		return Order{}, ErrNotFound
	}
	o.Status = status
	if status == StatusShipped {
		t := shippedAt
		o.ShippedAt = &t
		if trackingNumber != "" {
			o.TrackingNumber = trackingNumber
		}
	}
	o.UpdatedAt = time.Now().UTC()
	r.orders[sessionID] = o
	return o, nil
}

// Count reports how many orders are stored. Test helper.
func (r *InMemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}
