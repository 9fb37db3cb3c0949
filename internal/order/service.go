package order

import "time"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetBySessionID is a pure read; the confirmation page polls it until the
// webhook has landed, so ErrNotFound is an expected answer.
func (s *Service) GetBySessionID(sessionID string) (Order, error) {
	return s.repo.GetBySessionID(sessionID)
}

// UpdateStatus moves an existing order to the given status. Transitioning to
// SHIPPED stamps shipped_at and records the tracking number when provided.
func (s *Service) UpdateStatus(sessionID string, status Status, trackingNumber string) (Order, error) {
	return s.repo.UpdateStatus(sessionID, status, trackingNumber, time.Now().UTC())
}
