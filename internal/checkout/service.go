package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/safeheat/shop-backend/internal/order"
)

// Service validates checkout requests and initiates hosted payment sessions.
// It persists nothing: the webhook is what eventually turns a session into
// an order.
type Service struct {
	creator    SessionCreator
	appBaseURL string
}

func NewService(creator SessionCreator, appBaseURL string) *Service {
	return &Service{creator: creator, appBaseURL: appBaseURL}
}

// CreateSession validates the payload and opens a session with the provider.
// The success URL carries the provider's session-id placeholder so the
// confirmation page can look the order up after redirect.
func (s *Service) CreateSession(ctx context.Context, p Payload) (Session, error) {
	if !(p.Amount >= MinAmount && p.Amount <= MaxAmount) {
		return Session{}, fmt.Errorf("%w: amount must be between %v and %v", ErrValidation, MinAmount, MaxAmount)
	}

	items, err := order.DecodeCartItems(p.Config["cartItems"])
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	cancelPath := p.OnCancelRedirectTo
	if cancelPath == "" {
		cancelPath = "/"
	}
	if !strings.HasPrefix(cancelPath, "/") {
		cancelPath = "/" + cancelPath
	}

	req := SessionRequest{
		Currency:   p.Currency,
		LineItems:  make([]LineItem, 0, len(items)),
		SuccessURL: s.appBaseURL + "/order/{CHECKOUT_SESSION_ID}",
		CancelURL:  s.appBaseURL + cancelPath,
		Metadata:   p.Config,
	}
	for _, it := range items {
		req.LineItems = append(req.LineItems, LineItem{
			Name:        it.ProductName,
			Description: fmt.Sprintf("Quantity: %d", it.Quantity),
			UnitAmount:  minorUnits(it.Price),
			Quantity:    int64(it.Quantity),
		})
	}

	return s.creator.CreateSession(ctx, req)
}

// minorUnits converts a major-unit price to minor units without float
// multiplication error (179.99 must become 17999, never 17998).
func minorUnits(price float64) int64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
