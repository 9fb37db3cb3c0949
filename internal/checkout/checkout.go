package checkout

import (
	"context"
	"errors"
)

// Inclusive bounds on the charge total, in major currency units. They mirror
// the provider's own minimum charge and a sanity ceiling for a single
// storefront order.
const (
	MinAmount = 0.50
	MaxAmount = 100000
)

// ErrValidation marks client-input failures. Handlers map it to a 4xx and
// never retry; anything else from session creation is a provider failure.
var ErrValidation = errors.New("invalid checkout request")

// Payload is the checkout request the browser sends. Config is opaque and
// travels to the webhook as session metadata; it must contain the
// JSON-serialized cart line items under "cartItems". Prices inside it are
// display values only, the provider-confirmed total is what the order
// ultimately records.
type Payload struct {
	Amount             float64           `json:"amount"`
	Currency           string            `json:"currency"`
	OnCancelRedirectTo string            `json:"onCancelRedirectTo"`
	Config             map[string]string `json:"config"`
}

// LineItem is one hosted-checkout price/quantity pair. UnitAmount is in
// minor currency units.
type LineItem struct {
	Name        string
	Description string
	UnitAmount  int64
	Quantity    int64
}

// SessionRequest is everything the payment provider needs to open a hosted
// checkout session.
type SessionRequest struct {
	Currency   string
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// Session identifies the created hosted-checkout flow.
type Session struct {
	ID  string `json:"sessionId"`
	URL string `json:"url"`
}

// SessionCreator creates hosted checkout sessions upstream. The Stripe
// implementation lives in stripe.go; tests substitute a fake.
type SessionCreator interface {
	CreateSession(ctx context.Context, req SessionRequest) (Session, error)
}
