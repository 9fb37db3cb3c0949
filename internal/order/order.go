package order

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Status is the order lifecycle state. Values are wire-exact; they are stored
// verbatim and returned verbatim in JSON.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusPaid       Status = "PAID"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
	StatusRefunded   Status = "REFUNDED"
)

var validStatuses = map[Status]bool{
	StatusPending:    true,
	StatusPaid:       true,
	StatusProcessing: true,
	StatusShipped:    true,
	StatusDelivered:  true,
	StatusCancelled:  true,
	StatusRefunded:   true,
}

// ParseStatus validates a status value coming from a client.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !validStatuses[st] {
		return "", errors.New("unknown order status: " + s)
	}
	return st, nil
}

// CartItem is one purchased line. Prices are major currency units as the
// client displayed them; the authoritative total lives on the order in minor
// units and comes from the payment provider.
type CartItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// DecodeCartItems parses the JSON-serialized cart line items carried in the
// checkout config and echoed back through the session metadata.
func DecodeCartItems(raw string) ([]CartItem, error) {
	if raw == "" {
		return nil, errors.New("cart items payload is empty")
	}
	var items []CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("cart must contain at least one item")
	}
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, errors.New("cart item quantity must be at least 1")
		}
		if it.Price < 0 {
			return nil, errors.New("cart item price must be non-negative")
		}
	}
	return items, nil
}

// BillingAddress holds the address block collected by the hosted checkout.
// All fields are optional but always serialized, so the confirmation page
// sees a stable shape.
type BillingAddress struct {
	Line1      string `json:"billing_address_line1"`
	Line2      string `json:"billing_address_line2"`
	City       string `json:"billing_address_city"`
	State      string `json:"billing_address_state"`
	PostalCode string `json:"billing_address_postal_code"`
	Country    string `json:"billing_address_country"`
}

// Order is the durable record of a completed purchase. The checkout session
// identifier is its natural key; exactly one order exists per session.
type Order struct {
	ID            string `json:"id"`
	CustomerEmail string `json:"customer_email"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	BillingAddress
	TotalAmount    int64      `json:"total_amount"`
	Currency       string     `json:"currency"`
	CartItems      []CartItem `json:"cart_items"`
	Status         Status     `json:"status"`
	ShippedAt      *time.Time `json:"shipped_at"`
	TrackingNumber string     `json:"tracking_number"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Number derives the short human-facing order reference: the last 8
// characters of the session identifier, upper-cased. It is a display value,
// not a lookup key.
func Number(sessionID string) string {
	if len(sessionID) > 8 {
		sessionID = sessionID[len(sessionID)-8:]
	}
	return strings.ToUpper(sessionID)
}
