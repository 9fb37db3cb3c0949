package order

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/safeheat/shop-backend/internal/customer"
	"github.com/safeheat/shop-backend/internal/email"
	"github.com/safeheat/shop-backend/internal/events"
)

// CompletedSession is the slice of a verified "checkout session completed"
// event the reconciler acts on. AmountTotal is the provider-computed total in
// minor units; it is trusted as-is and never recomputed from the cart.
type CompletedSession struct {
	SessionID     string
	CustomerEmail string
	CustomerName  string
	CustomerPhone string
	Address       BillingAddress
	AmountTotal   int64
	Currency      string
	Metadata      map[string]string
}

// Reconciler turns a completed checkout session into a durable order plus a
// best-effort confirmation email and order-created event. It must be safe to
// invoke more than once per session: the provider delivers webhooks
// at-least-once.
type Reconciler struct {
	orders     Repository
	customers  customer.Repository
	mailer     email.Mailer
	publisher  events.Publisher
	appBaseURL string
}

func NewReconciler(orders Repository, customers customer.Repository, mailer email.Mailer, publisher events.Publisher, appBaseURL string) *Reconciler {
	return &Reconciler{
		orders:     orders,
		customers:  customers,
		mailer:     mailer,
		publisher:  publisher,
		appBaseURL: appBaseURL,
	}
}

// Reconcile upserts the customer, creates the order keyed by session id and
// fires the notifications. A duplicate session id is a successful no-op and
// sends nothing a second time. Malformed cart metadata is fatal for the
// event: the money has already moved, so the caller records it for manual
// replay instead of acking silently.
func (r *Reconciler) Reconcile(ctx context.Context, s CompletedSession) error {
	if s.SessionID == "" {
		return fmt.Errorf("completed session has no id")
	}
	if s.CustomerEmail == "" {
		return fmt.Errorf("session %s has no customer email", s.SessionID)
	}

	items, err := DecodeCartItems(s.Metadata["cartItems"])
	if err != nil {
		return fmt.Errorf("session %s: cart metadata: %w", s.SessionID, err)
	}

	if _, err := r.customers.Upsert(customer.Customer{
		Email: s.CustomerEmail,
		Name:  customer.DisplayName(s.CustomerName, s.CustomerEmail),
		Phone: s.CustomerPhone,
	}); err != nil {
		return fmt.Errorf("session %s: customer upsert: %w", s.SessionID, err)
	}

	o := Order{
		ID:             s.SessionID,
		CustomerEmail:  s.CustomerEmail,
		CustomerName:   s.CustomerName,
		CustomerPhone:  s.CustomerPhone,
		BillingAddress: s.Address,
		TotalAmount:    s.AmountTotal,
		Currency:       s.Currency,
		CartItems:      items,
		Status:         StatusPaid,
	}

	created, err := r.orders.Create(o)
	if err == ErrDuplicate {
		// Webhook replay. The order exists, nothing to redo.
		log.Printf("order for session %s already exists, skipping", s.SessionID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("session %s: order create: %w", s.SessionID, err)
	}

	log.Printf("order created for session %s (%s)", s.SessionID, s.CustomerEmail)

	// Everything below is best-effort: the order row is the durable source
	// of truth and is never rolled back by a notification failure.
	r.publishCreated(ctx, created)
	r.sendConfirmation(ctx, created)
	return nil
}

func (r *Reconciler) publishCreated(ctx context.Context, o Order) {
	if r.publisher == nil {
		return
	}
	e := events.OrderCreated{
		SessionID:     o.ID,
		OrderNumber:   Number(o.ID),
		CustomerEmail: o.CustomerEmail,
		TotalAmount:   o.TotalAmount,
		Currency:      o.Currency,
		CreatedAt:     o.CreatedAt,
	}
	if err := r.publisher.PublishOrderCreated(ctx, e); err != nil {
		log.Printf("warning: could not publish order.created for session %s: %v", o.ID, err)
	}
}

func (r *Reconciler) sendConfirmation(ctx context.Context, o Order) {
	if r.mailer == nil {
		return
	}

	items := make([]email.LineItem, 0, len(o.CartItems))
	for _, it := range o.CartItems {
		items = append(items, email.LineItem{Name: it.ProductName, Quantity: it.Quantity, Price: it.Price})
	}
	total := float64(o.TotalAmount) / 100

	c := email.Confirmation{
		CustomerEmail: o.CustomerEmail,
		CustomerName:  customerDisplayName(o),
		OrderNumber:   Number(o.ID),
		OrderDate:     time.Now().Format("January 2, 2006"),
		Items:         items,
		Subtotal:      total,
		Total:         total,
		OrderURL:      fmt.Sprintf("%s/order/%s", r.appBaseURL, o.ID),
	}
	if err := r.mailer.SendOrderConfirmation(ctx, c); err != nil {
		log.Printf("warning: could not send confirmation for session %s: %v", o.ID, err)
		return
	}
	log.Printf("confirmation email sent for session %s", o.ID)
}

func customerDisplayName(o Order) string {
	return customer.DisplayName(o.CustomerName, o.CustomerEmail)
}
