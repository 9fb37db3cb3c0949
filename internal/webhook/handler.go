package webhook

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v76"
	stripewebhook "github.com/stripe/stripe-go/v76/webhook"

	"github.com/safeheat/shop-backend/internal/order"
)

// Reconciler is implemented by order.Reconciler.
type Reconciler interface {
	Reconcile(ctx context.Context, s order.CompletedSession) error
}

// Handler receives signed provider events. Signature verification is the
// sole authentication gate for the whole reconciliation pipeline; nothing
// past it runs on an unverified body.
type Handler struct {
	secret     string
	reconciler Reconciler
	failures   FailureStore
}

func NewHandler(secret string, reconciler Reconciler, failures FailureStore) *Handler {
	return &Handler{secret: secret, reconciler: reconciler, failures: failures}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/stripe/webhook", h.handle)
}

func (h *Handler) handle(c *fiber.Ctx) error {
	// The signature covers the exact request bytes, so the body must stay
	// unparsed until verification.
	body := c.Body()
	sig := c.Get("Stripe-Signature")

	// Tolerate API-version drift between the account's webhook pin and the
	// SDK; the fields read here are stable across versions.
	event, err := stripewebhook.ConstructEventWithOptions(body, sig, h.secret, stripewebhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		log.Printf("webhook signature verification failed: %v", err)
		return c.Status(fiber.StatusBadRequest).SendString("Webhook Error: " + err.Error())
	}

	switch string(event.Type) {
	case "checkout.session.completed":
		h.handleSessionCompleted(c, event, body)
	case "payment_intent.succeeded", "payment_intent.payment_failed", "charge.succeeded":
		// Informational in this design; the completed-session event drives
		// order creation.
		log.Printf("webhook event %s (%s) acknowledged", event.ID, event.Type)
	default:
		log.Printf("unhandled webhook event type %s (%s)", event.Type, event.ID)
	}

	// Acknowledge every verified event. Re-delivery cannot fix a
	// business-logic failure, so a retry storm would only add noise; the
	// failure store keeps the event for manual replay.
	return c.JSON(fiber.Map{"received": true})
}

func (h *Handler) handleSessionCompleted(c *fiber.Ctx, event stripe.Event, body []byte) {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		log.Printf("could not decode checkout session from event %s: %v", event.ID, err)
		h.recordFailure("", string(event.Type), body, err)
		return
	}

	if err := h.reconciler.Reconcile(c.Context(), completedSession(sess)); err != nil {
		// Paid customer, no order row. The most severe failure class here:
		// keep the raw event so the payment can be reconciled by hand.
		log.Printf("reconciliation failed for session %s: %v", sess.ID, err)
		h.recordFailure(sess.ID, string(event.Type), body, err)
		return
	}
}

func (h *Handler) recordFailure(sessionID, eventType string, payload []byte, cause error) {
	if h.failures == nil {
		return
	}
	if err := h.failures.Record(sessionID, eventType, payload, cause); err != nil {
		log.Printf("warning: could not record webhook failure for session %s: %v", sessionID, err)
	}
}

func completedSession(sess stripe.CheckoutSession) order.CompletedSession {
	cs := order.CompletedSession{
		SessionID:   sess.ID,
		AmountTotal: sess.AmountTotal,
		Currency:    strings.ToUpper(string(sess.Currency)),
		Metadata:    sess.Metadata,
	}
	if cs.Currency == "" {
		cs.Currency = "USD"
	}
	if d := sess.CustomerDetails; d != nil {
		cs.CustomerEmail = d.Email
		cs.CustomerName = d.Name
		cs.CustomerPhone = d.Phone
		if a := d.Address; a != nil {
			cs.Address = order.BillingAddress{
				Line1:      a.Line1,
				Line2:      a.Line2,
				City:       a.City,
				State:      a.State,
				PostalCode: a.PostalCode,
				Country:    a.Country,
			}
		}
	}
	return cs
}
