package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeCreator struct {
	lastReq SessionRequest
	fail    bool
}

func (f *fakeCreator) CreateSession(_ context.Context, req SessionRequest) (Session, error) {
	f.lastReq = req
	if f.fail {
		return Session{}, errors.New("provider rejected the session")
	}
	return Session{ID: "cs_test_abcdefgh12345678", URL: "https://checkout.stripe.com/c/pay/cs_test_abcdefgh12345678"}, nil
}

func heaterPayload(amount float64) Payload {
	return Payload{
		Amount:   amount,
		Currency: "USD",
		Config: map[string]string{
			"cartItems": `[{"productId":"p1","productName":"Heater","quantity":2,"price":179.99}]`,
		},
	}
}

func TestCreateSession_Valid(t *testing.T) {
	creator := &fakeCreator{}
	s := NewService(creator, "https://shop.example")

	sess, err := s.CreateSession(context.Background(), heaterPayload(359.98))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("expected a non-empty session id")
	}
	if !strings.Contains(sess.URL, sess.ID) {
		t.Fatalf("expected URL to reference the session id, got %q", sess.URL)
	}

	// the provider substitutes the placeholder at redirect time
	if creator.lastReq.SuccessURL != "https://shop.example/order/{CHECKOUT_SESSION_ID}" {
		t.Fatalf("unexpected success URL %q", creator.lastReq.SuccessURL)
	}
	if creator.lastReq.CancelURL != "https://shop.example/" {
		t.Fatalf("unexpected cancel URL %q", creator.lastReq.CancelURL)
	}
	if len(creator.lastReq.LineItems) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(creator.lastReq.LineItems))
	}
	li := creator.lastReq.LineItems[0]
	if li.UnitAmount != 17999 {
		t.Fatalf("expected unit amount 17999 minor units, got %d", li.UnitAmount)
	}
	if li.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", li.Quantity)
	}
	// the cart survives to the webhook via metadata
	if creator.lastReq.Metadata["cartItems"] == "" {
		t.Fatal("expected cartItems to be forwarded as metadata")
	}
}

func TestCreateSession_AmountOutOfBounds(t *testing.T) {
	s := NewService(&fakeCreator{}, "https://shop.example")

	for _, amount := range []float64{0.01, 200000} {
		_, err := s.CreateSession(context.Background(), heaterPayload(amount))
		if !errors.Is(err, ErrValidation) {
			t.Errorf("amount %v: expected validation error, got %v", amount, err)
		}
	}

	// boundary values are inclusive
	for _, amount := range []float64{0.50, 100000} {
		if _, err := s.CreateSession(context.Background(), heaterPayload(amount)); err != nil {
			t.Errorf("amount %v: expected success, got %v", amount, err)
		}
	}
}

func TestCreateSession_BadCartPayload(t *testing.T) {
	s := NewService(&fakeCreator{}, "https://shop.example")

	p := heaterPayload(100)
	p.Config = map[string]string{"cartItems": "[]"}
	if _, err := s.CreateSession(context.Background(), p); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for empty cart, got %v", err)
	}

	p.Config = nil
	if _, err := s.CreateSession(context.Background(), p); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for missing config, got %v", err)
	}
}

func TestCreateSession_ProviderFailure(t *testing.T) {
	s := NewService(&fakeCreator{fail: true}, "https://shop.example")

	_, err := s.CreateSession(context.Background(), heaterPayload(359.98))
	if err == nil {
		t.Fatal("expected provider error")
	}
	if errors.Is(err, ErrValidation) {
		t.Fatal("provider failure must not be classified as a validation error")
	}
}

func TestCreateSession_RelativeCancelPath(t *testing.T) {
	creator := &fakeCreator{}
	s := NewService(creator, "https://shop.example")

	p := heaterPayload(359.98)
	p.OnCancelRedirectTo = "product/safeheat-propane-heater"
	if _, err := s.CreateSession(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creator.lastReq.CancelURL != "https://shop.example/product/safeheat-propane-heater" {
		t.Fatalf("unexpected cancel URL %q", creator.lastReq.CancelURL)
	}
}

func TestMinorUnits(t *testing.T) {
	cases := map[float64]int64{
		179.99: 17999,
		0.50:   50,
		100:    10000,
		0.1:    10,
	}
	for price, want := range cases {
		if got := minorUnits(price); got != want {
			t.Errorf("minorUnits(%v) = %d, want %d", price, got, want)
		}
	}
}
