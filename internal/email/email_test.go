package email

import (
	"strings"
	"testing"
)

func TestRenderConfirmation(t *testing.T) {
	html, err := RenderConfirmation(Confirmation{
		CustomerEmail: "jordan@example.com",
		CustomerName:  "Jordan",
		OrderNumber:   "12345678",
		OrderDate:     "February 3, 2026",
		Items:         []LineItem{{Name: "Heater", Quantity: 2, Price: 179.99}},
		Subtotal:      359.98,
		Total:         359.98,
		OrderURL:      "https://shop.example/order/cs_test_abcdefgh12345678",
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for _, want := range []string{
		"#12345678",
		"Hi Jordan,",
		"Quantity: 2",
		"$359.98",
		"https://shop.example/order/cs_test_abcdefgh12345678",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered email missing %q", want)
		}
	}
}

func TestRenderConfirmation_EscapesCustomerInput(t *testing.T) {
	html, err := RenderConfirmation(Confirmation{
		CustomerEmail: "x@example.com",
		CustomerName:  "<script>alert(1)</script>",
		OrderNumber:   "ABCDEF12",
		Items:         []LineItem{{Name: "Heater", Quantity: 1, Price: 179.99}},
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Fatal("customer-supplied name must be HTML-escaped")
	}
}
