package checkout

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func makeApp(creator SessionCreator) *fiber.App {
	app := fiber.New()
	NewHandler(NewService(creator, "https://shop.example")).RegisterPublicRoutes(app)
	return app
}

func postCheckout(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/v1/checkout/sessions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var got map[string]any
	b, _ := io.ReadAll(res.Body)
	_ = json.Unmarshal(b, &got)
	return res.StatusCode, got
}

func TestCreateSessionEndpoint_Success(t *testing.T) {
	app := makeApp(&fakeCreator{})

	status, got := postCheckout(t, app, `{
		"amount": 359.98,
		"currency": "USD",
		"config": {"cartItems": "[{\"productId\":\"p1\",\"productName\":\"Heater\",\"quantity\":2,\"price\":179.99}]"}
	}`)

	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if got["sessionId"] == "" || got["sessionId"] == nil {
		t.Fatalf("expected a session id, got %v", got)
	}
	if got["url"] == "" || got["url"] == nil {
		t.Fatalf("expected a redirect URL, got %v", got)
	}
}

func TestCreateSessionEndpoint_InvalidAmount(t *testing.T) {
	app := makeApp(&fakeCreator{})

	status, got := postCheckout(t, app, `{
		"amount": 0.01,
		"currency": "USD",
		"config": {"cartItems": "[{\"productId\":\"p1\",\"productName\":\"Heater\",\"quantity\":1,\"price\":0.01}]"}
	}`)

	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if got["statusCode"] != float64(fiber.StatusBadRequest) {
		t.Fatalf("expected statusCode field in error body, got %v", got)
	}
	if got["message"] == nil {
		t.Fatalf("expected message field in error body, got %v", got)
	}
}

func TestCreateSessionEndpoint_ProviderError(t *testing.T) {
	app := makeApp(&fakeCreator{fail: true})

	status, got := postCheckout(t, app, `{
		"amount": 359.98,
		"currency": "USD",
		"config": {"cartItems": "[{\"productId\":\"p1\",\"productName\":\"Heater\",\"quantity\":2,\"price\":179.99}]"}
	}`)

	if status != fiber.StatusBadGateway {
		t.Fatalf("expected 502 for provider rejection, got %d", status)
	}
	if got["statusCode"] != float64(fiber.StatusBadGateway) {
		t.Fatalf("expected statusCode field in error body, got %v", got)
	}
}

func TestCreateSessionEndpoint_MalformedBody(t *testing.T) {
	app := makeApp(&fakeCreator{})

	status, _ := postCheckout(t, app, `{broken`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", status)
	}
}
