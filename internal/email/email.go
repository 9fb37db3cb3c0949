package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
)

// LineItem is one row of the order summary table.
type LineItem struct {
	Name     string
	Quantity int
	Price    float64
}

// Confirmation carries everything the order confirmation message shows.
// Amounts are major currency units, already divided out of the provider's
// minor-unit total.
type Confirmation struct {
	CustomerEmail string
	CustomerName  string
	OrderNumber   string
	OrderDate     string
	Items         []LineItem
	Subtotal      float64
	Total         float64
	OrderURL      string
}

// Mailer dispatches customer notifications. Implementations are best-effort:
// callers log failures and move on, the order row is the source of truth.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, c Confirmation) error
}

var confirmationTmpl = template.Must(template.New("orderConfirmation").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	"lineTotal": func(it LineItem) string {
		return fmt.Sprintf("$%.2f", it.Price*float64(it.Quantity))
	},
}).Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Order Confirmation - SafeHeat</title>
  </head>
  <body style="font-family: Arial, sans-serif; color: #111827;">
    <h1>SafeHeat</h1>
    <h2>Order Confirmed!</h2>
    <p>Hi {{.CustomerName}},</p>
    <p>Thank you for your order! We're excited to get your SafeHeat Propane Garage Heater on its way to you.</p>
    <table>
      <tr><td>Order Number</td><td><strong>#{{.OrderNumber}}</strong></td></tr>
      <tr><td>Order Date</td><td>{{.OrderDate}}</td></tr>
      <tr><td>Email</td><td>{{.CustomerEmail}}</td></tr>
    </table>
    <h3>Order Summary</h3>
    <table>
      {{range .Items}}
      <tr>
        <td>{{.Name}}</td>
        <td>Quantity: {{.Quantity}}</td>
        <td>{{lineTotal .}}</td>
      </tr>
      {{end}}
    </table>
    <table>
      <tr><td>Subtotal</td><td>{{money .Subtotal}}</td></tr>
      <tr><td>Shipping</td><td>FREE</td></tr>
      <tr><td><strong>Total</strong></td><td><strong>{{money .Total}}</strong></td></tr>
    </table>
    <p><a href="{{.OrderURL}}">View Order Details</a></p>
    <p>Your order will ship within 2-5 business days. You'll receive a shipping confirmation with tracking.</p>
    <p>Stay warm!<br><strong>The SafeHeat Team</strong></p>
  </body>
</html>`))

// RenderConfirmation produces the HTML body for a confirmation message.
func RenderConfirmation(c Confirmation) (string, error) {
	var buf bytes.Buffer
	if err := confirmationTmpl.Execute(&buf, c); err != nil {
		return "", err
	}
	return buf.String(), nil
}
