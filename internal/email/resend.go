package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendMailer sends order confirmations through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey), from: from}
}

func (m *ResendMailer) SendOrderConfirmation(ctx context.Context, c Confirmation) error {
	html, err := RenderConfirmation(c)
	if err != nil {
		return err
	}

	req := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{c.CustomerEmail},
		Subject: fmt.Sprintf("Order Confirmation - Order #%s", c.OrderNumber),
		Html:    html,
	}

	_, err = m.client.Emails.SendWithContext(ctx, req)
	return err
}
