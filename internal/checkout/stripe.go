package checkout

import (
	"context"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeClient creates hosted checkout sessions against the Stripe API.
type StripeClient struct {
	api *client.API
}

func NewStripeClient(secretKey string) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api}
}

func (s *StripeClient) CreateSession(ctx context.Context, req SessionRequest) (Session, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.LineItems))
	for _, it := range req.LineItems {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(req.Currency),
				UnitAmount: stripe.Int64(it.UnitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(it.Name),
					Description: stripe.String(it.Description),
				},
			},
			Quantity: stripe.Int64(it.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SubmitType:         stripe.String(string(stripe.CheckoutSessionSubmitTypePay)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		PhoneNumberCollection: &stripe.CheckoutSessionPhoneNumberCollectionParams{
			Enabled: stripe.Bool(true),
		},
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionRequired)),
		LineItems:                lineItems,
		SuccessURL:               stripe.String(req.SuccessURL),
		CancelURL:                stripe.String(req.CancelURL),
		CustomerCreation:         stripe.String(string(stripe.CheckoutSessionCustomerCreationAlways)),
		AllowPromotionCodes:      stripe.Bool(true),
	}
	params.Context = ctx
	// Metadata survives to the webhook; the reconciler decodes the cart from it.
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return Session{}, err
	}
	return Session{ID: sess.ID, URL: sess.URL}, nil
}
