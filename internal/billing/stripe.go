package billing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stripe/stripe-go/v76"
	stripeCustomer "github.com/stripe/stripe-go/v76/customer"
	stripePaymentMethod "github.com/stripe/stripe-go/v76/paymentmethod"
	stripeSubscription "github.com/stripe/stripe-go/v76/subscription"
)

type Card struct {
	Number   string
	ExpMonth int64
	ExpYear  int64
	CVC      string
}

// StripeClient talks to the Stripe API with a single secret key.
type StripeClient struct {
	logger *slog.Logger
	APIKey string
}

func NewStripeClient(logger *slog.Logger, apiKey string) *StripeClient {
	return &StripeClient{logger: logger, APIKey: apiKey}
}

func (c *StripeClient) CreatePaymentMethod(ctx context.Context, card Card) (string, error) {
	stripe.Key = c.APIKey

	params := &stripe.PaymentMethodParams{
		Type: stripe.String(string(stripe.PaymentMethodTypeCard)),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(card.Number),
			ExpMonth: stripe.Int64(card.ExpMonth),
			ExpYear:  stripe.Int64(card.ExpYear),
			CVC:      stripe.String(card.CVC),
		},
	}
	params.Context = ctx

	result, err := stripePaymentMethod.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create Stripe payment method: %w", err)
	}
	return result.ID, nil
}

func (c *StripeClient) CreateCustomer(ctx context.Context, paymentMethodID string, metadata map[string]string) (string, error) {
	stripe.Key = c.APIKey

	params := &stripe.CustomerParams{
		PaymentMethod: stripe.String(paymentMethodID),
		InvoiceSettings: &stripe.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(paymentMethodID),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	result, err := stripeCustomer.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create Stripe customer: %w", err)
	}
	return result.ID, nil
}

func (c *StripeClient) CreateSubscription(ctx context.Context, customerID, priceID string) (string, error) {
	stripe.Key = c.APIKey

	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{
				Price: stripe.String(priceID),
			},
		},
	}
	params.Context = ctx

	result, err := stripeSubscription.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create Stripe subscription: %w", err)
	}
	return result.ID, nil
}
