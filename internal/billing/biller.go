// Package billing subscribes the organisation to a plan through Stripe.
package billing

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"adminforms/internal/catalog"
	"adminforms/internal/form"
	"adminforms/internal/form/plan"
)

// Gateway is the subset of the Stripe API a subscription needs.
type Gateway interface {
	CreatePaymentMethod(ctx context.Context, card Card) (string, error)
	CreateCustomer(ctx context.Context, paymentMethodID string, metadata map[string]string) (string, error)
	CreateSubscription(ctx context.Context, customerID, priceID string) (string, error)
}

type Biller struct {
	logger  *slog.Logger
	gateway Gateway
}

func NewBiller(logger *slog.Logger, gateway Gateway) *Biller {
	return &Biller{logger: logger, gateway: gateway}
}

// Subscribe charges the card for p. Plans without a Stripe price are free
// and need no card.
func (b *Biller) Subscribe(ctx context.Context, p catalog.Plan, payment plan.PaymentDetails) error {
	if p.StripePriceID == "" {
		b.logger.InfoContext(ctx, "Plan has no Stripe price, skipping billing", "plan", p.ID)
		return nil
	}

	card, err := ParseCard(payment)
	if err != nil {
		return err
	}

	paymentMethodID, err := b.gateway.CreatePaymentMethod(ctx, card)
	if err != nil {
		return err
	}

	customerID, err := b.gateway.CreateCustomer(ctx, paymentMethodID, map[string]string{"plan": p.ID})
	if err != nil {
		return err
	}

	subscriptionID, err := b.gateway.CreateSubscription(ctx, customerID, p.StripePriceID)
	if err != nil {
		return err
	}

	b.logger.InfoContext(ctx, "Stripe subscription created",
		"plan", p.ID, "customer_id", customerID, "subscription_id", subscriptionID)
	return nil
}

// ParseCard reads the payment details as typed into the form. Spaces and
// dashes in the card number are ignored; the expiry is MM/YY or MM/YYYY.
func ParseCard(payment plan.PaymentDetails) (Card, error) {
	number := strings.NewReplacer(" ", "", "-", "").Replace(payment.CardNumber)
	if number == "" {
		return Card{}, fmt.Errorf("%w: card number is empty", form.ErrInvalidValue)
	}

	monthStr, yearStr, ok := strings.Cut(strings.TrimSpace(payment.ExpiryDate), "/")
	if !ok {
		return Card{}, fmt.Errorf("%w: expiry date %q is not MM/YY", form.ErrInvalidValue, payment.ExpiryDate)
	}

	month, err := strconv.ParseInt(strings.TrimSpace(monthStr), 10, 64)
	if err != nil || month < 1 || month > 12 {
		return Card{}, fmt.Errorf("%w: expiry month %q", form.ErrInvalidValue, monthStr)
	}

	yearStr = strings.TrimSpace(yearStr)
	year, err := strconv.ParseInt(yearStr, 10, 64)
	if err != nil || (len(yearStr) != 2 && len(yearStr) != 4) {
		return Card{}, fmt.Errorf("%w: expiry year %q", form.ErrInvalidValue, yearStr)
	}
	if len(yearStr) == 2 {
		year += 2000
	}

	return Card{
		Number:   number,
		ExpMonth: month,
		ExpYear:  year,
		CVC:      strings.TrimSpace(payment.CVV),
	}, nil
}
