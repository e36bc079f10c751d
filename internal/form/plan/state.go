// Package plan implements the subscription form: a single plan choice out of
// the plan catalog plus the card details to pay with.
package plan

import (
	"fmt"

	"adminforms/internal/catalog"
	"adminforms/internal/form"
)

type PaymentField string

const (
	PaymentFieldCardNumber PaymentField = "cardNumber"
	PaymentFieldExpiryDate PaymentField = "expiryDate"
	PaymentFieldCVV        PaymentField = "cvv"
)

func ParsePaymentField(s string) (PaymentField, error) {
	switch PaymentField(s) {
	case PaymentFieldCardNumber, PaymentFieldExpiryDate, PaymentFieldCVV:
		return PaymentField(s), nil
	default:
		return "", fmt.Errorf("%w: %q", form.ErrUnknownAttribute, s)
	}
}

// PaymentDetails is kept as typed; nothing checks card number or expiry format.
type PaymentDetails struct {
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
}

// Masked returns a copy safe to log.
func (p PaymentDetails) Masked() PaymentDetails {
	masked := PaymentDetails{ExpiryDate: p.ExpiryDate}
	if n := len(p.CardNumber); n > 4 {
		masked.CardNumber = "****" + p.CardNumber[n-4:]
	} else if n > 0 {
		masked.CardNumber = "****"
	}
	if p.CVV != "" {
		masked.CVV = "***"
	}
	return masked
}

type Selection struct {
	PlanID  string         `json:"selectedPlan"`
	Payment PaymentDetails `json:"paymentMethod"`
}

// New selects the recommended plan, or the first plan when none is marked.
func New(plans []catalog.Plan) Selection {
	var s Selection
	for _, p := range plans {
		if p.Recommended {
			s.PlanID = p.ID
			return s
		}
	}
	if len(plans) > 0 {
		s.PlanID = plans[0].ID
	}
	return s
}

func (s Selection) Select(planID string) Selection {
	s.PlanID = planID
	return s
}

func (s Selection) UpdatePayment(field PaymentField, value string) Selection {
	switch field {
	case PaymentFieldCardNumber:
		s.Payment.CardNumber = value
	case PaymentFieldExpiryDate:
		s.Payment.ExpiryDate = value
	case PaymentFieldCVV:
		s.Payment.CVV = value
	}
	return s
}
