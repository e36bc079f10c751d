package web

import (
	"adminforms/internal/catalog"
	"adminforms/internal/form/plan"

	"github.com/gofiber/fiber/v2"
)

type SelectPlanRequest struct {
	Plan string `json:"plan" validate:"required"`
}

type PaymentRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

// SubscriptionResponse never carries the card details in clear.
type SubscriptionResponse struct {
	Plans   []catalog.Plan      `json:"plans"`
	PlanID  string              `json:"selectedPlan"`
	Payment plan.PaymentDetails `json:"paymentMethod"`
}

func (h *Handler) ShowSubscription(c *fiber.Ctx) error {
	s, err := stateOf(h, c, stateSubscription, h.Forms.Plan.New)
	if err != nil {
		return err
	}
	return c.JSON(h.subscriptionResponse(s))
}

func (h *Handler) SelectPlan(c *fiber.Ctx) error {
	var req SelectPlanRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	return h.changeSubscription(c, func(s plan.Selection) (plan.Selection, error) {
		return h.Forms.Plan.Select(s, req.Plan)
	})
}

func (h *Handler) UpdatePayment(c *fiber.Ctx) error {
	var req PaymentRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	field, err := plan.ParsePaymentField(req.Field)
	if err != nil {
		return err
	}
	return h.changeSubscription(c, func(s plan.Selection) (plan.Selection, error) {
		return s.UpdatePayment(field, req.Value), nil
	})
}

func (h *Handler) SubmitSubscription(c *fiber.Ctx) error {
	s, err := submittedState(h, c, stateSubscription, h.Forms.Plan.New, h.applySubscriptionPost)
	if err != nil {
		return err
	}

	result, err := h.Forms.Plan.Submit(c.UserContext(), s)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *Handler) changeSubscription(c *fiber.Ctx, fn func(plan.Selection) (plan.Selection, error)) error {
	s, err := updateState(h, c, stateSubscription, h.Forms.Plan.New, fn)
	if err != nil {
		return err
	}
	return c.JSON(h.subscriptionResponse(s))
}

func (h *Handler) subscriptionResponse(s plan.Selection) SubscriptionResponse {
	return SubscriptionResponse{
		Plans:   h.Catalog.Plans,
		PlanID:  s.PlanID,
		Payment: s.Payment.Masked(),
	}
}
