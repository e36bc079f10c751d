package plan

import (
	"context"
	"fmt"
	"log/slog"

	"adminforms/internal/catalog"
	"adminforms/internal/form"
)

// Biller starts or changes the subscription for the selected plan.
type Biller interface {
	Subscribe(ctx context.Context, plan catalog.Plan, payment PaymentDetails) error
}

type Form struct {
	logger   *slog.Logger
	catalog  catalog.Catalog
	biller   Biller
	recorder form.Recorder
}

func NewForm(logger *slog.Logger, cat catalog.Catalog, biller Biller, recorder form.Recorder) *Form {
	if recorder == nil {
		recorder = form.NopRecorder{}
	}
	return &Form{logger: logger, catalog: cat, biller: biller, recorder: recorder}
}

func (f *Form) New() Selection {
	return New(f.catalog.Plans)
}

// Select switches to planID. Ids outside the catalog are refused so the
// selection always names a real plan.
func (f *Form) Select(s Selection, planID string) (Selection, error) {
	if _, ok := f.catalog.Plan(planID); !ok {
		return s, fmt.Errorf("%w: plan %q", form.ErrUnknownOption, planID)
	}
	return s.Select(planID), nil
}

type Result struct {
	PlanID  string         `json:"selectedPlan"`
	Payment PaymentDetails `json:"paymentMethod"`
}

func (f *Form) Submit(ctx context.Context, s Selection) (Result, error) {
	selected, ok := f.catalog.Plan(s.PlanID)
	if !ok {
		return Result{}, fmt.Errorf("%w: plan %q", form.ErrUnknownOption, s.PlanID)
	}

	if err := f.biller.Subscribe(ctx, selected, s.Payment); err != nil {
		return Result{}, form.Rejected(form.NameSubscription, err)
	}

	result := Result{PlanID: selected.ID, Payment: s.Payment.Masked()}
	f.logger.InfoContext(ctx, "Subscription updated", "selected_plan", result.PlanID, "payment_method", result.Payment)

	if err := f.recorder.Record(ctx, form.NewSubmission(form.NameSubscription, result)); err != nil {
		f.logger.WarnContext(ctx, "Failed to record subscription submission", "error", err)
	}

	return result, nil
}

// LogBiller stands in for the payment provider when no API key is configured.
type LogBiller struct {
	Logger *slog.Logger
}

func (b LogBiller) Subscribe(ctx context.Context, plan catalog.Plan, payment PaymentDetails) error {
	b.Logger.InfoContext(ctx, "Subscription requested without billing backend", "plan", plan.ID, "payment_method", payment.Masked())
	return nil
}
