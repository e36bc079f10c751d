package plan_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"adminforms/internal/catalog"
	"adminforms/internal/form"
	"adminforms/internal/form/plan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBiller struct {
	mock.Mock
}

func (m *MockBiller) Subscribe(ctx context.Context, p catalog.Plan, payment plan.PaymentDetails) error {
	args := m.Called(ctx, p, payment)
	return args.Error(0)
}

func newForm(biller plan.Biller) *plan.Form {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return plan.NewForm(logger, catalog.Default(), biller, nil)
}

func TestNew_DefaultSelection(t *testing.T) {
	tests := []struct {
		name  string
		plans []catalog.Plan
		want  string
	}{
		{"recommended_wins", catalog.Default().Plans, "pro"},
		{"first_when_none_recommended", []catalog.Plan{{ID: "a"}, {ID: "b"}}, "a"},
		{"first_recommended_of_many", []catalog.Plan{{ID: "a"}, {ID: "b", Recommended: true}, {ID: "c", Recommended: true}}, "b"},
		{"empty_catalog", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, plan.New(tt.plans).PlanID)
		})
	}
}

func TestSelection_ExactlyOnePlanSelected(t *testing.T) {
	f := newForm(&MockBiller{})
	s := f.New()

	for _, id := range []string{"basic", "enterprise", "enterprise", "pro", "basic"} {
		next, err := f.Select(s, id)
		require.NoError(t, err)
		s = next
		assert.Equal(t, id, s.PlanID)
	}
}

func TestSelection_ReselectIsNoop(t *testing.T) {
	s := plan.New(catalog.Default().Plans).UpdatePayment(plan.PaymentFieldCVV, "123")

	assert.Equal(t, s, s.Select(s.PlanID))
}

func TestForm_SelectUnknownPlan(t *testing.T) {
	f := newForm(&MockBiller{})
	s := f.New()

	got, err := f.Select(s, "platinum")

	assert.ErrorIs(t, err, form.ErrUnknownOption)
	assert.Equal(t, "pro", got.PlanID)
}

func TestSelection_UpdatePayment(t *testing.T) {
	s := plan.Selection{PlanID: "pro"}.
		UpdatePayment(plan.PaymentFieldCardNumber, "4242 4242 4242 4242").
		UpdatePayment(plan.PaymentFieldExpiryDate, "12/30").
		UpdatePayment(plan.PaymentFieldCVV, "999")

	assert.Equal(t, plan.PaymentDetails{
		CardNumber: "4242 4242 4242 4242",
		ExpiryDate: "12/30",
		CVV:        "999",
	}, s.Payment)
	assert.Equal(t, "pro", s.PlanID)
}

func TestParsePaymentField(t *testing.T) {
	field, err := plan.ParsePaymentField("expiryDate")
	require.NoError(t, err)
	assert.Equal(t, plan.PaymentFieldExpiryDate, field)

	_, err = plan.ParsePaymentField("holder")
	assert.ErrorIs(t, err, form.ErrUnknownAttribute)
}

func TestPaymentDetails_Masked(t *testing.T) {
	p := plan.PaymentDetails{CardNumber: "4242424242424242", ExpiryDate: "01/29", CVV: "123"}

	assert.Equal(t, plan.PaymentDetails{CardNumber: "****4242", ExpiryDate: "01/29", CVV: "***"}, p.Masked())
	assert.Equal(t, plan.PaymentDetails{}, plan.PaymentDetails{}.Masked())
	assert.Equal(t, "****", plan.PaymentDetails{CardNumber: "42"}.Masked().CardNumber)
}

func TestForm_SubmitDoesNotValidateCard(t *testing.T) {
	biller := &MockBiller{}
	f := newForm(biller)

	s := f.New().UpdatePayment(plan.PaymentFieldCardNumber, "not a card")
	pro, _ := catalog.Default().Plan("pro")
	biller.On("Subscribe", mock.Anything, pro, s.Payment).Return(nil)

	result, err := f.Submit(context.Background(), s)

	require.NoError(t, err)
	assert.Equal(t, "pro", result.PlanID)
	assert.Equal(t, "****card", result.Payment.CardNumber)
	biller.AssertExpectations(t)
}

func TestForm_SubmitRejected(t *testing.T) {
	biller := &MockBiller{}
	f := newForm(biller)

	cause := errors.New("card declined")
	biller.On("Subscribe", mock.Anything, mock.Anything, mock.Anything).Return(cause)

	_, err := f.Submit(context.Background(), f.New())

	var subErr *form.SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, form.NameSubscription, subErr.Form)
}

func TestLogBiller(t *testing.T) {
	b := plan.LogBiller{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	assert.NoError(t, b.Subscribe(context.Background(), catalog.Plan{ID: "basic"}, plan.PaymentDetails{}))
}
