package form_test

import (
	"errors"
	"testing"

	"adminforms/internal/form"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Message(t *testing.T) {
	err := &form.ValidationError{Fields: []form.FieldError{
		{Field: "firstName", Rule: "required"},
		{Field: "email", Rule: "email"},
	}}

	assert.Equal(t, "validation failed: firstName, email", err.Error())
}

func TestSubmissionError_Unwrap(t *testing.T) {
	cause := errors.New("card declined")
	err := form.Rejected(form.NameSubscription, cause)

	assert.ErrorIs(t, err, cause)
	var subErr *form.SubmissionError
	assert.True(t, errors.As(err, &subErr))
	assert.Equal(t, form.NameSubscription, subErr.Form)
	assert.Contains(t, err.Error(), "card declined")
}

func TestNewSubmission(t *testing.T) {
	a := form.NewSubmission(form.NameFilters, []string{"x"})
	b := form.NewSubmission(form.NameFilters, []string{"x"})

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, form.NameFilters, a.Form)
	assert.False(t, a.SubmittedAt.IsZero())
}
