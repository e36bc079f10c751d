// Package form holds what the dashboard forms share: the submission error
// taxonomy and the envelope every accepted submission is recorded with.
package form

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSubmissionBlocked means the form is not in a submittable state, the
	// server-side equivalent of a disabled submit button.
	ErrSubmissionBlocked = errors.New("submission blocked")

	// ErrUnknownOption means a value was not drawn from its closed catalog.
	ErrUnknownOption = errors.New("unknown option")

	// ErrUnknownAttribute means an update named an attribute the form does not have.
	ErrUnknownAttribute = errors.New("unknown attribute")

	// ErrInvalidValue means a value could not be interpreted for its field,
	// such as a non-numeric bound on a numeric column.
	ErrInvalidValue = errors.New("invalid value")
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError is a submission rejected before reaching a collaborator,
// reported per field.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return "validation failed: " + strings.Join(names, ", ")
}

// SubmissionError is a submission the collaborator refused or failed to handle.
type SubmissionError struct {
	Form string
	Err  error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%s submission rejected: %v", e.Form, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

func Rejected(formName string, err error) error {
	return &SubmissionError{Form: formName, Err: err}
}
