package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"adminforms/internal/catalog"
	"adminforms/internal/form"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

// New returns a validator whose department, role and permission rules
// accept only members of cat.
func New(cat catalog.Catalog) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names, the names the forms post.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Custom validators
	v.RegisterValidation("department", func(fl validator.FieldLevel) bool {
		return cat.HasDepartment(fl.Field().String())
	})
	v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return cat.HasRole(fl.Field().String())
	})
	v.RegisterValidation("permission", func(fl validator.FieldLevel) bool {
		return cat.HasPermission(fl.Field().String())
	})

	return &Validator{validate: v}
}

// Validate checks i against its validate tags. Rule violations come back as
// a *form.ValidationError listing every offending field.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("failed to validate: %w", err)
	}

	fields := make([]form.FieldError, len(validationErrors))
	for idx, fe := range validationErrors {
		fields[idx] = form.FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: message(fe),
		}
	}
	return &form.ValidationError{Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "department", "role", "permission":
		return fmt.Sprintf("%v is not a known %s", fe.Value(), fe.Tag())
	case "unique":
		return fe.Field() + " must not contain duplicates"
	default:
		return fmt.Sprintf("%s failed the %s rule", fe.Field(), fe.Tag())
	}
}
