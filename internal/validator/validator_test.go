package validator_test

import (
	"testing"

	"adminforms/internal/catalog"
	"adminforms/internal/form"
	"adminforms/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	Email       string   `json:"email" validate:"required,email"`
	Department  string   `json:"department" validate:"required,department"`
	Role        string   `json:"role" validate:"omitempty,role"`
	Permissions []string `json:"permissions" validate:"unique,dive,permission"`
}

func TestValidator_CatalogRules(t *testing.T) {
	v := validator.New(catalog.Default())

	tests := []struct {
		name      string
		input     profile
		isValid   bool
		wantField string
		wantRule  string
	}{
		{
			name:    "valid_minimal",
			input:   profile{Email: "a@example.com", Department: "Design"},
			isValid: true,
		},
		{
			name:    "valid_full",
			input:   profile{Email: "a@example.com", Department: "Design", Role: "admin", Permissions: []string{"Manage billing"}},
			isValid: true,
		},
		{
			name:      "unknown_department",
			input:     profile{Email: "a@example.com", Department: "Kitchen"},
			wantField: "department",
			wantRule:  "department",
		},
		{
			name:      "unknown_role",
			input:     profile{Email: "a@example.com", Department: "Design", Role: "root"},
			wantField: "role",
			wantRule:  "role",
		},
		{
			name:      "unknown_permission",
			input:     profile{Email: "a@example.com", Department: "Design", Permissions: []string{"Delete everything"}},
			wantField: "permissions[0]",
			wantRule:  "permission",
		},
		{
			name:      "duplicate_permission",
			input:     profile{Email: "a@example.com", Department: "Design", Permissions: []string{"View analytics", "View analytics"}},
			wantField: "permissions",
			wantRule:  "unique",
		},
		{
			name:      "invalid_email",
			input:     profile{Email: "not-an-email", Department: "Design"},
			wantField: "email",
			wantRule:  "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if tt.isValid {
				assert.NoError(t, err)
				return
			}

			var validationErr *form.ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Len(t, validationErr.Fields, 1)
			assert.Equal(t, tt.wantField, validationErr.Fields[0].Field)
			assert.Equal(t, tt.wantRule, validationErr.Fields[0].Rule)
			assert.NotEmpty(t, validationErr.Fields[0].Message)
		})
	}
}

func TestValidator_UsesConfiguredCatalog(t *testing.T) {
	cat := catalog.Default()
	cat.Departments = []string{"Kitchen"}
	v := validator.New(cat)

	assert.NoError(t, v.Validate(profile{Email: "a@example.com", Department: "Kitchen"}))
	assert.Error(t, v.Validate(profile{Email: "a@example.com", Department: "Design"}))
}

func TestValidator_NonStructInput(t *testing.T) {
	v := validator.New(catalog.Default())

	err := v.Validate("just a string")

	require.Error(t, err)
	var validationErr *form.ValidationError
	assert.NotErrorAs(t, err, &validationErr)
}
