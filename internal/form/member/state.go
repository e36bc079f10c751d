// Package member implements the team member editor: one member record with
// a department, a role and a set of custom permissions.
package member

import (
	"fmt"
	"slices"

	"adminforms/internal/form"
)

type Field string

const (
	FieldFirstName  Field = "firstName"
	FieldLastName   Field = "lastName"
	FieldEmail      Field = "email"
	FieldDepartment Field = "department"
	FieldRole       Field = "role"
)

func ParseField(s string) (Field, error) {
	switch Field(s) {
	case FieldFirstName, FieldLastName, FieldEmail, FieldDepartment, FieldRole:
		return Field(s), nil
	default:
		return "", fmt.Errorf("%w: %q", form.ErrUnknownAttribute, s)
	}
}

// Record is the member being edited. Role carries no required rule: the
// form presents it as mandatory but accepts a submission without it.
type Record struct {
	FirstName         string   `json:"firstName" validate:"required"`
	LastName          string   `json:"lastName" validate:"required"`
	Email             string   `json:"email" validate:"required,email"`
	Department        string   `json:"department" validate:"required,department"`
	Role              string   `json:"role" validate:"omitempty,role"`
	CustomPermissions []string `json:"customPermissions" validate:"unique,dive,permission"`
}

func New() Record {
	return Record{CustomPermissions: []string{}}
}

func (r Record) UpdateField(field Field, value string) Record {
	r.CustomPermissions = slices.Clone(r.CustomPermissions)
	switch field {
	case FieldFirstName:
		r.FirstName = value
	case FieldLastName:
		r.LastName = value
	case FieldEmail:
		r.Email = value
	case FieldDepartment:
		r.Department = value
	case FieldRole:
		r.Role = value
	}
	return r
}

// TogglePermission adds or removes name. Adding a granted permission or
// removing an absent one changes nothing.
func (r Record) TogglePermission(name string, included bool) Record {
	has := slices.Contains(r.CustomPermissions, name)
	switch {
	case included && !has:
		r.CustomPermissions = append(slices.Clone(r.CustomPermissions), name)
	case !included && has:
		r.CustomPermissions = slices.DeleteFunc(slices.Clone(r.CustomPermissions), func(p string) bool { return p == name })
	default:
		r.CustomPermissions = slices.Clone(r.CustomPermissions)
	}
	return r
}
