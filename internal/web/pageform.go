package web

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"adminforms/internal/form"
	"adminforms/internal/form/assignment"
	"adminforms/internal/form/filter"
	"adminforms/internal/form/member"
	"adminforms/internal/form/plan"

	"github.com/gofiber/fiber/v2"
)

// Form pages post their controls url-encoded. A post replaces the stored
// state of its form with what the page showed when it was sent.

type CriterionPost struct {
	Field    string `form:"field"`
	Operator string `form:"operator"`
	Value    string `form:"value"`
}

type FiltersPost struct {
	Filters []CriterionPost `form:"filters"`
	Action  string          `form:"action"`
}

type AssignmentPost struct {
	SearchTerm string   `form:"searchTerm"`
	Modules    []string `form:"modules"`
	Users      []string `form:"users"`
}

type SubscriptionPost struct {
	Plan       string `form:"plan"`
	CardNumber string `form:"cardNumber"`
	ExpiryDate string `form:"expiryDate"`
	CVV        string `form:"cvv"`
}

type MemberPost struct {
	FirstName         string   `form:"firstName"`
	LastName          string   `form:"lastName"`
	Email             string   `form:"email"`
	Department        string   `form:"department"`
	Role              string   `form:"role"`
	CustomPermissions []string `form:"customPermissions"`
}

func isPagePost(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEApplicationForm)
}

// submittedState returns the state a submit acts on. A page post is applied
// to the stored state and saved first; any other request submits the stored
// state as it is.
func submittedState[T, P any](h *Handler, c *fiber.Ctx, key string, initial func() T, apply func(T, P) (T, error)) (T, error) {
	if !isPagePost(c) {
		return stateOf(h, c, key, initial)
	}
	return applyPagePost(h, c, key, initial, apply)
}

func applyPagePost[T, P any](h *Handler, c *fiber.Ctx, key string, initial func() T, apply func(T, P) (T, error)) (T, error) {
	var post P
	if err := c.BodyParser(&post); err != nil {
		var zero T
		return zero, fiber.NewError(fiber.StatusBadRequest, "Invalid form data")
	}
	return updateState(h, c, key, initial, func(s T) (T, error) {
		return apply(s, post)
	})
}

func (h *Handler) applyFiltersPost(_ filter.Set, p FiltersPost) (filter.Set, error) {
	set := make(filter.Set, len(p.Filters))
	for i, row := range p.Filters {
		set[i] = filter.DefaultCriterion()

		var err error
		if set, err = h.Forms.Filters.Update(set, i, filter.AttributeField, row.Field); err != nil {
			return nil, err
		}
		if row.Operator != "" {
			if set, err = h.Forms.Filters.Update(set, i, filter.AttributeOperator, row.Operator); err != nil {
				return nil, err
			}
		}
		if set, err = h.Forms.Filters.Update(set, i, filter.AttributeValue, row.Value); err != nil {
			return nil, err
		}
	}

	switch action, arg, _ := strings.Cut(p.Action, ":"); action {
	case "":
	case "add":
		set = set.Add()
	case "reset":
		set = set.Reset()
	case "remove":
		index, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: remove index %q", form.ErrInvalidValue, arg)
		}
		set = set.Remove(index)
	default:
		return nil, fmt.Errorf("%w: action %q", form.ErrUnknownAttribute, p.Action)
	}
	return set, nil
}

// applyAssignmentPost makes the selection equal to the posted ids. Ids that
// stay selected keep their position; new ones are appended in posted order.
func (h *Handler) applyAssignmentPost(s assignment.Selection, p AssignmentPost) (assignment.Selection, error) {
	s = s.SetSearchTerm(p.SearchTerm)

	for _, id := range slices.Clone(s.ModuleIDs) {
		if !slices.Contains(p.Modules, id) {
			s = s.ToggleModule(id, false)
		}
	}
	for _, id := range slices.Clone(s.UserIDs) {
		if !slices.Contains(p.Users, id) {
			s = s.ToggleUser(id, false)
		}
	}

	var err error
	for _, id := range p.Modules {
		if s, err = h.Forms.Assignment.ToggleModule(s, id, true); err != nil {
			return s, err
		}
	}
	for _, id := range p.Users {
		if s, err = h.Forms.Assignment.ToggleUser(s, id, true); err != nil {
			return s, err
		}
	}
	return s, nil
}

func (h *Handler) applySubscriptionPost(s plan.Selection, p SubscriptionPost) (plan.Selection, error) {
	if p.Plan != "" {
		var err error
		if s, err = h.Forms.Plan.Select(s, p.Plan); err != nil {
			return s, err
		}
	}

	// The page shows masked payment details. Posting one back unchanged
	// keeps the stored value.
	shown := s.Payment.Masked()
	for _, f := range []struct {
		field         plan.PaymentField
		posted, shown string
	}{
		{plan.PaymentFieldCardNumber, p.CardNumber, shown.CardNumber},
		{plan.PaymentFieldExpiryDate, p.ExpiryDate, shown.ExpiryDate},
		{plan.PaymentFieldCVV, p.CVV, shown.CVV},
	} {
		if f.posted != f.shown {
			s = s.UpdatePayment(f.field, f.posted)
		}
	}
	return s, nil
}

func (h *Handler) applyMemberPost(r member.Record, p MemberPost) (member.Record, error) {
	var err error
	for _, f := range []struct {
		field member.Field
		value string
	}{
		{member.FieldFirstName, p.FirstName},
		{member.FieldLastName, p.LastName},
		{member.FieldEmail, p.Email},
		{member.FieldDepartment, p.Department},
		{member.FieldRole, p.Role},
	} {
		if r, err = h.Forms.Member.UpdateField(r, f.field, f.value); err != nil {
			return r, err
		}
	}

	for _, perm := range slices.Clone(r.CustomPermissions) {
		if !slices.Contains(p.CustomPermissions, perm) {
			r = r.TogglePermission(perm, false)
		}
	}
	for _, perm := range p.CustomPermissions {
		if r, err = h.Forms.Member.TogglePermission(r, perm, true); err != nil {
			return r, err
		}
	}
	return r, nil
}
