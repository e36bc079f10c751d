package web

import (
	"adminforms/internal/form/assignment"
	"adminforms/internal/form/filter"
	"adminforms/internal/form/member"
	"adminforms/internal/web/views"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ShowFiltersPage(c *fiber.Ctx) error {
	set, err := stateOf(h, c, stateFilters, filter.New)
	if err != nil {
		return err
	}
	return render(c, views.FiltersPage(h.Catalog, set))
}

func (h *Handler) ShowAssignmentPage(c *fiber.Ctx) error {
	s, err := stateOf(h, c, stateAssignment, assignment.New)
	if err != nil {
		return err
	}
	return render(c, views.AssignmentPage(s, h.Forms.Assignment.Candidates(s)))
}

func (h *Handler) ShowSubscriptionPage(c *fiber.Ctx) error {
	s, err := stateOf(h, c, stateSubscription, h.Forms.Plan.New)
	if err != nil {
		return err
	}
	return render(c, views.SubscriptionPage(h.Catalog.Plans, s))
}

func (h *Handler) ShowMemberPage(c *fiber.Ctx) error {
	r, err := stateOf(h, c, stateMember, member.New)
	if err != nil {
		return err
	}
	return render(c, views.MemberPage(h.Catalog, r))
}

func render(c *fiber.Ctx, component templ.Component) error {
	c.Set("Content-Type", "text/html")
	return component.Render(c.UserContext(), c.Response().BodyWriter())
}

// The Update* page handlers apply a page post and send the browser back to
// the page.

func (h *Handler) UpdateFiltersPage(c *fiber.Ctx) error {
	if _, err := applyPagePost(h, c, stateFilters, filter.New, h.applyFiltersPost); err != nil {
		return err
	}
	return c.Redirect("/forms/filters", fiber.StatusSeeOther)
}

func (h *Handler) UpdateAssignmentPage(c *fiber.Ctx) error {
	if _, err := applyPagePost(h, c, stateAssignment, assignment.New, h.applyAssignmentPost); err != nil {
		return err
	}
	return c.Redirect("/forms/assignment", fiber.StatusSeeOther)
}

func (h *Handler) UpdateSubscriptionPage(c *fiber.Ctx) error {
	if _, err := applyPagePost(h, c, stateSubscription, h.Forms.Plan.New, h.applySubscriptionPost); err != nil {
		return err
	}
	return c.Redirect("/forms/subscription", fiber.StatusSeeOther)
}

func (h *Handler) UpdateMemberPage(c *fiber.Ctx) error {
	if _, err := applyPagePost(h, c, stateMember, member.New, h.applyMemberPost); err != nil {
		return err
	}
	return c.Redirect("/forms/member", fiber.StatusSeeOther)
}
