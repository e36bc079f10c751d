package views

import (
	"context"
	"io"
	"slices"
	"strconv"

	"adminforms/internal/catalog"
	"adminforms/internal/form/assignment"
	"adminforms/internal/form/filter"
	"adminforms/internal/form/member"
	"adminforms/internal/form/plan"

	"github.com/a-h/templ"
)

func FiltersPage(cat catalog.Catalog, set filter.Set) templ.Component {
	return Layout("Advanced Filters", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<form id="filters" action="/api/forms/filters/submit" method="post">`)
		for i, c := range set {
			idx := strconv.Itoa(i)
			p.rawf(`<fieldset data-index="%s">`, idx)

			p.rawf(`<select name="filters[%s][field]">`, idx)
			p.option("", "Select Field", c.Field)
			for _, f := range cat.Fields {
				p.option(f.ID, f.Label, c.Field)
			}
			p.raw(`</select>`)

			p.rawf(`<select name="filters[%s][operator]">`, idx)
			for _, op := range cat.Operators {
				p.option(op.ID, op.Label, c.Operator)
			}
			p.raw(`</select>`)

			p.rawf(`<input type="text" name="filters[%s][value]" placeholder="Enter value" value="%s">`, idx, templ.EscapeString(c.Value))
			p.rawf(`<button type="submit" formaction="/forms/filters" name="action" value="remove:%s">Remove</button>`, idx)
			p.raw(`</fieldset>`)
		}
		p.raw(`<button type="submit" formaction="/forms/filters" name="action" value="add">Add Filter</button>`)
		p.raw(`<button type="submit" formaction="/forms/filters" name="action" value="reset">Reset</button>`)
		p.raw(`<button type="submit">Apply Filters</button>`)
		p.raw(`</form>`)
		return p.err
	}))
}

func AssignmentPage(s assignment.Selection, candidates assignment.Candidates) templ.Component {
	return Layout("Assign Modules", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<form id="assignment" action="/api/forms/assignment/submit" method="post">`)
		p.input("search", "searchTerm", "Search", s.SearchTerm, false)

		p.raw(`<fieldset><legend>Modules</legend>`)
		p.entities("modules", candidates.Modules, s.ModuleIDs)
		p.raw(`</fieldset>`)

		p.raw(`<fieldset><legend>Users</legend>`)
		p.entities("users", candidates.Users, s.UserIDs)
		p.raw(`</fieldset>`)

		p.raw(`<button type="submit" formaction="/forms/assignment">Update Selection</button>`)

		disabled := ""
		if !s.CanSubmit() {
			disabled = " disabled"
		}
		p.rawf(`<button type="submit"%s>Assign Modules</button>`, disabled)
		p.raw(`</form>`)
		return p.err
	}))
}

func SubscriptionPage(plans []catalog.Plan, s plan.Selection) templ.Component {
	return Layout("Choose a Plan", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<form id="subscription" action="/api/forms/subscription/submit" method="post">`)
		for _, pl := range plans {
			checked := ""
			if pl.ID == s.PlanID {
				checked = " checked"
			}
			p.raw(`<label class="plan">`)
			p.rawf(`<input type="radio" name="plan" value="%s"%s> `, templ.EscapeString(pl.ID), checked)
			p.text(pl.Name)
			if pl.Recommended {
				p.raw(` <strong>Recommended</strong>`)
			}
			p.rawf(` <span>$%d/month</span>`, pl.PriceMonthly)
			p.rawf(`<small>%s</small>`, joinEscaped(pl.Features))
			p.raw(`</label>`)
		}

		masked := s.Payment.Masked()
		p.input("text", "cardNumber", "Card Number", masked.CardNumber, false)
		p.input("text", "expiryDate", "Expiry Date", masked.ExpiryDate, false)
		p.input("text", "cvv", "CVV", masked.CVV, false)
		p.raw(`<button type="submit">Update Subscription</button>`)
		p.raw(`</form>`)
		return p.err
	}))
}

func MemberPage(cat catalog.Catalog, r member.Record) templ.Component {
	return Layout("Team Member", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<form id="member" action="/api/forms/member/submit" method="post">`)
		p.input("text", "firstName", "First Name", r.FirstName, true)
		p.input("text", "lastName", "Last Name", r.LastName, true)
		p.input("email", "email", "Email", r.Email, true)

		p.raw(`<label>Department <select name="department" required>`)
		p.option("", "Select Department", r.Department)
		for _, d := range cat.Departments {
			p.option(d, d, r.Department)
		}
		p.raw(`</select></label>`)

		p.raw(`<fieldset><legend>Role</legend>`)
		for _, role := range cat.Roles {
			checked := ""
			if role.ID == r.Role {
				checked = " checked"
			}
			p.rawf(`<label><input type="radio" name="role" value="%s"%s> `, templ.EscapeString(role.ID), checked)
			p.text(role.Name)
			p.rawf(` <small>%s</small></label>`, templ.EscapeString(role.Description))
		}
		p.raw(`</fieldset>`)

		p.raw(`<fieldset><legend>Custom Permissions</legend>`)
		for _, perm := range cat.Permissions {
			p.checkbox("customPermissions", perm, perm, slices.Contains(r.CustomPermissions, perm))
		}
		p.raw(`</fieldset>`)

		p.raw(`<button type="submit">Save Member</button>`)
		p.raw(`</form>`)
		return p.err
	}))
}

// entities writes a checkbox per candidate. Selected ids hidden by the search
// term are carried as hidden inputs so a post keeps them.
func (p *page) entities(name string, candidates []catalog.Entity, selected []string) {
	for _, e := range candidates {
		p.checkbox(name, e.ID, e.DisplayName+" ("+e.Category+")", slices.Contains(selected, e.ID))
	}
	for _, id := range selected {
		if !slices.ContainsFunc(candidates, func(e catalog.Entity) bool { return e.ID == id }) {
			p.rawf(`<input type="hidden" name="%s" value="%s">`, templ.EscapeString(name), templ.EscapeString(id))
		}
	}
}
