package web

import (
	"adminforms/internal/form/filter"

	"github.com/gofiber/fiber/v2"
)

type RemoveFilterRequest struct {
	Index *int `json:"index" validate:"required"`
}

type UpdateFilterRequest struct {
	Index     *int   `json:"index" validate:"required"`
	Attribute string `json:"attribute" validate:"required"`
	Value     string `json:"value"`
}

type FiltersResponse struct {
	Filters filter.Set `json:"filters"`
}

type FilterResultsResponse struct {
	Filters filter.Set     `json:"filters"`
	Matches []filter.Match `json:"matches"`
}

func (h *Handler) ShowFilters(c *fiber.Ctx) error {
	set, err := stateOf(h, c, stateFilters, filter.New)
	if err != nil {
		return err
	}
	return c.JSON(FiltersResponse{Filters: set})
}

func (h *Handler) AddFilter(c *fiber.Ctx) error {
	return h.changeFilters(c, func(s filter.Set) (filter.Set, error) {
		return s.Add(), nil
	})
}

func (h *Handler) RemoveFilter(c *fiber.Ctx) error {
	var req RemoveFilterRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	return h.changeFilters(c, func(s filter.Set) (filter.Set, error) {
		return s.Remove(*req.Index), nil
	})
}

func (h *Handler) UpdateFilter(c *fiber.Ctx) error {
	var req UpdateFilterRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	attr, err := filter.ParseAttribute(req.Attribute)
	if err != nil {
		return err
	}
	return h.changeFilters(c, func(s filter.Set) (filter.Set, error) {
		return h.Forms.Filters.Update(s, *req.Index, attr, req.Value)
	})
}

func (h *Handler) ResetFilters(c *fiber.Ctx) error {
	return h.changeFilters(c, func(s filter.Set) (filter.Set, error) {
		return s.Reset(), nil
	})
}

func (h *Handler) SubmitFilters(c *fiber.Ctx) error {
	set, err := submittedState(h, c, stateFilters, filter.New, h.applyFiltersPost)
	if err != nil {
		return err
	}

	matches, err := h.Forms.Filters.Submit(c.UserContext(), set)
	if err != nil {
		return err
	}
	return c.JSON(FilterResultsResponse{Filters: set, Matches: matches})
}

func (h *Handler) changeFilters(c *fiber.Ctx, fn func(filter.Set) (filter.Set, error)) error {
	set, err := updateState(h, c, stateFilters, filter.New, fn)
	if err != nil {
		return err
	}
	return c.JSON(FiltersResponse{Filters: set})
}
