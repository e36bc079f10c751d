package web

import (
	"adminforms/internal/form/assignment"

	"github.com/gofiber/fiber/v2"
)

type SearchRequest struct {
	Term string `json:"term"`
}

type ToggleRequest struct {
	ID       string `json:"id" validate:"required"`
	Selected *bool  `json:"selected" validate:"required"`
}

type AssignmentResponse struct {
	Selection  assignment.Selection  `json:"selection"`
	Candidates assignment.Candidates `json:"candidates"`
	CanSubmit  bool                  `json:"canSubmit"`
}

func (h *Handler) ShowAssignment(c *fiber.Ctx) error {
	s, err := stateOf(h, c, stateAssignment, assignment.New)
	if err != nil {
		return err
	}
	return c.JSON(h.assignmentResponse(s))
}

func (h *Handler) SearchAssignment(c *fiber.Ctx) error {
	var req SearchRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	return h.changeAssignment(c, func(s assignment.Selection) (assignment.Selection, error) {
		return s.SetSearchTerm(req.Term), nil
	})
}

func (h *Handler) ToggleModule(c *fiber.Ctx) error {
	var req ToggleRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	return h.changeAssignment(c, func(s assignment.Selection) (assignment.Selection, error) {
		return h.Forms.Assignment.ToggleModule(s, req.ID, *req.Selected)
	})
}

func (h *Handler) ToggleUser(c *fiber.Ctx) error {
	var req ToggleRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	return h.changeAssignment(c, func(s assignment.Selection) (assignment.Selection, error) {
		return h.Forms.Assignment.ToggleUser(s, req.ID, *req.Selected)
	})
}

func (h *Handler) SubmitAssignment(c *fiber.Ctx) error {
	s, err := submittedState(h, c, stateAssignment, assignment.New, h.applyAssignmentPost)
	if err != nil {
		return err
	}

	result, err := h.Forms.Assignment.Submit(c.UserContext(), s)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *Handler) changeAssignment(c *fiber.Ctx, fn func(assignment.Selection) (assignment.Selection, error)) error {
	s, err := updateState(h, c, stateAssignment, assignment.New, fn)
	if err != nil {
		return err
	}
	return c.JSON(h.assignmentResponse(s))
}

func (h *Handler) assignmentResponse(s assignment.Selection) AssignmentResponse {
	return AssignmentResponse{
		Selection:  s,
		Candidates: h.Forms.Assignment.Candidates(s),
		CanSubmit:  s.CanSubmit(),
	}
}
