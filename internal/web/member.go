package web

import (
	"adminforms/internal/form/member"

	"github.com/gofiber/fiber/v2"
)

type MemberFieldRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

type PermissionRequest struct {
	Permission string `json:"permission" validate:"required"`
	Granted    *bool  `json:"granted" validate:"required"`
}

type MemberResponse struct {
	Member member.Record `json:"member"`
}

func (h *Handler) ShowMember(c *fiber.Ctx) error {
	r, err := stateOf(h, c, stateMember, member.New)
	if err != nil {
		return err
	}
	return c.JSON(MemberResponse{Member: r})
}

func (h *Handler) UpdateMemberField(c *fiber.Ctx) error {
	var req MemberFieldRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	field, err := member.ParseField(req.Field)
	if err != nil {
		return err
	}
	return h.changeMember(c, func(r member.Record) (member.Record, error) {
		return h.Forms.Member.UpdateField(r, field, req.Value)
	})
}

func (h *Handler) TogglePermission(c *fiber.Ctx) error {
	var req PermissionRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	return h.changeMember(c, func(r member.Record) (member.Record, error) {
		return h.Forms.Member.TogglePermission(r, req.Permission, *req.Granted)
	})
}

func (h *Handler) ResetMember(c *fiber.Ctx) error {
	return h.changeMember(c, func(member.Record) (member.Record, error) {
		return member.New(), nil
	})
}

func (h *Handler) SubmitMember(c *fiber.Ctx) error {
	r, err := submittedState(h, c, stateMember, member.New, h.applyMemberPost)
	if err != nil {
		return err
	}

	saved, err := h.Forms.Member.Submit(c.UserContext(), r)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(MemberResponse{Member: saved})
}

func (h *Handler) changeMember(c *fiber.Ctx, fn func(member.Record) (member.Record, error)) error {
	r, err := updateState(h, c, stateMember, member.New, fn)
	if err != nil {
		return err
	}
	return c.JSON(MemberResponse{Member: r})
}
