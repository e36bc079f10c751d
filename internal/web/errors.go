package web

import (
	"errors"
	"fmt"
	"log/slog"

	"adminforms/internal/form"
	"adminforms/internal/ratelimit"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler turns handler errors into the JSON error body and logs each
// of them once.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code, status, message := classify(err)

		if code >= fiber.StatusInternalServerError {
			logger.ErrorContext(c.UserContext(), "Request failed", "error", err, "path", c.Path(), "status", code)
		} else {
			logger.WarnContext(c.UserContext(), "Request rejected", "error", err, "path", c.Path(), "status", code)
		}

		var verr *form.ValidationError
		if errors.As(err, &verr) {
			return c.Status(code).JSON(fiber.Map{
				"error": fiber.Map{
					"code":    code,
					"status":  status,
					"message": message,
					"fields":  verr.Fields,
				},
			})
		}
		return ErrorResponse(c, code, status, message)
	}
}

func classify(err error) (int, string, string) {
	var ferr *fiber.Error
	var verr *form.ValidationError
	var serr *form.SubmissionError

	switch {
	case errors.As(err, &ferr):
		return ferr.Code, "REQUEST_ERROR", ferr.Message
	case errors.Is(err, ratelimit.ErrTooManyAttempts):
		return fiber.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Too many submissions, try again later"
	case errors.As(err, &verr):
		return fiber.StatusUnprocessableEntity, "VALIDATION_FAILED", verr.Error()
	case errors.Is(err, form.ErrSubmissionBlocked):
		return fiber.StatusConflict, "SUBMISSION_BLOCKED", err.Error()
	case errors.Is(err, form.ErrUnknownOption),
		errors.Is(err, form.ErrUnknownAttribute),
		errors.Is(err, form.ErrInvalidValue):
		return fiber.StatusBadRequest, "INVALID_ARGUMENT", err.Error()
	case errors.As(err, &serr):
		return fiber.StatusBadGateway, "SUBMISSION_REJECTED", fmt.Sprintf("%s submission rejected", serr.Form)
	default:
		return fiber.StatusInternalServerError, "SERVER_ERROR", "Internal server error"
	}
}

func ErrorResponse(c *fiber.Ctx, code int, status string, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"status":  status,
			"message": message,
		},
	})
}
