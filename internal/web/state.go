package web

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	stateFilters      = "form.filters"
	stateAssignment   = "form.assignment"
	stateSubscription = "form.subscription"
	stateMember       = "form.member"
)

// NewSessionStore keeps sessions in storage, or in process memory when
// storage is nil.
func NewSessionStore(storage fiber.Storage, cookieName string, secure bool, expiration time.Duration) *session.Store {
	return session.New(session.Config{
		Storage:        storage,
		KeyLookup:      "cookie:" + cookieName,
		CookiePath:     "/",
		CookieSecure:   secure,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		Expiration:     expiration,
	})
}

func loadState[T any](sess *session.Session, key string, initial func() T) (T, error) {
	raw, ok := sess.Get(key).([]byte)
	if !ok {
		return initial(), nil
	}

	var state T
	if err := json.Unmarshal(raw, &state); err != nil {
		return state, fmt.Errorf("failed to decode %s state: %w", key, err)
	}
	return state, nil
}

func saveState[T any](sess *session.Session, key string, state T) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode %s state: %w", key, err)
	}
	sess.Set(key, raw)

	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// stateOf returns the stored state of one form without writing the session.
func stateOf[T any](h *Handler, c *fiber.Ctx, key string, initial func() T) (T, error) {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to get session: %w", err)
	}
	return loadState(sess, key, initial)
}

// updateState loads one form state, applies fn and stores the result. The
// stored state is left untouched when fn fails.
func updateState[T any](h *Handler, c *fiber.Ctx, key string, initial func() T, fn func(T) (T, error)) (T, error) {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to get session: %w", err)
	}

	state, err := loadState(sess, key, initial)
	if err != nil {
		return state, err
	}

	next, err := fn(state)
	if err != nil {
		return state, err
	}

	if err := saveState(sess, key, next); err != nil {
		return state, err
	}
	return next, nil
}

// bind decodes the request body into req and validates it.
func (h *Handler) bind(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return h.Validator.Validate(req)
}
