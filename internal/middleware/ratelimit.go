package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Limiter interface {
	Allow(ctx context.Context, key string) error
}

// RateLimit rejects requests once limiter refuses their key. A limiter
// backend failure lets the request through.
func RateLimit(logger *slog.Logger, limiter Limiter, key func(c *fiber.Ctx) string, refused error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := limiter.Allow(c.UserContext(), key(c))
		switch {
		case err == nil:
			return c.Next()
		case errors.Is(err, refused):
			return err
		default:
			logger.WarnContext(c.UserContext(), "Rate limiter unavailable", "error", err)
			return c.Next()
		}
	}
}

// FixedWindow allows max requests per client address and window, then
// returns refused to the error handler. A nil storage keeps the counters in
// fiber's memory storage, which drops expired entries.
func FixedWindow(max int, window time.Duration, storage fiber.Storage, refused error) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		Storage:    storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "submit_attempts:" + c.IP()
		},
		LimitReached: func(*fiber.Ctx) error {
			return refused
		},
	})
}
