package middleware

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRefused = errors.New("refused")

type stubLimiter struct {
	err error
}

func (s stubLimiter) Allow(context.Context, string) error { return s.err }

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name       string
		limiterErr error
		wantStatus int
	}{
		{"allowed", nil, fiber.StatusOK},
		{"refused", errRefused, fiber.StatusTooManyRequests},
		{"backend_down_fails_open", errors.New("redis: connection refused"), fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{
				ErrorHandler: func(c *fiber.Ctx, err error) error {
					return c.SendStatus(fiber.StatusTooManyRequests)
				},
			})
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			app.Post("/submit",
				RateLimit(logger, stubLimiter{err: tt.limiterErr}, func(c *fiber.Ctx) string { return c.IP() }, errRefused),
				func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
			)

			resp, err := app.Test(httptest.NewRequest("POST", "/submit", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestFixedWindow(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if errors.Is(err, errRefused) {
				return c.SendStatus(fiber.StatusTooManyRequests)
			}
			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})
	app.Post("/submit",
		FixedWindow(2, time.Minute, nil, errRefused),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	var statuses []int
	for range 3 {
		resp, err := app.Test(httptest.NewRequest("POST", "/submit", nil))
		require.NoError(t, err)
		statuses = append(statuses, resp.StatusCode)
	}

	assert.Equal(t, []int{fiber.StatusOK, fiber.StatusOK, fiber.StatusTooManyRequests}, statuses)
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name       string
		handler    fiber.Handler
		wantStatus int
	}{
		{
			name:       "handled",
			handler:    func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) },
			wantStatus: fiber.StatusNoContent,
		},
		{
			name:       "handler_error",
			handler:    func(c *fiber.Ctx) error { return fiber.ErrConflict },
			wantStatus: fiber.StatusConflict,
		},
		{
			name:       "unclassified_error",
			handler:    func(c *fiber.Ctx) error { return errors.New("boom") },
			wantStatus: fiber.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			app := fiber.New()
			app.Use(Logger(slog.New(slog.NewTextHandler(&buf, nil))))
			app.Get("/api/health", tt.handler)

			resp, err := app.Test(httptest.NewRequest("GET", "/api/health", nil))
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Contains(t, buf.String(), "url=/api/health")
			assert.Contains(t, buf.String(), fmt.Sprintf("status=%d", tt.wantStatus))
		})
	}
}
