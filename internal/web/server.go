// Package web exposes the dashboard forms over HTTP. Form state is kept in
// the fiber session, one JSON document per form.
package web

import (
	"context"
	"log/slog"

	"adminforms/internal/catalog"
	"adminforms/internal/config"
	"adminforms/internal/form/assignment"
	"adminforms/internal/form/filter"
	"adminforms/internal/form/member"
	"adminforms/internal/form/plan"
	"adminforms/internal/middleware"
	"adminforms/internal/telemetry"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
)

type Forms struct {
	Filters    *filter.Form
	Assignment *assignment.Form
	Plan       *plan.Form
	Member     *member.Form
}

// Validator checks decoded request bodies.
type Validator interface {
	Validate(i interface{}) error
}

// Pinger reports whether the database answers. A nil Pinger means the
// service runs without one.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	Logger    *slog.Logger
	Catalog   catalog.Catalog
	Forms     Forms
	Sessions  *session.Store
	Validator Validator
	DB        Pinger
}

func NewHandler(logger *slog.Logger, cat catalog.Catalog, forms Forms, sessions *session.Store, validator Validator, db Pinger) *Handler {
	return &Handler{
		Logger:    logger,
		Catalog:   cat,
		Forms:     forms,
		Sessions:  sessions,
		Validator: validator,
		DB:        db,
	}
}

// NewApp builds the fiber application with every route registered.
// Every submit route passes through limit.
func NewApp(logger *slog.Logger, cfg *config.Config, h *Handler, limit fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Telemetry.ServiceName,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: ErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(telemetry.FiberMiddleware(cfg.Telemetry.ServiceName))
	app.Use(middleware.Logger(logger))

	api := app.Group("/api")
	api.Get("/health", h.Healthy)
	api.Get("/catalog", h.ShowCatalog)

	filters := api.Group("/forms/filters")
	filters.Get("", h.ShowFilters)
	filters.Post("/add", h.AddFilter)
	filters.Post("/remove", h.RemoveFilter)
	filters.Post("/update", h.UpdateFilter)
	filters.Post("/reset", h.ResetFilters)
	filters.Post("/submit", limit, h.SubmitFilters)

	assign := api.Group("/forms/assignment")
	assign.Get("", h.ShowAssignment)
	assign.Post("/search", h.SearchAssignment)
	assign.Post("/modules/toggle", h.ToggleModule)
	assign.Post("/users/toggle", h.ToggleUser)
	assign.Post("/submit", limit, h.SubmitAssignment)

	subscription := api.Group("/forms/subscription")
	subscription.Get("", h.ShowSubscription)
	subscription.Post("/select", h.SelectPlan)
	subscription.Post("/payment", h.UpdatePayment)
	subscription.Post("/submit", limit, h.SubmitSubscription)

	members := api.Group("/forms/member")
	members.Get("", h.ShowMember)
	members.Post("/field", h.UpdateMemberField)
	members.Post("/permissions/toggle", h.TogglePermission)
	members.Post("/reset", h.ResetMember)
	members.Post("/submit", limit, h.SubmitMember)

	pages := app.Group("/forms")
	pages.Get("/filters", h.ShowFiltersPage)
	pages.Get("/assignment", h.ShowAssignmentPage)
	pages.Get("/subscription", h.ShowSubscriptionPage)
	pages.Get("/member", h.ShowMemberPage)
	pages.Post("/filters", h.UpdateFiltersPage)
	pages.Post("/assignment", h.UpdateAssignmentPage)
	pages.Post("/subscription", h.UpdateSubscriptionPage)
	pages.Post("/member", h.UpdateMemberPage)

	return app
}

func (h *Handler) Healthy(c *fiber.Ctx) error {
	if h.DB != nil {
		if err := h.DB.PingContext(c.UserContext()); err != nil {
			h.Logger.ErrorContext(c.UserContext(), "Database connection failed", "error", err)
			return ErrorResponse(c, fiber.StatusServiceUnavailable, "SERVER_ERROR", "Database unavailable")
		}
	}
	return c.SendString("OK")
}

func (h *Handler) ShowCatalog(c *fiber.Ctx) error {
	return c.JSON(h.Catalog)
}
