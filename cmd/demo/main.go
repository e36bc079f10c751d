package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"adminforms/internal/catalog"
	"adminforms/internal/config"
	"adminforms/internal/form/assignment"
	"adminforms/internal/form/filter"
	"adminforms/internal/form/member"
	"adminforms/internal/form/plan"
	"adminforms/internal/logger"
	"adminforms/internal/telemetry"
	"adminforms/internal/validator"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// The demo walks every form once against the log-only collaborators, so the
// logs and traces of a full session can be inspected without any backend.
func main() {
	cfg := config.NewConfig()

	tel, err := telemetry.New(context.Background(), slog.Default(), cfg.Telemetry)
	if err != nil {
		slog.Error("Failed to initialize telemetry", "error", err)
		return
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(ctx); err != nil {
			slog.Error("Failed to shutdown telemetry", "error", err)
		}
	}()

	log := logger.New(*cfg, os.Stdout)
	log.Info("Demo application started", "environment", cfg.Server.Environment)

	tracer := otel.Tracer("adminforms.demo")
	ctx, span := tracer.Start(context.Background(), "demo.session")
	defer span.End()

	span.SetAttributes(attribute.String("demo.type", "form_walkthrough"))

	log = log.With(
		"operation", "demo",
		"trace_id", span.SpanContext().TraceID().String(),
		"span_id", span.SpanContext().SpanID().String(),
	)

	cat := catalog.Default()

	filters := filter.NewForm(log, cat, filter.LogSearcher{Logger: log}, nil)
	set := filter.New()
	if set, err = filters.Update(set, 0, filter.AttributeField, catalog.FieldDepartment); err == nil {
		set = set.Update(0, filter.AttributeValue, "Finance")
		_, err = filters.Submit(ctx, set)
	}
	if err != nil {
		log.ErrorContext(ctx, "Filter demo failed", "error", err)
	}

	assign := assignment.NewForm(log, cat, assignment.LogAssigner{Logger: log}, nil)
	selection := assignment.New().ToggleModule("1", true).ToggleUser("1", true)
	if _, err := assign.Submit(ctx, selection); err != nil {
		log.ErrorContext(ctx, "Assignment demo failed", "error", err)
	}

	plans := plan.NewForm(log, cat, plan.LogBiller{Logger: log}, nil)
	choice := plans.New().UpdatePayment(plan.PaymentFieldCardNumber, "4242 4242 4242 4242")
	if _, err := plans.Submit(ctx, choice); err != nil {
		log.ErrorContext(ctx, "Subscription demo failed", "error", err)
	}

	members := member.NewForm(log, cat, validator.New(cat), member.LogSaver{Logger: log}, nil)
	record := member.New().
		UpdateField(member.FieldFirstName, "Jane").
		UpdateField(member.FieldLastName, "Smith").
		UpdateField(member.FieldEmail, "jane@example.com").
		UpdateField(member.FieldDepartment, "Human Resources").
		TogglePermission("View analytics", true)
	if _, err := members.Submit(ctx, record); err != nil {
		log.ErrorContext(ctx, "Member demo failed", "error", err)
	}

	log.InfoContext(ctx, "Demo completed successfully")

	// Wait a bit for telemetry to be sent
	time.Sleep(2 * time.Second)
}
