package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adminforms/internal/audit"
	"adminforms/internal/billing"
	"adminforms/internal/catalog"
	"adminforms/internal/config"
	"adminforms/internal/database"
	"adminforms/internal/directory"
	"adminforms/internal/form/assignment"
	"adminforms/internal/form/filter"
	"adminforms/internal/form/member"
	"adminforms/internal/form/plan"
	"adminforms/internal/logger"
	"adminforms/internal/middleware"
	"adminforms/internal/openfga"
	"adminforms/internal/ratelimit"
	"adminforms/internal/storage"
	"adminforms/internal/telemetry"
	"adminforms/internal/validator"
	"adminforms/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/postgres/v3"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.NewConfig()

	bootLogger := logger.New(*cfg, os.Stdout)
	tel, err := telemetry.New(ctx, bootLogger, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			bootLogger.Error("Failed to shutdown telemetry", "error", err)
		}
	}()

	// Built again so the OpenTelemetry log bridge sees the installed provider.
	log := logger.New(*cfg, os.Stdout)

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		if cat, err = catalog.Load(cfg.CatalogPath); err != nil {
			return err
		}
		log.Info("Catalog loaded", "path", cfg.CatalogPath)
	}

	var (
		searcher filter.Searcher = filter.LogSearcher{Logger: log}
		saver    member.Saver    = member.LogSaver{Logger: log}
		writer   audit.SubmissionWriter
		db       web.Pinger
	)
	if cfg.Database.Enabled {
		conn, err := database.NewPostgresDatabase(ctx, log, cfg.Database)
		if err != nil {
			return err
		}
		defer conn.Close()

		dir := directory.New(log, conn)
		searcher, saver, writer, db = dir, dir, dir, conn
	}

	fga, err := openfga.NewClient(log, cfg.OpenFGA)
	if err != nil {
		return err
	}
	var assigner assignment.Assigner = assignment.LogAssigner{Logger: log}
	if fga.IsEnabled() {
		assigner = openfga.NewAssigner(log, fga)
	}

	var biller plan.Biller = plan.LogBiller{Logger: log}
	if cfg.Stripe.SecretKey != "" {
		biller = billing.NewBiller(log, billing.NewStripeClient(log, cfg.Stripe.SecretKey))
	}

	archive, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize submission archive: %w", err)
	}
	auditor := audit.NewAuditor(log, writer, archive, tel)

	var sessionStorage fiber.Storage
	if cfg.Database.Enabled {
		sessionStorage = postgres.New(postgres.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			Database: cfg.Database.Name,
			Username: cfg.Database.User,
			Password: cfg.Database.Password,
			SSLMode:  cfg.Database.SSLMode,
			Table:    cfg.Session.Table,
		})
		defer sessionStorage.Close()
	}

	// Submit attempts share the session storage unless Redis is configured.
	limit := middleware.FixedWindow(cfg.SubmitLimit.Max, cfg.SubmitLimit.Window, sessionStorage, ratelimit.ErrTooManyAttempts)
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		limiter := ratelimit.NewRedisLimiter(rdb, cfg.SubmitLimit.Max, cfg.SubmitLimit.Window)
		limit = middleware.RateLimit(log, limiter, func(c *fiber.Ctx) string { return c.IP() }, ratelimit.ErrTooManyAttempts)
	}

	sessions := web.NewSessionStore(sessionStorage, cfg.Session.CookieName, cfg.Session.CookieSecure, cfg.Session.Expiration)

	v := validator.New(cat)
	forms := web.Forms{
		Filters:    filter.NewForm(log, cat, searcher, auditor),
		Assignment: assignment.NewForm(log, cat, assigner, auditor),
		Plan:       plan.NewForm(log, cat, biller, auditor),
		Member:     member.NewForm(log, cat, v, saver, auditor),
	}

	handler := web.NewHandler(log, cat, forms, sessions, v, db)
	app := web.NewApp(log, cfg, handler, limit)

	serverErr := make(chan error, 1)
	go func() {
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		log.Info("Starting HTTP server...", "addr", addr)
		serverErr <- app.Listen(addr)
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("failed to serve: %w", err)
		}
	case <-ctx.Done():
		log.Info("Shutting down HTTP server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("Error shutting down", "error", err)
		}
	}

	log.Info("Fiber was successful shutdown.")
	return nil
}
