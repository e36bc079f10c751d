package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"adminforms/internal/config"

	_ "github.com/lib/pq" // PostgreSQL driver
)

type Database struct {
	*sql.DB
}

func NewPostgresDatabase(ctx context.Context, logger *slog.Logger, cfg config.DatabaseConfig) (*Database, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(time.Minute * 10)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if err := db.Close(); err != nil {
			return nil, fmt.Errorf("failed to close database: %w", err)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Connected to database successfully", "host", cfg.Host, "name", cfg.Name)
	return &Database{DB: db}, nil
}
