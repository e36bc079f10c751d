// Package directory is the Postgres-backed member directory the filter form
// searches and the member form saves into.
package directory

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"adminforms/internal/database"
	"adminforms/internal/form"
	"adminforms/internal/form/filter"
	"adminforms/internal/form/member"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Directory struct {
	logger *slog.Logger
	db     *database.Database
}

func New(logger *slog.Logger, db *database.Database) *Directory {
	return &Directory{logger: logger, db: db}
}

func (d *Directory) Search(ctx context.Context, criteria []filter.Criterion) ([]filter.Match, error) {
	query, args, err := Compile(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to compile filters: %w", err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	matches := []filter.Match{}
	for rows.Next() {
		var (
			m          filter.Match
			id         uuid.UUID
			firstName  string
			lastName   string
			lastActive sql.NullTime
		)
		if err := rows.Scan(&id, &firstName, &lastName, &m.Email, &m.Department, &m.Role, &m.Status,
			&m.ModulesAssigned, &lastActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.ID = id.String()
		m.Name = firstName + " " + lastName
		if lastActive.Valid {
			m.LastActive = &lastActive.Time
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	d.logger.DebugContext(ctx, "Member search completed", "criteria", len(criteria), "matches", len(matches))
	return matches, nil
}

// SaveMember inserts the member, or updates the existing row with the same
// email address.
func (d *Directory) SaveMember(ctx context.Context, r member.Record) error {
	role := sql.NullString{String: r.Role, Valid: r.Role != ""}

	if _, err := d.db.ExecContext(ctx, `
		INSERT INTO members (id, first_name, last_name, email, department, role, custom_permissions)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			department = EXCLUDED.department,
			role = EXCLUDED.role,
			custom_permissions = EXCLUDED.custom_permissions,
			updated_at = NOW()`,
		uuid.New(), r.FirstName, r.LastName, r.Email, r.Department, role, pq.Array(r.CustomPermissions),
	); err != nil {
		return fmt.Errorf("failed to save member: %w", err)
	}
	return nil
}

// WriteSubmission stores the submission envelope in the submissions table.
func (d *Directory) WriteSubmission(ctx context.Context, s form.Submission) error {
	payload, err := json.Marshal(s.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal submission payload: %w", err)
	}

	if _, err := d.db.ExecContext(ctx,
		`INSERT INTO submissions (id, form, payload, submitted_at) VALUES ($1, $2, $3, $4)`,
		s.ID, s.Form, payload, s.SubmittedAt,
	); err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}
