package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"adminforms/internal/catalog"
	"adminforms/internal/config"
	"adminforms/internal/database"
	"adminforms/internal/directory"
	"adminforms/internal/form/member"
	"adminforms/internal/validator"
)

type seed struct {
	record          member.Record
	status          string
	modulesAssigned int
	lastActive      time.Duration
}

func main() {
	ctx := context.Background()
	cfg := config.NewConfig()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := database.NewPostgresDatabase(ctx, logger, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("Failed to close database connection: %v", err)
		}
	}()

	cat := catalog.Default()
	dir := directory.New(logger, db)
	form := member.NewForm(logger, cat, validator.New(cat), dir, nil)

	seeds := []seed{
		{
			record: member.Record{FirstName: "Admin", LastName: "User", Email: "admin@example.com",
				Department: "Administration", Role: "admin", CustomPermissions: []string{"Manage billing", "Configure security settings"}},
			status: "active", modulesAssigned: 2, lastActive: 10 * time.Minute,
		},
		{
			record: member.Record{FirstName: "John", LastName: "Doe", Email: "john@example.com",
				Department: "Finance", Role: "manager", CustomPermissions: []string{"Access reports"}},
			status: "active", modulesAssigned: 1, lastActive: 24 * time.Hour,
		},
		{
			record: member.Record{FirstName: "Jane", LastName: "Smith", Email: "jane@example.com",
				Department: "Human Resources", Role: "user", CustomPermissions: []string{}},
			status: "pending", modulesAssigned: 1,
		},
		{
			record: member.Record{FirstName: "Bob", LastName: "Wilson", Email: "bob@example.com",
				Department: "Engineering", Role: "viewer", CustomPermissions: []string{"View analytics"}},
			status: "inactive", lastActive: 30 * 24 * time.Hour,
		},
	}

	for _, s := range seeds {
		if _, err := form.Submit(ctx, s.record); err != nil {
			log.Printf("Failed to create member %s: %v", s.record.Email, err)
			continue
		}

		var lastActive *time.Time
		if s.lastActive > 0 {
			t := time.Now().Add(-s.lastActive)
			lastActive = &t
		}
		if _, err := db.ExecContext(ctx,
			`UPDATE members SET status = $1, modules_assigned = $2, last_active_at = $3 WHERE email = $4`,
			s.status, s.modulesAssigned, lastActive, s.record.Email,
		); err != nil {
			log.Printf("Failed to update activity for %s: %v", s.record.Email, err)
			continue
		}
		fmt.Printf("Created member: %s %s (%s)\n", s.record.FirstName, s.record.LastName, s.record.Email)
	}

	fmt.Println("\nTest data created successfully!")
	fmt.Printf("Try the filters at http://%s:%s/forms/filters\n", cfg.Server.Host, cfg.Server.Port)
}
