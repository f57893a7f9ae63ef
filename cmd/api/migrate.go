package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/pkordes/voyage/backend/internal/config"
	"github.com/pkordes/voyage/backend/migrations"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect database migrations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd.Context(), func(p *goose.Provider) error {
					results, err := p.Up(cmd.Context())
					printResults(cmd.OutOrStdout(), results...)
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd.Context(), func(p *goose.Provider) error {
					result, err := p.Down(cmd.Context())
					if result != nil {
						printResults(cmd.OutOrStdout(), result)
					}
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd.Context(), func(p *goose.Provider) error {
					statuses, err := p.Status(cmd.Context())
					if err != nil {
						return err
					}
					printStatus(cmd.OutOrStdout(), statuses)
					return nil
				})
			},
		},
	)

	return cmd
}

// withProvider opens DATABASE_URL, builds the goose provider over the
// embedded migrations, and hands it to fn.
func withProvider(ctx context.Context, fn func(p *goose.Provider) error) error {
	dsn, err := config.DatabaseURL()
	if err != nil {
		return err
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	p, err := migrations.NewProvider(db)
	if err != nil {
		return err
	}
	return fn(p)
}

func printResults(w io.Writer, results ...*goose.MigrationResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "no migrations to run")
		return
	}
	for _, r := range results {
		fmt.Fprintf(w, "%-4s %05d %s (%s)\n", r.Direction, r.Source.Version, r.Source.Path, r.Duration.Round(time.Millisecond))
	}
}

func printStatus(w io.Writer, statuses []*goose.MigrationStatus) {
	for _, s := range statuses {
		applied := "pending"
		if s.State == goose.StateApplied {
			applied = s.AppliedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%05d %-40s %s\n", s.Source.Version, s.Source.Path, applied)
	}
}
