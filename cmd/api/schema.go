package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/hospital-api/internal/config"
	"github.com/jwalitptl/hospital-api/internal/repository/sqlstore"
)

var errResetRefused = errors.New("schema reset drops every table: pass --force and run with app.env=development")

func schemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage the database schema",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create missing tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), func(ctx context.Context, cfg *config.Config, store *sqlstore.Store) error {
				return sqlstore.InitSchema(ctx, store.DB())
			})
		},
	}

	var force bool
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop and recreate every table (development only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), func(ctx context.Context, cfg *config.Config, store *sqlstore.Store) error {
				if err := checkReset(cfg, force); err != nil {
					return err
				}
				return sqlstore.ResetSchema(ctx, store.DB())
			})
		},
	}
	resetCmd.Flags().BoolVar(&force, "force", false, "confirm that all data will be destroyed")

	cmd.AddCommand(initCmd, resetCmd)
	return cmd
}

// checkReset guards the destructive reset.
func checkReset(cfg *config.Config, force bool) error {
	if !force || !cfg.IsDev() {
		return errResetRefused
	}
	return nil
}

func withDatabase(ctx context.Context, fn func(context.Context, *config.Config, *sqlstore.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Database.Scheme() == "memory" {
		return fmt.Errorf("schema commands need a SQL database, got %q", cfg.Database.URI)
	}

	db, err := sqlstore.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	store := sqlstore.New(db, nil)
	defer store.Close()

	return fn(ctx, cfg, store)
}
