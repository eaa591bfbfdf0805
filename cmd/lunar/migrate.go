// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/lunar/internal/store"
)

// Migrator is the part of store.Migrator used by the migrate commands.
type Migrator interface {
	Up() error
	Down() error
	Force(version int) error
	Version() (uint, bool, error)
	PendingMigrations() ([]uint, error)
	Close() error
}

// newMigrator opens a migrator; tests replace it.
var newMigrator = func(url string) (Migrator, error) {
	return store.NewMigrator(url)
}

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	var databaseURL string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the script KV database schema",
		Long: `Apply or roll back the script KV schema. The database URL comes from
--database-url, the config file or the DATABASE_URL environment variable.`,
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL URL")

	withMigrator := func(run func(cmd *cobra.Command, m Migrator, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			url, err := resolveDatabaseURL(cmd, databaseURL)
			if err != nil {
				return err
			}
			m, err := newMigrator(url)
			if err != nil {
				return err
			}
			defer func() { _ = m.Close() }()
			return run(cmd, m, args)
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE:  withMigrator(runMigrateUp),
	})

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back every migration, dropping all script KV data",
		Args:  cobra.NoArgs,
	}
	confirm := down.Flags().Bool("yes", false, "confirm dropping all script KV data")
	down.RunE = withMigrator(func(cmd *cobra.Command, m Migrator, _ []string) error {
		if !*confirm {
			return oops.In("migrate").Code("CONFIRMATION_REQUIRED").Errorf("migrate down drops all script data; pass --yes to confirm")
		}
		if err := m.Down(); err != nil {
			return err
		}
		cmd.Println("All migrations rolled back")
		return nil
	})
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the applied version and pending migrations",
		Args:  cobra.NoArgs,
		RunE:  withMigrator(runMigrateStatus),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "force VERSION",
		Short: "Mark VERSION as applied without running it",
		Args:  cobra.ExactArgs(1),
		RunE: withMigrator(func(cmd *cobra.Command, m Migrator, args []string) error {
			v, err := parseForceVersion(args[0])
			if err != nil {
				return err
			}
			if err := m.Force(v); err != nil {
				return err
			}
			cmd.Printf("Forced version %d\n", v)
			return nil
		}),
	})

	return cmd
}

// resolveDatabaseURL prefers the flag, then the config file, then
// DATABASE_URL.
func resolveDatabaseURL(cmd *cobra.Command, flagURL string) (string, error) {
	if flagURL != "" {
		return flagURL, nil
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", err
	}
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL, nil
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url, nil
	}
	return "", oops.In("migrate").Code("CONFIG_INVALID").Errorf("no database URL: set --database-url, database-url in the config file or DATABASE_URL")
}

func runMigrateUp(cmd *cobra.Command, m Migrator, _ []string) error {
	pending, err := m.PendingMigrations()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		cmd.Println("Schema is up to date")
		return nil
	}
	cmd.Printf("Applying %d migration(s)...\n", len(pending))
	if err := m.Up(); err != nil {
		return err
	}
	version, _, err := m.Version()
	if err != nil {
		return err
	}
	cmd.Printf("Migrated to version %d\n", version)
	return nil
}

func runMigrateStatus(cmd *cobra.Command, m Migrator, _ []string) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	name, err := store.MigrationName(version)
	if err != nil {
		return err
	}
	if name == "" {
		name = "none"
	}
	cmd.Printf("Current version: %d (%s)\n", version, name)
	if dirty {
		cmd.Println("WARNING: database is dirty; fix the schema and run 'lunar migrate force VERSION'")
	}

	pending, err := m.PendingMigrations()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		cmd.Println("No pending migrations")
		return nil
	}
	parts := make([]string, len(pending))
	for i, v := range pending {
		parts[i] = strconv.FormatUint(uint64(v), 10)
	}
	cmd.Printf("Pending migrations: %s\n", strings.Join(parts, ", "))
	return nil
}

// parseForceVersion accepts a non-negative decimal version.
func parseForceVersion(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, oops.In("migrate").Code("INVALID_VERSION").With("input", s).Wrap(err)
	}
	if v < 0 {
		return 0, oops.In("migrate").Code("INVALID_VERSION").With("input", s).Errorf("version must be non-negative, got %d", v)
	}
	return v, nil
}
