package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/healthapp/healthcare-portal/internal/config"
	"github.com/healthapp/healthcare-portal/internal/observability"
	"github.com/healthapp/healthcare-portal/internal/persistence"
	"github.com/healthapp/healthcare-portal/internal/seed"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load default data into the healthcare portal database",
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(adminCmd())
	rootCmd.AddCommand(medicinesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply SQL migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			return withDatabase(cmd.Context(), func(env *environment) error {
				return persistence.RunMigrations(cmd.Context(), env.pg.PoolHandle(), dir, env.logger)
			})
		},
	}
	cmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	return cmd
}

func adminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "admin",
		Short: "Create the default hospital and administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), func(env *environment) error {
				created, err := env.seeder.Admin(cmd.Context())
				if err != nil {
					return err
				}
				if !created {
					fmt.Println("Admin user already exists.")
					return nil
				}
				fmt.Printf("Admin user created.\n  Email: %s\n  Password: %s\n", seed.AdminEmail, seed.AdminPassword)
				fmt.Println("Change the password after first login.")
				return nil
			})
		},
	}
}

func medicinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "medicines",
		Short: "Load the starter medicine inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), func(env *environment) error {
				added, err := env.seeder.Medicines(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Printf("Added %d medicine(s).\n", added)
				return nil
			})
		},
	}
}

type environment struct {
	pg     *persistence.Postgres
	seeder *seed.Seeder
	logger *zap.Logger
}

func withDatabase(ctx context.Context, fn func(*environment) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Postgres.DSN == "" {
		return errors.New("POSTGRES_DSN is required for seeding")
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pg.Close()

	return fn(&environment{
		pg:     pg,
		seeder: seed.New(pg.Repositories(), cfg.Auth.BcryptCost, logger),
		logger: logger,
	})
}
