package seed

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"garage/internal/infrastructure/auth"
	"garage/internal/infrastructure/config"
	"garage/internal/infrastructure/database"
	"garage/internal/infrastructure/persistence/seeds"
	"garage/internal/shared/logger"
)

var (
	env  string
	demo bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load reference data and the first administrator",
		Long: `Insert the service statuses, payment methods and the administrator
configured under seed.admin_email. Rows that already exist are kept.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&demo, "demo", false, "Also load demo service centers and products")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, false); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	ctx := context.Background()
	db := database.Get()

	if err := seeds.SeedReferenceData(ctx, db); err != nil {
		return err
	}
	log.Infow("reference data seeded")

	if demo {
		if err := seeds.SeedDemoData(ctx, db); err != nil {
			return err
		}
		log.Infow("demo data seeded")
	}

	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		log.Warnw("seed.admin_email or seed.admin_password is empty, skipping administrator")
		return nil
	}

	hash, err := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost).Hash(cfg.Seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	created, err := seeds.SeedAdmin(ctx, db, cfg.Seed.AdminEmail, hash)
	if err != nil {
		return err
	}
	if created {
		log.Infow("administrator created", "email", cfg.Seed.AdminEmail)
	} else {
		log.Infow("administrator already exists", "email", cfg.Seed.AdminEmail)
	}

	return nil
}
