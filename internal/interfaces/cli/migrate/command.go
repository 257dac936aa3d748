package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kazihub-inc/kazihub/internal/infrastructure/config"
	"github.com/kazihub-inc/kazihub/internal/infrastructure/database"
	"github.com/kazihub-inc/kazihub/internal/infrastructure/migration"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

var (
	env          string
	steps        int
	forceVersion int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations: apply pending migrations, roll back, and inspect the current version.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newForceCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func newForceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "force",
		Short: "Force the migration version without running migrations",
		Long:  `Set the recorded migration version after resolving a dirty state by hand.`,
		RunE:  runForce,
	}

	cmd.Flags().IntVarP(&forceVersion, "version", "v", -1, "Version to force (required)")
	cmd.MarkFlagRequired("version")

	return cmd
}

func initEnv() (migration.Strategy, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	scriptsPath, err := filepath.Abs(cfg.Migration.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve migrations path: %w", err)
	}

	manager := migration.NewManager(cfg.Migration.Strategy, scriptsPath)
	return manager.GetStrategy(), log, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	strategy, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running up migrations", "environment", env, "strategy", strategy.GetName())

	if err := strategy.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
		log.Errorw("migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	strategy, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running down migrations", "environment", env, "steps", steps)

	switch s := strategy.(type) {
	case *migration.GolangMigrateStrategy:
		if err := s.MigrateDown(database.Get(), steps); err != nil {
			return fmt.Errorf("down migration failed: %w", err)
		}
	case *migration.GooseStrategy:
		if err := s.MigrateDown(database.Get(), steps); err != nil {
			return fmt.Errorf("down migration failed: %w", err)
		}
	default:
		return fmt.Errorf("down migration is not supported with strategy %s", strategy.GetName())
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	strategy, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	switch s := strategy.(type) {
	case *migration.GolangMigrateStrategy:
		version, dirty, err := s.GetVersion(database.Get())
		if err != nil {
			log.Errorw("failed to get migration version", "error", err)
			return fmt.Errorf("failed to get migration version: %w", err)
		}
		fmt.Printf("\nMigration Status:\n")
		fmt.Printf("  Environment:     %s\n", env)
		fmt.Printf("  Current Version: %d\n", version)
		fmt.Printf("  Dirty:           %t\n", dirty)
		return nil
	case *migration.GooseStrategy:
		return s.Status(database.Get())
	default:
		return fmt.Errorf("status check is not supported with strategy %s", strategy.GetName())
	}
}

func runForce(cmd *cobra.Command, args []string) error {
	strategy, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	s, ok := strategy.(*migration.GolangMigrateStrategy)
	if !ok {
		return fmt.Errorf("force is only supported with the golang-migrate strategy")
	}

	log.Warnw("forcing migration version", "version", forceVersion)

	if err := s.Force(database.Get(), forceVersion); err != nil {
		return fmt.Errorf("failed to force version: %w", err)
	}

	log.Infow("migration version forced", "version", forceVersion)
	return nil
}
