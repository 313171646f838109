package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/divlens/backend/pkg/config"
	"github.com/wonny/divlens/backend/pkg/database"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "DB 스키마 마이그레이션",
	Long: `Applies the embedded schema migrations (evaluations, results).

Example:
  go run ./cmd/divlens migrate
  go run ./cmd/divlens migrate --down 1`,
	RunE: runMigrate,
}

var (
	migrateDown int
)

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().IntVar(&migrateDown, "down", 0, "롤백할 마이그레이션 단계 수")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if migrateDown > 0 {
		if err := db.Rollback(migrateDown); err != nil {
			return err
		}
		log.WithField("steps", migrateDown).Info("Migrations rolled back")
		PrintSuccess(fmt.Sprintf("Rolled back %d step(s)", migrateDown))
		return nil
	}

	result, err := db.Migrate()
	if err != nil {
		return err
	}

	log.WithFields(map[string]interface{}{
		"version": result.Version,
		"applied": result.Applied,
	}).Info("Migrations complete")

	if !result.Applied {
		PrintInfo(fmt.Sprintf("Schema already at version %d", result.Version))
		return nil
	}
	PrintSuccess(fmt.Sprintf("Schema migrated to version %d", result.Version))
	return nil
}
