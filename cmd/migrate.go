package cmd

import (
	"fmt"

	"github.com/NomadCrew/splitly-backend/db"
	"github.com/NomadCrew/splitly-backend/logger"
	"github.com/spf13/cobra"
)

var (
	rollbackSteps int
	showVersion   bool
)

func init() {
	migrateCmd.Flags().IntVar(&rollbackSteps, "down", 0, "Revert this many migrations instead of applying")
	migrateCmd.Flags().BoolVar(&showVersion, "version", false, "Print the applied migration version and exit")
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long:  "Apply the embedded schema migrations to the postgres database configured under DATABASE.",
	RunE:  migrate,
}

func migrate(cmd *cobra.Command, _ []string) error {
	log := logger.GetLogger()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	dbURL := cfg.Database.URL()

	switch {
	case showVersion:
		version, dirty, err := db.MigrationVersion(dbURL)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", version, dirty)
		return nil
	case rollbackSteps > 0:
		log.Infow("Reverting migrations", "steps", rollbackSteps)
		return db.RollbackMigrations(dbURL, rollbackSteps)
	default:
		return db.RunMigrations(dbURL)
	}
}
