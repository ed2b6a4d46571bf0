package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/homewiz/homewiz-backend/internal/infra/database"
)

func MigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or extend the PostgreSQL schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Config.DatabaseURL == "" {
				return errors.New("DATABASE_URL is required for migrate")
			}

			db, err := database.OpenGorm(app.Config.DatabaseURL)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			if err := database.Migrate(db); err != nil {
				return err
			}
			app.Logger.Info("schema migrated", zap.Int("models", len(database.Models())))
			printf(cmd.OutOrStdout(), "Migrated %d tables\n", len(database.Models()))
			return nil
		},
	}
}
