package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/homewiz/homewiz-backend/internal/infra/report"
	"github.com/homewiz/homewiz-backend/internal/usecase"
)

func ExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the rent roll spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			ctx := cmd.Context()

			backend, err := app.OpenBackend(ctx)
			if err != nil {
				return err
			}
			defer backend.Close()

			rr, err := usecase.NewRentRollUseCase(backend.Buildings, backend.Rooms, backend.Tenants).Execute(ctx)
			if err != nil {
				return err
			}
			data, err := report.GenerateRentRoll(rr)
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			app.Logger.Info("rent roll exported", zap.String("path", output), zap.Int("rooms", len(rr.Rows)))
			printf(cmd.OutOrStdout(), "Wrote %d rooms to %s\n", len(rr.Rows), output)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "rent_roll.xlsx", "Output file")
	return cmd
}
