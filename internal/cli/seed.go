package cli

import (
	"github.com/spf13/cobra"

	"github.com/homewiz/homewiz-backend/internal/usecase"
)

func SeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo operators, buildings, rooms and leads",
		Long:  "Load the demo data set. Rows that already exist are skipped, so the command can be rerun.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			backend, err := app.OpenBackend(ctx)
			if err != nil {
				return err
			}
			defer backend.Close()

			if backend.Kind() == "memory" {
				app.Logger.Warn("seeding the in-memory store, data is lost when the command exits")
			}

			seeder := usecase.NewSeeder(backend.Operators, backend.Buildings, app.roomUseCase(backend), backend.Leads, backend.IDs, app.Logger)
			res, err := seeder.Execute(ctx, usecase.DefaultSeedData())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printf(out, "Operators created: %d\n", res.Operators)
			printf(out, "Buildings created: %d\n", res.Buildings)
			printf(out, "Rooms created:     %d\n", res.Rooms)
			printf(out, "Leads created:     %d\n", res.Leads)
			return nil
		},
	}
}
