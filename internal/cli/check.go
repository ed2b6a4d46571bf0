package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/homewiz/homewiz-backend/internal/entity"
	"github.com/homewiz/homewiz-backend/internal/infra/database"
	"github.com/homewiz/homewiz-backend/internal/infra/integration/apiclient"
)

func CheckCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify storage connectivity, schema and data",
		RunE: func(cmd *cobra.Command, args []string) error {
			checkAPI, _ := cmd.Flags().GetBool("api")
			sample, _ := cmd.Flags().GetInt("sample")
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			backend, err := app.OpenBackend(ctx)
			if err != nil {
				return err
			}
			defer backend.Close()

			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			if err := backend.Database.Ping(pingCtx); err != nil {
				return fmt.Errorf("ping %s store: %w", backend.Kind(), err)
			}
			printf(out, "Store: %s (reachable)\n", backend.Kind())

			if backend.DB != nil {
				missing, err := database.NewStatsRepository(backend.DB).MissingTables(ctx)
				if err != nil {
					return err
				}
				if len(missing) > 0 {
					return fmt.Errorf("missing tables: %s (run migrate)", strings.Join(missing, ", "))
				}
				printf(out, "Schema: all tables present\n")
			}

			counts, err := backend.Stats.TableCounts(ctx)
			if err != nil {
				return err
			}
			for _, table := range entity.Tables {
				printf(out, "  %-10s %d\n", table, counts[table])
			}

			buildings, err := backend.Buildings.List(ctx)
			if err != nil {
				return err
			}
			for i, b := range buildings {
				if i == sample {
					break
				}
				n, err := backend.Rooms.CountByBuilding(ctx, b.BuildingID)
				if err != nil {
					return err
				}
				printf(out, "  %s %q floors=%d rooms=%d/%d\n", b.BuildingID, b.Name, b.Floors, n, b.TotalRooms)
			}

			if checkAPI {
				status, err := apiclient.NewClient(app.Config.APIBaseURL, app.Logger).Health(ctx)
				if err != nil {
					return fmt.Errorf("api %s: %w", app.Config.APIBaseURL, err)
				}
				printf(out, "API: %s (%s)\n", status.Status, app.Config.APIBaseURL)
			}

			printf(out, "All checks passed\n")
			return nil
		},
	}

	cmd.Flags().Bool("api", false, "Also check the running API's /health (API_BASE_URL)")
	cmd.Flags().Int("sample", 3, "Number of buildings to print")
	return cmd
}
