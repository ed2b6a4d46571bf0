package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/homewiz/homewiz-backend/internal/infra/worker"
)

func MonitorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Watch per-table row counts and print changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			interval, _ := cmd.Flags().GetDuration("interval")
			duration, _ := cmd.Flags().GetDuration("duration")
			if interval <= 0 {
				interval = app.Config.MonitorInterval
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			backend, err := app.OpenBackend(ctx)
			if err != nil {
				return err
			}
			defer backend.Close()

			out := cmd.OutOrStdout()
			monitor := worker.NewTableMonitor(backend.Stats, interval, app.Logger)
			monitor.OnChange(func(changes []worker.TableChange) {
				stamp := time.Now().Format("15:04:05")
				for _, c := range changes {
					printf(out, "[%s] %-10s %5d -> %-5d (%+d)\n", stamp, c.Table, c.Previous, c.Current, c.Delta())
				}
			})

			printf(out, "Monitoring %s store every %s (Ctrl+C to stop)\n", backend.Kind(), interval)
			monitor.Start(ctx)
			return nil
		},
	}

	cmd.Flags().Duration("interval", 0, "Poll interval (defaults to MONITOR_INTERVAL)")
	cmd.Flags().Duration("duration", 0, "Stop after this long (0 runs until interrupted)")
	return cmd
}
