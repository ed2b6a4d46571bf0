// Package cli holds the homewiz-admin subcommands.
package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/homewiz/homewiz-backend/internal/bootstrap"
	"github.com/homewiz/homewiz-backend/internal/config"
	"github.com/homewiz/homewiz-backend/internal/entity"
	"github.com/homewiz/homewiz-backend/internal/usecase"
)

// App is the state shared by every subcommand.
type App struct {
	Config *config.Config
	Logger *zap.Logger
	// OpenBackend defaults to bootstrap.Open.
	OpenBackend func(ctx context.Context) (*bootstrap.Backend, error)
}

func NewApp(cfg *config.Config, logger *zap.Logger) *App {
	app := &App{Config: cfg, Logger: logger}
	app.OpenBackend = func(ctx context.Context) (*bootstrap.Backend, error) {
		return bootstrap.Open(ctx, app.Config, app.Logger)
	}
	return app
}

func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "homewiz-admin",
		Short:         "HomeWiz maintenance tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		MigrateCmd(app),
		SeedCmd(app),
		MonitorCmd(app),
		CheckCmd(app),
		ExportCmd(app),
	)
	return rootCmd
}

func (a *App) roomUseCase(b *bootstrap.Backend) *usecase.RoomUseCase {
	generator := entity.NewRoomGenerator(entity.DefaultPricing(), rand.New(rand.NewSource(time.Now().UnixNano())))
	return usecase.NewRoomUseCase(b.Rooms, b.Buildings, generator, a.Logger)
}

func printf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
