package main

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/homewiz/homewiz-backend/internal/bootstrap"
	"github.com/homewiz/homewiz-backend/internal/config"
	"github.com/homewiz/homewiz-backend/internal/entity"
	"github.com/homewiz/homewiz-backend/internal/infra/http/handlers"
	"github.com/homewiz/homewiz-backend/internal/infra/http/router"
	"github.com/homewiz/homewiz-backend/internal/usecase"
)

type useCases struct {
	Operators *usecase.OperatorUseCase
	Buildings *usecase.BuildingUseCase
	Rooms     *usecase.RoomUseCase
	Leads     *usecase.LeadUseCase
	Tenants   *usecase.TenantUseCase
	Convert   *usecase.ConvertLeadUseCase
	RentRoll  *usecase.RentRollUseCase
	Seeder    *usecase.Seeder
}

func newUseCases(b *bootstrap.Backend, logger *zap.Logger) *useCases {
	generator := entity.NewRoomGenerator(entity.DefaultPricing(), rand.New(rand.NewSource(time.Now().UnixNano())))
	rooms := usecase.NewRoomUseCase(b.Rooms, b.Buildings, generator, logger)

	return &useCases{
		Operators: usecase.NewOperatorUseCase(b.Operators, logger),
		Buildings: usecase.NewBuildingUseCase(b.Buildings, b.Operators, b.Rooms, logger),
		Rooms:     rooms,
		Leads:     usecase.NewLeadUseCase(b.Leads, b.Rooms, b.IDs, logger),
		Tenants:   usecase.NewTenantUseCase(b.Tenants, b.IDs, logger),
		Convert:   usecase.NewConvertLeadUseCase(b.Leads, b.Rooms, b.Tenants, b.Operators, b.IDs, logger),
		RentRoll:  usecase.NewRentRollUseCase(b.Buildings, b.Rooms, b.Tenants),
		Seeder:    usecase.NewSeeder(b.Operators, b.Buildings, rooms, b.Leads, b.IDs, logger),
	}
}

// newHandlers returns the handler set and a stop func for the background
// helpers some handlers own.
func newHandlers(b *bootstrap.Backend, uc *useCases, cfg *config.Config, logger *zap.Logger) (router.Handlers, func()) {
	deps := map[string]handlers.Pinger{"database": b.Database}
	if b.Redis != nil {
		deps["redis"] = b.Redis
	}

	leads := handlers.NewLeadHandler(uc.Leads, uc.Convert, cfg.LeadRateLimit, logger)

	return router.Handlers{
		Health:    handlers.NewHealthHandler(deps),
		Operators: handlers.NewOperatorHandler(uc.Operators, logger),
		Buildings: handlers.NewBuildingHandler(uc.Buildings, uc.Rooms, logger),
		Rooms:     handlers.NewRoomHandler(uc.Rooms, logger),
		Leads:     leads,
		Tenants:   handlers.NewTenantHandler(uc.Tenants, logger),
		Reports:   handlers.NewReportHandler(uc.RentRoll, logger),
	}, leads.Stop
}
