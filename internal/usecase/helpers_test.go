package usecase_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/homewiz/homewiz-backend/internal/entity"
	"github.com/homewiz/homewiz-backend/internal/infra/memory"
	"github.com/homewiz/homewiz-backend/internal/usecase"
)

type fixture struct {
	store     *memory.Store
	operators *usecase.OperatorUseCase
	buildings *usecase.BuildingUseCase
	rooms     *usecase.RoomUseCase
	leads     *usecase.LeadUseCase
	tenants   *usecase.TenantUseCase
	convert   *usecase.ConvertLeadUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	logger := zap.NewNop()
	gen := entity.NewRoomGenerator(entity.DefaultPricing(), rand.New(rand.NewSource(7)))
	return &fixture{
		store:     store,
		operators: usecase.NewOperatorUseCase(store.Operators(), logger),
		buildings: usecase.NewBuildingUseCase(store.Buildings(), store.Operators(), store.Rooms(), logger),
		rooms:     usecase.NewRoomUseCase(store.Rooms(), store.Buildings(), gen, logger),
		leads:     usecase.NewLeadUseCase(store.Leads(), store.Rooms(), store, logger),
		tenants:   usecase.NewTenantUseCase(store.Tenants(), store, logger),
		convert: usecase.NewConvertLeadUseCase(
			store.Leads(), store.Rooms(), store.Tenants(), store.Operators(), store, logger,
		),
	}
}

func intPtr(v int) *int { return &v }

// seedBuilding stores an operator and a generated SoMA building with two floors
// of two rooms each.
func (f *fixture) seedBuilding(t *testing.T) (*entity.Operator, []*entity.Room) {
	t.Helper()
	ctx := context.Background()

	op, err := f.operators.Create(ctx, usecase.CreateOperatorInput{
		Name:         "Lisa Leasing",
		Email:        "lisa.leasing@homewiz.com",
		OperatorType: "LEASING_AGENT",
	})
	require.NoError(t, err)

	_, err = f.buildings.Create(ctx, usecase.CreateBuildingInput{
		BuildingID:   "BLD_SOMA",
		BuildingName: "SoMA Commons",
		OperatorID:   &op.ID,
		Area:         "SoMA",
		Floors:       intPtr(2),
		TotalRooms:   intPtr(4),
	})
	require.NoError(t, err)

	out, err := f.rooms.Generate(ctx, "BLD_SOMA")
	require.NoError(t, err)
	require.Len(t, out.Rooms, 4)
	return op, out.Rooms
}
