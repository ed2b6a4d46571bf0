package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/homewiz/homewiz-backend/internal/entity"
	"github.com/homewiz/homewiz-backend/internal/usecase"
)

// failingLeadRepository stores leads in memory but refuses updates.
type failingLeadRepository struct {
	entity.LeadRepository
	mock.Mock
}

func (m *failingLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

// racingRoomRepository simulates another writer taking the room between the
// availability check and the status flip.
type racingRoomRepository struct {
	entity.RoomRepository
}

func (r *racingRoomRepository) UpdateStatus(ctx context.Context, roomID string, from, to entity.RoomStatus) error {
	if to == entity.RoomStatusOccupied {
		if err := r.RoomRepository.UpdateStatus(ctx, roomID, entity.RoomStatusAvailable, entity.RoomStatusOccupied); err != nil {
			return err
		}
	}
	return r.RoomRepository.UpdateStatus(ctx, roomID, from, to)
}

func convertInput(leadID, roomID string, operatorID int64) usecase.ConvertLeadInput {
	return usecase.ConvertLeadInput{
		LeadID:            leadID,
		TenantName:        "Emily Wong",
		RoomID:            roomID,
		LeaseStartDate:    entity.NewDate(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)),
		LeaseEndDate:      entity.NewDate(time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)),
		OperatorID:        operatorID,
		BookingType:       "LEASE",
		TenantNationality: "US",
		DepositAmount:     2000,
	}
}

func TestConvertLeadSuccess(t *testing.T) {
	f := newFixture(t)
	op, rooms := f.seedBuilding(t)
	ctx := context.Background()

	created, err := f.leads.Create(ctx, usecase.CreateLeadInput{Email: "emily.wong@email.com"})
	require.NoError(t, err)
	_, err = f.leads.SelectRoom(ctx, created.Lead.LeadID, usecase.SelectRoomInput{RoomID: rooms[2].RoomID})
	require.NoError(t, err)

	out, err := f.convert.Execute(ctx, convertInput(created.Lead.LeadID, "", op.ID))
	require.NoError(t, err)
	assert.NotEmpty(t, out.ConversionID)
	assert.Equal(t, "TNT_001", out.Tenant.TenantID)
	assert.Equal(t, rooms[2].RoomID, out.Tenant.RoomID)
	assert.Equal(t, rooms[2].RoomNumber, out.Tenant.RoomNumber)
	assert.Equal(t, "BLD_SOMA", out.Tenant.BuildingID)
	assert.Equal(t, "emily.wong@email.com", out.Tenant.Email)
	assert.Equal(t, entity.RoomStatusOccupied, out.Room.Status)
	assert.Equal(t, entity.LeadStatusConverted, out.Lead.Status)

	room, err := f.rooms.Get(ctx, rooms[2].RoomID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoomStatusOccupied, room.Status)

	lead, err := f.leads.Get(ctx, created.Lead.LeadID)
	require.NoError(t, err)
	assert.Equal(t, entity.LeadStatusConverted, lead.Status)

	_, err = f.convert.Execute(ctx, convertInput(created.Lead.LeadID, rooms[3].RoomID, op.ID))
	assert.True(t, usecase.IsConflict(err))
}

func TestConvertLeadRejections(t *testing.T) {
	f := newFixture(t)
	op, rooms := f.seedBuilding(t)
	ctx := context.Background()

	created, err := f.leads.Create(ctx, usecase.CreateLeadInput{Email: "john.doe@email.com"})
	require.NoError(t, err)
	leadID := created.Lead.LeadID

	t.Run("unknown lead", func(t *testing.T) {
		_, err := f.convert.Execute(ctx, convertInput("LEAD_404", rooms[0].RoomID, op.ID))
		assert.True(t, usecase.IsNotFound(err))
	})

	t.Run("no room", func(t *testing.T) {
		_, err := f.convert.Execute(ctx, convertInput(leadID, "", op.ID))
		assert.Equal(t, usecase.CodeValidation, usecase.ErrorCode(err))
	})

	t.Run("unknown room", func(t *testing.T) {
		_, err := f.convert.Execute(ctx, convertInput(leadID, "BLD_SOMA_R909", op.ID))
		assert.True(t, usecase.IsNotFound(err))
	})

	t.Run("lease dates reversed", func(t *testing.T) {
		in := convertInput(leadID, rooms[0].RoomID, op.ID)
		in.LeaseStartDate, in.LeaseEndDate = in.LeaseEndDate, in.LeaseStartDate
		_, err := f.convert.Execute(ctx, in)
		assert.Equal(t, usecase.CodeValidation, usecase.ErrorCode(err))
	})

	t.Run("unknown operator", func(t *testing.T) {
		_, err := f.convert.Execute(ctx, convertInput(leadID, rooms[0].RoomID, 404))
		assert.True(t, usecase.IsNotFound(err))
	})

	t.Run("room occupied", func(t *testing.T) {
		_, err := f.rooms.Occupy(ctx, rooms[1].RoomID)
		require.NoError(t, err)
		_, err = f.convert.Execute(ctx, convertInput(leadID, rooms[1].RoomID, op.ID))
		assert.True(t, usecase.IsConflict(err))
	})

	tenants, err := f.tenants.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tenants)
}

func TestConvertLeadCompensatesWhenLeadUpdateFails(t *testing.T) {
	f := newFixture(t)
	op, rooms := f.seedBuilding(t)
	ctx := context.Background()

	created, err := f.leads.Create(ctx, usecase.CreateLeadInput{Email: "emily.wong@email.com"})
	require.NoError(t, err)

	leads := &failingLeadRepository{LeadRepository: f.store.Leads()}
	leads.On("Update", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	convert := usecase.NewConvertLeadUseCase(leads, f.store.Rooms(), f.store.Tenants(), f.store.Operators(), f.store, zap.NewNop())
	_, err = convert.Execute(ctx, convertInput(created.Lead.LeadID, rooms[0].RoomID, op.ID))
	require.Error(t, err)
	assert.Equal(t, usecase.CodeStorage, usecase.ErrorCode(err))
	leads.AssertExpectations(t)

	tenants, err := f.tenants.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tenants)

	room, err := f.rooms.Get(ctx, rooms[0].RoomID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoomStatusAvailable, room.Status)

	lead, err := f.leads.Get(ctx, created.Lead.LeadID)
	require.NoError(t, err)
	assert.Equal(t, entity.LeadStatusExploring, lead.Status)
}

func TestConvertLeadCompensatesWhenRoomIsTaken(t *testing.T) {
	f := newFixture(t)
	op, rooms := f.seedBuilding(t)
	ctx := context.Background()

	created, err := f.leads.Create(ctx, usecase.CreateLeadInput{Email: "emily.wong@email.com"})
	require.NoError(t, err)

	convert := usecase.NewConvertLeadUseCase(
		f.store.Leads(), &racingRoomRepository{f.store.Rooms()}, f.store.Tenants(), f.store.Operators(), f.store, zap.NewNop(),
	)
	_, err = convert.Execute(ctx, convertInput(created.Lead.LeadID, rooms[0].RoomID, op.ID))
	assert.True(t, usecase.IsConflict(err))

	tenants, err := f.tenants.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tenants)

	lead, err := f.leads.Get(ctx, created.Lead.LeadID)
	require.NoError(t, err)
	assert.Equal(t, entity.LeadStatusExploring, lead.Status)
}
