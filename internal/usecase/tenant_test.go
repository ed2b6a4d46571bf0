package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homewiz/homewiz-backend/internal/entity"
	"github.com/homewiz/homewiz-backend/internal/usecase"
)

func tenantInput(name, roomID string) usecase.CreateTenantInput {
	return usecase.CreateTenantInput{
		TenantName:        name,
		RoomID:            roomID,
		RoomNumber:        "101",
		LeaseStartDate:    entity.NewDate(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)),
		LeaseEndDate:      entity.NewDate(time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)),
		OperatorID:        1,
		BookingType:       "LEASE",
		TenantNationality: "US",
		TenantEmail:       "tenant@email.com",
		BuildingID:        "BLD_SOMA",
		DepositAmount:     1500,
	}
}

func TestCreateTenantDefaults(t *testing.T) {
	f := newFixture(t)
	tenant, err := f.tenants.Create(context.Background(), tenantInput("Ana Lima", "BLD_SOMA_R101"))
	require.NoError(t, err)
	assert.Equal(t, "TNT_001", tenant.TenantID)
	assert.Equal(t, entity.TenantStatusActive, tenant.Status)
	assert.Equal(t, entity.PaymentStatusCurrent, tenant.PaymentStatus)
}

func TestCreateTenantSameRoomTwiceIsAccepted(t *testing.T) {
	f := newFixture(t)
	_, rooms := f.seedBuilding(t)
	ctx := context.Background()

	a, err := f.tenants.Create(ctx, tenantInput("Ana Lima", rooms[0].RoomID))
	require.NoError(t, err)
	b, err := f.tenants.Create(ctx, tenantInput("Bruno Costa", rooms[0].RoomID))
	require.NoError(t, err)

	assert.Equal(t, "TNT_001", a.TenantID)
	assert.Equal(t, "TNT_002", b.TenantID)
	assert.Equal(t, a.RoomID, b.RoomID)

	room, err := f.rooms.Get(ctx, rooms[0].RoomID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoomStatusAvailable, room.Status)
}

func TestCreateTenantDoesNotCheckLeaseDates(t *testing.T) {
	f := newFixture(t)
	in := tenantInput("Ana Lima", "BLD_SOMA_R101")
	in.LeaseStartDate, in.LeaseEndDate = in.LeaseEndDate, in.LeaseStartDate
	_, err := f.tenants.Create(context.Background(), in)
	assert.NoError(t, err)
}

func TestCreateTenantValidation(t *testing.T) {
	f := newFixture(t)
	in := tenantInput("", "")
	in.DepositAmount = -1
	_, err := f.tenants.Create(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, usecase.CodeValidation, usecase.ErrorCode(err))
	assert.Contains(t, err.Error(), "tenant_name")
	assert.Contains(t, err.Error(), "room_id")
	assert.Contains(t, err.Error(), "deposit_amount")
}

func TestTenantLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tenant, err := f.tenants.Create(ctx, tenantInput("Ana Lima", "BLD_SOMA_R101"))
	require.NoError(t, err)

	got, err := f.tenants.UpdatePaymentStatus(ctx, tenant.TenantID, usecase.UpdatePaymentStatusInput{PaymentStatus: "LATE"})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusLate, got.PaymentStatus)

	_, err = f.tenants.UpdatePaymentStatus(ctx, tenant.TenantID, usecase.UpdatePaymentStatusInput{PaymentStatus: "LATE"})
	assert.True(t, usecase.IsConflict(err))

	_, err = f.tenants.UpdatePaymentStatus(ctx, tenant.TenantID, usecase.UpdatePaymentStatusInput{PaymentStatus: "DELINQUENT"})
	assert.Equal(t, usecase.CodeValidation, usecase.ErrorCode(err))

	got, err = f.tenants.End(ctx, tenant.TenantID)
	require.NoError(t, err)
	assert.Equal(t, entity.TenantStatusEnded, got.Status)

	_, err = f.tenants.End(ctx, tenant.TenantID)
	assert.True(t, usecase.IsConflict(err))

	_, err = f.tenants.End(ctx, "TNT_404")
	assert.True(t, usecase.IsNotFound(err))
}
