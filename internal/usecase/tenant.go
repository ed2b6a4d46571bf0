package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/homewiz/homewiz-backend/internal/entity"
)

type TenantUseCase struct {
	Repo   entity.TenantRepository
	IDs    entity.Sequencer
	Logger *zap.Logger
}

func NewTenantUseCase(repo entity.TenantRepository, ids entity.Sequencer, logger *zap.Logger) *TenantUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TenantUseCase{Repo: repo, IDs: ids, Logger: logger}
}

// Create records a lease as given. It does not check that the room is free or
// that the lease dates are ordered; ConvertLead is the checked path.
func (uc *TenantUseCase) Create(ctx context.Context, in CreateTenantInput) (*entity.Tenant, error) {
	if err := ValidateCreateTenantInput(in); err != nil {
		return nil, err
	}

	n, err := uc.IDs.Next(ctx, entity.SequenceTenants)
	if err != nil {
		return nil, translate(err, "allocate tenant id")
	}

	t := &entity.Tenant{
		TenantID:      entity.FormatTenantID(n),
		Name:          strings.TrimSpace(in.TenantName),
		RoomID:        in.RoomID,
		RoomNumber:    in.RoomNumber,
		LeaseStart:    in.LeaseStartDate,
		LeaseEnd:      in.LeaseEndDate,
		OperatorID:    in.OperatorID,
		BookingType:   in.BookingType,
		Nationality:   in.TenantNationality,
		Email:         in.TenantEmail,
		Phone:         in.Phone,
		BuildingID:    in.BuildingID,
		Status:        entity.TenantStatusActive,
		DepositAmount: in.DepositAmount,
		PaymentStatus: entity.PaymentStatusCurrent,
	}
	if err := uc.Repo.Create(ctx, t); err != nil {
		return nil, translate(err, "create tenant "+t.TenantID)
	}

	uc.Logger.Info("tenant created", zap.String("tenant_id", t.TenantID), zap.String("room_id", t.RoomID))
	return t, nil
}

func (uc *TenantUseCase) Get(ctx context.Context, tenantID string) (*entity.Tenant, error) {
	t, err := uc.Repo.FindByTenantID(ctx, tenantID)
	if err != nil {
		return nil, translate(err, "tenant "+tenantID)
	}
	return t, nil
}

func (uc *TenantUseCase) List(ctx context.Context) ([]*entity.Tenant, error) {
	list, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, translate(err, "list tenants")
	}
	return list, nil
}

// End closes the tenancy. The room is left as it is.
func (uc *TenantUseCase) End(ctx context.Context, tenantID string) (*entity.Tenant, error) {
	return uc.mutate(ctx, tenantID, func(t *entity.Tenant) error {
		return t.Transition(entity.TenantStatusEnded)
	})
}

func (uc *TenantUseCase) UpdatePaymentStatus(ctx context.Context, tenantID string, in UpdatePaymentStatusInput) (*entity.Tenant, error) {
	next := entity.PaymentStatus(in.PaymentStatus)
	if !next.Valid() {
		return nil, validationError("validation failed: payment_status (must be CURRENT or LATE)")
	}
	return uc.mutate(ctx, tenantID, func(t *entity.Tenant) error {
		return t.TransitionPayment(next)
	})
}

func (uc *TenantUseCase) mutate(ctx context.Context, tenantID string, fn func(*entity.Tenant) error) (*entity.Tenant, error) {
	t, err := uc.Repo.FindByTenantID(ctx, tenantID)
	if err != nil {
		return nil, translate(err, "tenant "+tenantID)
	}
	if err := fn(t); err != nil {
		return nil, translate(err, "tenant "+tenantID)
	}
	if err := uc.Repo.Update(ctx, t); err != nil {
		return nil, translate(err, "update tenant "+tenantID)
	}
	uc.Logger.Info("tenant updated", zap.String("tenant_id", tenantID), zap.String("status", string(t.Status)), zap.String("payment_status", string(t.PaymentStatus)))
	return t, nil
}
