package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/homewiz/homewiz-backend/internal/entity"
)

// ConvertLeadUseCase turns a lead into a tenant and occupies the chosen room.
// The three writes run as a compensated transaction: a failure after the
// tenant is stored deletes it again, and a failure after the room flip
// releases the room.
type ConvertLeadUseCase struct {
	Leads     entity.LeadRepository
	Rooms     entity.RoomRepository
	Tenants   entity.TenantRepository
	Operators entity.OperatorRepository
	IDs       entity.Sequencer
	Logger    *zap.Logger
}

func NewConvertLeadUseCase(
	leads entity.LeadRepository,
	rooms entity.RoomRepository,
	tenants entity.TenantRepository,
	operators entity.OperatorRepository,
	ids entity.Sequencer,
	logger *zap.Logger,
) *ConvertLeadUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConvertLeadUseCase{
		Leads:     leads,
		Rooms:     rooms,
		Tenants:   tenants,
		Operators: operators,
		IDs:       ids,
		Logger:    logger,
	}
}

func (uc *ConvertLeadUseCase) Execute(ctx context.Context, in ConvertLeadInput) (*ConvertLeadOutput, error) {
	if err := ValidateConvertLeadInput(in); err != nil {
		return nil, err
	}

	conversionID := uuid.NewString()
	log := uc.Logger.With(zap.String("conversion_id", conversionID), zap.String("lead_id", in.LeadID))

	lead, err := uc.Leads.FindByLeadID(ctx, in.LeadID)
	if err != nil {
		return nil, translate(err, "lead "+in.LeadID)
	}
	if err := lead.EnsureOpen(); err != nil {
		return nil, translate(err, "lead "+in.LeadID)
	}

	roomID := strings.TrimSpace(in.RoomID)
	if roomID == "" {
		roomID = lead.SelectedRoomID
	}
	if roomID == "" {
		return nil, validationError("validation failed: room_id (is required when the lead has no selected room)")
	}

	room, err := uc.Rooms.FindByRoomID(ctx, roomID)
	if err != nil {
		return nil, translate(err, "room "+roomID)
	}
	if room.Status != entity.RoomStatusAvailable {
		return nil, &DomainError{
			Code:    CodeConflict,
			Message: fmt.Sprintf("room %s is %s", roomID, room.Status),
		}
	}

	if _, err := uc.Operators.FindByID(ctx, in.OperatorID); err != nil {
		return nil, translate(err, fmt.Sprintf("operator %d", in.OperatorID))
	}

	n, err := uc.IDs.Next(ctx, entity.SequenceTenants)
	if err != nil {
		return nil, translate(err, "allocate tenant id")
	}

	tenant := &entity.Tenant{
		TenantID:      entity.FormatTenantID(n),
		Name:          strings.TrimSpace(in.TenantName),
		RoomID:        room.RoomID,
		RoomNumber:    room.RoomNumber,
		LeaseStart:    in.LeaseStartDate,
		LeaseEnd:      in.LeaseEndDate,
		OperatorID:    in.OperatorID,
		BookingType:   in.BookingType,
		Nationality:   in.TenantNationality,
		Email:         lead.Email,
		Phone:         in.Phone,
		BuildingID:    room.BuildingID,
		Status:        entity.TenantStatusActive,
		DepositAmount: in.DepositAmount,
		PaymentStatus: entity.PaymentStatusCurrent,
	}
	if err := tenant.ValidateLease(); err != nil {
		return nil, validationError(err.Error())
	}

	txn := NewTransaction(log)

	txn.AddOperation("create_tenant", func(ctx context.Context) error {
		return uc.Tenants.Create(ctx, tenant)
	})
	txn.AddCompensation("delete_tenant", func(ctx context.Context) error {
		return uc.Tenants.Delete(ctx, tenant.TenantID)
	})

	txn.AddOperation("occupy_room", func(ctx context.Context) error {
		return uc.Rooms.UpdateStatus(ctx, room.RoomID, entity.RoomStatusAvailable, entity.RoomStatusOccupied)
	})
	txn.AddCompensation("release_room", func(ctx context.Context) error {
		return uc.Rooms.UpdateStatus(ctx, room.RoomID, entity.RoomStatusOccupied, entity.RoomStatusAvailable)
	})

	converted := *lead
	txn.AddOperation("convert_lead", func(ctx context.Context) error {
		if err := converted.Transition(entity.LeadStatusConverted); err != nil {
			return err
		}
		converted.SelectedRoomID = room.RoomID
		converted.AddInterest(room.RoomID)
		return uc.Leads.Update(ctx, &converted)
	})

	if err := txn.Execute(ctx); err != nil {
		log.Warn("lead conversion rolled back", zap.Error(err))
		return nil, translate(err, "convert lead")
	}
	room.Status = entity.RoomStatusOccupied

	if err := uc.Operators.TouchLastActive(ctx, in.OperatorID, entity.Today()); err != nil {
		log.Warn("failed to update operator last_active", zap.Int64("operator_id", in.OperatorID), zap.Error(err))
	}

	log.Info("lead converted", zap.String("tenant_id", tenant.TenantID), zap.String("room_id", room.RoomID))
	return &ConvertLeadOutput{
		ConversionID: conversionID,
		Tenant:       tenant,
		Room:         room,
		Lead:         &converted,
	}, nil
}
