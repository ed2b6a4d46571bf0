package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/homewiz/homewiz-backend/internal/entity"
)

type LeadUseCase struct {
	Repo   entity.LeadRepository
	Rooms  entity.RoomRepository
	IDs    entity.Sequencer
	Logger *zap.Logger
}

func NewLeadUseCase(repo entity.LeadRepository, rooms entity.RoomRepository, ids entity.Sequencer, logger *zap.Logger) *LeadUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadUseCase{Repo: repo, Rooms: rooms, IDs: ids, Logger: logger}
}

// Create returns the stored lead untouched when the email is already known.
// New interest data sent with a duplicate email is not merged.
func (uc *LeadUseCase) Create(ctx context.Context, in CreateLeadInput) (*CreateLeadOutput, error) {
	if err := ValidateCreateLeadInput(in); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(in.Email)
	existing, err := uc.Repo.FindByEmail(ctx, email)
	if err == nil {
		uc.Logger.Info("lead already exists", zap.String("lead_id", existing.LeadID))
		return &CreateLeadOutput{Lead: existing, Existing: true}, nil
	}
	if !errors.Is(err, entity.ErrNotFound) {
		return nil, translate(err, "lookup lead")
	}

	n, err := uc.IDs.Next(ctx, entity.SequenceLeads)
	if err != nil {
		return nil, translate(err, "allocate lead id")
	}

	lead, err := entity.NewLead(entity.FormatLeadID(n), email, entity.LeadStatus(in.Status), in.RoomsInterested, in.VisaStatus)
	if err != nil {
		return nil, validationError(err.Error())
	}
	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, translate(err, "create lead "+lead.LeadID)
	}

	uc.Logger.Info("lead created", zap.String("lead_id", lead.LeadID), zap.String("status", string(lead.Status)))
	return &CreateLeadOutput{Lead: lead}, nil
}

func (uc *LeadUseCase) Get(ctx context.Context, leadID string) (*entity.Lead, error) {
	lead, err := uc.Repo.FindByLeadID(ctx, leadID)
	if err != nil {
		return nil, translate(err, "lead "+leadID)
	}
	return lead, nil
}

func (uc *LeadUseCase) List(ctx context.Context) ([]*entity.Lead, error) {
	leads, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, translate(err, "list leads")
	}
	return leads, nil
}

func (uc *LeadUseCase) RecordInterest(ctx context.Context, leadID string, in RecordInterestInput) (*entity.Lead, error) {
	if len(in.RoomIDs) == 0 {
		return nil, validationError("validation failed: room_ids (is required)")
	}
	return uc.mutate(ctx, leadID, func(lead *entity.Lead) error {
		lead.AddInterest(in.RoomIDs...)
		lead.InteractionCount++
		return nil
	})
}

func (uc *LeadUseCase) ScheduleShowing(ctx context.Context, leadID string, in ScheduleShowingInput) (*entity.Lead, error) {
	if in.At.IsZero() {
		return nil, validationError("validation failed: at (is required)")
	}
	return uc.mutate(ctx, leadID, func(lead *entity.Lead) error {
		if lead.Status == entity.LeadStatusExploring {
			if err := lead.Transition(entity.LeadStatusShowingScheduled); err != nil {
				return err
			}
		}
		lead.ShowingDates = append(lead.ShowingDates, in.At.UTC().Truncate(time.Second))
		lead.InteractionCount++
		return nil
	})
}

func (uc *LeadUseCase) SelectRoom(ctx context.Context, leadID string, in SelectRoomInput) (*entity.Lead, error) {
	if in.RoomID == "" {
		return nil, validationError("validation failed: room_id (is required)")
	}
	if _, err := uc.Rooms.FindByRoomID(ctx, in.RoomID); err != nil {
		return nil, translate(err, "room "+in.RoomID)
	}
	return uc.mutate(ctx, leadID, func(lead *entity.Lead) error {
		lead.SelectedRoomID = in.RoomID
		lead.AddInterest(in.RoomID)
		return nil
	})
}

func (uc *LeadUseCase) MarkLost(ctx context.Context, leadID string) (*entity.Lead, error) {
	return uc.mutate(ctx, leadID, func(lead *entity.Lead) error {
		return lead.Transition(entity.LeadStatusLost)
	})
}

// mutate loads an open lead, applies fn and stores the result.
func (uc *LeadUseCase) mutate(ctx context.Context, leadID string, fn func(*entity.Lead) error) (*entity.Lead, error) {
	lead, err := uc.Repo.FindByLeadID(ctx, leadID)
	if err != nil {
		return nil, translate(err, "lead "+leadID)
	}
	if err := lead.EnsureOpen(); err != nil {
		return nil, translate(err, "lead "+leadID)
	}
	if err := fn(lead); err != nil {
		return nil, translate(err, "lead "+leadID)
	}
	if err := uc.Repo.Update(ctx, lead); err != nil {
		return nil, translate(err, "update lead "+leadID)
	}
	return lead, nil
}
