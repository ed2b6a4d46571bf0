package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/homewiz/homewiz-backend/internal/entity"
)

type BuildingUseCase struct {
	Repo      entity.BuildingRepository
	Operators entity.OperatorRepository
	Rooms     entity.RoomRepository
	Logger    *zap.Logger
}

func NewBuildingUseCase(repo entity.BuildingRepository, operators entity.OperatorRepository, rooms entity.RoomRepository, logger *zap.Logger) *BuildingUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BuildingUseCase{Repo: repo, Operators: operators, Rooms: rooms, Logger: logger}
}

func (uc *BuildingUseCase) Create(ctx context.Context, in CreateBuildingInput) (*entity.Building, error) {
	if err := ValidateCreateBuildingInput(in); err != nil {
		return nil, err
	}

	b := &entity.Building{
		BuildingID:     strings.TrimSpace(in.BuildingID),
		Name:           strings.TrimSpace(in.BuildingName),
		FullAddress:    in.FullAddress,
		OperatorID:     in.OperatorID,
		Street:         in.Street,
		Area:           in.Area,
		City:           in.City,
		State:          in.State,
		Zip:            in.Zip,
		Floors:         intOrZero(in.Floors),
		TotalRooms:     intOrZero(in.TotalRooms),
		TotalBathrooms: intOrZero(in.TotalBathrooms),
		WifiIncluded:   boolOr(in.WifiIncluded, true),
		LaundryOnsite:  boolOr(in.LaundryOnsite, true),
	}
	if err := b.Validate(); err != nil {
		return nil, validationError(err.Error())
	}

	if _, err := uc.Repo.FindByBuildingID(ctx, b.BuildingID); err == nil {
		return nil, &DomainError{Code: CodeConflict, Message: "Building with this ID already exists"}
	} else if !errors.Is(err, entity.ErrNotFound) {
		return nil, translate(err, "lookup building")
	}

	if b.OperatorID != nil {
		if _, err := uc.Operators.FindByID(ctx, *b.OperatorID); err != nil {
			return nil, translate(err, fmt.Sprintf("building operator %d", *b.OperatorID))
		}
	}

	if err := uc.Repo.Create(ctx, b); err != nil {
		return nil, translate(err, "create building")
	}
	uc.Logger.Info("building created", zap.String("building_id", b.BuildingID))
	return b, nil
}

func (uc *BuildingUseCase) Get(ctx context.Context, buildingID string) (*BuildingOutput, error) {
	b, err := uc.Repo.FindByBuildingID(ctx, buildingID)
	if err != nil {
		return nil, translate(err, "building "+buildingID)
	}
	count, err := uc.Rooms.CountByBuilding(ctx, buildingID)
	if err != nil {
		return nil, translate(err, "count rooms")
	}
	return &BuildingOutput{Building: b, RoomCount: count}, nil
}

func (uc *BuildingUseCase) List(ctx context.Context) ([]*entity.Building, error) {
	list, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, translate(err, "list buildings")
	}
	return list, nil
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
