package usecase

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/homewiz/homewiz-backend/internal/entity"
)

type RoomUseCase struct {
	Repo      entity.RoomRepository
	Buildings entity.BuildingRepository
	Logger    *zap.Logger

	mu        sync.Mutex // guards generator; its random source is not safe for concurrent use
	generator *entity.RoomGenerator
}

func NewRoomUseCase(repo entity.RoomRepository, buildings entity.BuildingRepository, generator *entity.RoomGenerator, logger *zap.Logger) *RoomUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if generator == nil {
		generator = entity.NewRoomGenerator(entity.DefaultPricing(), nil)
	}
	return &RoomUseCase{Repo: repo, Buildings: buildings, Logger: logger, generator: generator}
}

// Generate lays out and stores the rooms of a building that has none yet.
func (uc *RoomUseCase) Generate(ctx context.Context, buildingID string) (*GenerateRoomsOutput, error) {
	b, err := uc.Buildings.FindByBuildingID(ctx, buildingID)
	if err != nil {
		return nil, translate(err, "building "+buildingID)
	}

	existing, err := uc.Repo.CountByBuilding(ctx, buildingID)
	if err != nil {
		return nil, translate(err, "count rooms")
	}
	if existing > 0 {
		return nil, &DomainError{
			Code:    CodeConflict,
			Message: fmt.Sprintf("building %s already has %d rooms", buildingID, existing),
		}
	}

	uc.mu.Lock()
	result, err := uc.generator.Generate(b)
	uc.mu.Unlock()
	if err != nil {
		return nil, translate(err, "generate rooms")
	}

	if result.Dropped > 0 {
		uc.Logger.Warn("rooms not generated: total_rooms is not a multiple of floors",
			zap.String("building_id", buildingID),
			zap.Int("total_rooms", b.TotalRooms),
			zap.Int("floors", b.Floors),
			zap.Int("dropped", result.Dropped))
	}

	if err := uc.Repo.CreateMany(ctx, result.Rooms); err != nil {
		return nil, translate(err, "store generated rooms")
	}

	uc.Logger.Info("rooms generated", zap.String("building_id", buildingID), zap.Int("rooms", len(result.Rooms)))
	return &GenerateRoomsOutput{
		BuildingID:    buildingID,
		RoomsPerFloor: result.RoomsPerFloor,
		Generated:     len(result.Rooms),
		Dropped:       result.Dropped,
		Rooms:         result.Rooms,
	}, nil
}

func (uc *RoomUseCase) Get(ctx context.Context, roomID string) (*entity.Room, error) {
	room, err := uc.Repo.FindByRoomID(ctx, roomID)
	if err != nil {
		return nil, translate(err, "room "+roomID)
	}
	return room, nil
}

func (uc *RoomUseCase) List(ctx context.Context, buildingID string) ([]*entity.Room, error) {
	rooms, err := uc.Repo.List(ctx, buildingID)
	if err != nil {
		return nil, translate(err, "list rooms")
	}
	return rooms, nil
}

// Occupy flips a room to OCCUPIED. It is independent of tenant creation.
func (uc *RoomUseCase) Occupy(ctx context.Context, roomID string) (*entity.Room, error) {
	return uc.transition(ctx, roomID, entity.RoomStatusOccupied)
}

func (uc *RoomUseCase) Release(ctx context.Context, roomID string) (*entity.Room, error) {
	return uc.transition(ctx, roomID, entity.RoomStatusAvailable)
}

func (uc *RoomUseCase) transition(ctx context.Context, roomID string, to entity.RoomStatus) (*entity.Room, error) {
	room, err := uc.Repo.FindByRoomID(ctx, roomID)
	if err != nil {
		return nil, translate(err, "room "+roomID)
	}
	from := room.Status
	if err := room.Transition(to); err != nil {
		return nil, translate(err, "room status")
	}
	if err := uc.Repo.UpdateStatus(ctx, roomID, from, to); err != nil {
		return nil, translate(err, "room status")
	}
	uc.Logger.Info("room status changed", zap.String("room_id", roomID), zap.String("from", string(from)), zap.String("to", string(to)))
	return room, nil
}
