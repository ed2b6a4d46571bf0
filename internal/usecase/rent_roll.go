package usecase

import (
	"context"

	"github.com/homewiz/homewiz-backend/internal/entity"
)

// RentRollRow is one room with the active tenant on it, if any. When several
// active tenants reference the same room the first one stored is shown and
// the rest are counted in ExtraTenants.
type RentRollRow struct {
	Room         *entity.Room
	Tenant       *entity.Tenant
	ExtraTenants int
}

type BuildingSummary struct {
	BuildingID    string
	BuildingName  string
	Rooms         int
	Occupied      int
	PotentialRent float64
	OccupiedRent  float64
}

func (s BuildingSummary) OccupancyRate() float64 {
	if s.Rooms == 0 {
		return 0
	}
	return float64(s.Occupied) / float64(s.Rooms)
}

type RentRoll struct {
	Rows      []RentRollRow
	Summaries []BuildingSummary
}

type RentRollUseCase struct {
	Buildings entity.BuildingRepository
	Rooms     entity.RoomRepository
	Tenants   entity.TenantRepository
}

func NewRentRollUseCase(buildings entity.BuildingRepository, rooms entity.RoomRepository, tenants entity.TenantRepository) *RentRollUseCase {
	return &RentRollUseCase{Buildings: buildings, Rooms: rooms, Tenants: tenants}
}

func (uc *RentRollUseCase) Execute(ctx context.Context) (*RentRoll, error) {
	buildings, err := uc.Buildings.List(ctx)
	if err != nil {
		return nil, translate(err, "list buildings")
	}
	rooms, err := uc.Rooms.List(ctx, "")
	if err != nil {
		return nil, translate(err, "list rooms")
	}
	tenants, err := uc.Tenants.List(ctx)
	if err != nil {
		return nil, translate(err, "list tenants")
	}

	active := make(map[string][]*entity.Tenant)
	for _, t := range tenants {
		if t.Status == entity.TenantStatusActive {
			active[t.RoomID] = append(active[t.RoomID], t)
		}
	}

	summaries := make([]BuildingSummary, 0, len(buildings))
	index := make(map[string]int, len(buildings))
	for _, b := range buildings {
		index[b.BuildingID] = len(summaries)
		summaries = append(summaries, BuildingSummary{BuildingID: b.BuildingID, BuildingName: b.Name})
	}

	rr := &RentRoll{Rows: make([]RentRollRow, 0, len(rooms))}
	for _, room := range rooms {
		row := RentRollRow{Room: room}
		if list := active[room.RoomID]; len(list) > 0 {
			row.Tenant = list[0]
			row.ExtraTenants = len(list) - 1
		}
		rr.Rows = append(rr.Rows, row)

		i, ok := index[room.BuildingID]
		if !ok {
			continue
		}
		s := &summaries[i]
		s.Rooms++
		s.PotentialRent += room.Rent
		if room.Status == entity.RoomStatusOccupied {
			s.Occupied++
			s.OccupiedRent += room.Rent
		}
	}
	rr.Summaries = summaries
	return rr, nil
}
