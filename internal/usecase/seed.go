package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/homewiz/homewiz-backend/internal/entity"
)

type SeedOperator struct {
	Name  string
	Email string
	Phone string
	Role  string
	Type  entity.OperatorType
}

// SeedBuilding references its operator by position in SeedData.Operators.
type SeedBuilding struct {
	Building      entity.Building
	OperatorIndex int
}

// SeedLead references rooms by position in the list of available rooms.
type SeedLead struct {
	Email            string
	Status           entity.LeadStatus
	InteractionCount int
	RoomIndexes      []int
	SelectedIndex    int
	ShowingDates     []time.Time
	PlannedMoveIn    string
	PlannedMoveOut   string
	VisaStatus       string
}

type SeedData struct {
	Operators []SeedOperator
	Buildings []SeedBuilding
	Leads     []SeedLead
}

type SeedResult struct {
	Operators int `json:"operators"`
	Buildings int `json:"buildings"`
	Rooms     int `json:"rooms"`
	Leads     int `json:"leads"`
}

func DefaultSeedData() SeedData {
	building := func(id, name, address, street, area, zip string, floors, rooms, baths int) entity.Building {
		return entity.Building{
			BuildingID:     id,
			Name:           name,
			FullAddress:    address,
			Street:         street,
			Area:           area,
			City:           "San Francisco",
			State:          "CA",
			Zip:            zip,
			Floors:         floors,
			TotalRooms:     rooms,
			TotalBathrooms: baths,
			WifiIncluded:   true,
			LaundryOnsite:  true,
		}
	}
	return SeedData{
		Operators: []SeedOperator{
			{"John Manager", "john.manager@homewiz.com", "(415)555-0101", "Property Manager", entity.OperatorTypeBuildingManager},
			{"Sarah Admin", "sarah.admin@homewiz.com", "(415)555-0102", "Assistant Manager", entity.OperatorTypeAdmin},
			{"Mike Maintenance", "mike.maintenance@homewiz.com", "(415)555-0103", "Maintenance", entity.OperatorTypeMaintenance},
			{"Lisa Leasing", "lisa.leasing@homewiz.com", "(415)555-0104", "Leasing Agent", entity.OperatorTypeLeasingAgent},
			{"Tom Support", "tom.support@homewiz.com", "(415)555-0105", "Leasing Agent", entity.OperatorTypeLeasingAgent},
		},
		Buildings: []SeedBuilding{
			{building("BLD_MARKET", "Market Street Residences", "1000 Market St", "Market St", "Downtown", "94102", 8, 20, 16), 0},
			{building("BLD_SOMA", "SoMA Commons", "500 Harrison St", "Harrison St", "SoMA", "94105", 6, 15, 12), 1},
			{building("BLD_MISSION", "Mission Heights", "2500 Mission St", "Mission St", "Mission", "94110", 5, 15, 10), 2},
		},
		Leads: []SeedLead{
			{Email: "sarah.smith@email.com", Status: entity.LeadStatusExploring, InteractionCount: 2,
				RoomIndexes: []int{0}, SelectedIndex: -1, VisaStatus: "US-CITIZEN"},
			{Email: "john.doe@email.com", Status: entity.LeadStatusExploring, InteractionCount: 5,
				RoomIndexes: []int{0, 1, 2}, SelectedIndex: -1, VisaStatus: "F1-VISA"},
			{Email: "emily.wong@email.com", Status: entity.LeadStatusShowingScheduled, InteractionCount: 8,
				RoomIndexes: []int{1, 2}, SelectedIndex: 1,
				ShowingDates: []time.Time{
					time.Date(2024, 12, 20, 14, 0, 0, 0, time.UTC),
					time.Date(2024, 12, 21, 11, 0, 0, 0, time.UTC),
				},
				PlannedMoveIn: "2025-01-15", PlannedMoveOut: "2025-07-15", VisaStatus: "H1B-VISA"},
		},
	}
}

// Seeder loads demo data. Rows that already exist are skipped, so running it
// twice is harmless.
type Seeder struct {
	Operators entity.OperatorRepository
	Buildings entity.BuildingRepository
	Rooms     *RoomUseCase
	Leads     entity.LeadRepository
	IDs       entity.Sequencer
	Logger    *zap.Logger
}

func NewSeeder(
	operators entity.OperatorRepository,
	buildings entity.BuildingRepository,
	rooms *RoomUseCase,
	leads entity.LeadRepository,
	ids entity.Sequencer,
	logger *zap.Logger,
) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{Operators: operators, Buildings: buildings, Rooms: rooms, Leads: leads, IDs: ids, Logger: logger}
}

func (s *Seeder) Execute(ctx context.Context, data SeedData) (*SeedResult, error) {
	res := &SeedResult{}

	operatorIDs := make([]int64, len(data.Operators))
	joined := entity.NewDate(time.Now().AddDate(0, 0, -180))
	for i, so := range data.Operators {
		op, err := s.Operators.FindByEmail(ctx, so.Email)
		if errors.Is(err, entity.ErrNotFound) {
			op = &entity.Operator{
				Name: so.Name, Email: so.Email, Phone: so.Phone, Role: so.Role, Type: so.Type,
				Active: true, DateJoined: joined, LastActive: entity.Today(),
			}
			if err = s.Operators.Create(ctx, op); err == nil {
				res.Operators++
			}
		}
		if err != nil {
			return nil, translate(err, "seed operator "+so.Email)
		}
		operatorIDs[i] = op.ID
	}

	for _, sb := range data.Buildings {
		b := sb.Building
		if sb.OperatorIndex >= 0 && sb.OperatorIndex < len(operatorIDs) {
			id := operatorIDs[sb.OperatorIndex]
			b.OperatorID = &id
		}
		_, err := s.Buildings.FindByBuildingID(ctx, b.BuildingID)
		if errors.Is(err, entity.ErrNotFound) {
			if err = s.Buildings.Create(ctx, &b); err == nil {
				res.Buildings++
			}
		}
		if err != nil {
			return nil, translate(err, "seed building "+b.BuildingID)
		}

		out, err := s.Rooms.Generate(ctx, b.BuildingID)
		switch {
		case err == nil:
			res.Rooms += out.Generated
		case IsConflict(err):
		default:
			return nil, err
		}
	}

	available, err := s.availableRooms(ctx, 5)
	if err != nil {
		return nil, err
	}
	for _, sl := range data.Leads {
		if _, err := s.Leads.FindByEmail(ctx, sl.Email); err == nil {
			continue
		} else if !errors.Is(err, entity.ErrNotFound) {
			return nil, translate(err, "seed lead "+sl.Email)
		}

		n, err := s.IDs.Next(ctx, entity.SequenceLeads)
		if err != nil {
			return nil, translate(err, "allocate lead id")
		}
		lead := &entity.Lead{
			LeadID:           entity.FormatLeadID(n),
			Email:            sl.Email,
			Status:           sl.Status,
			InteractionCount: sl.InteractionCount,
			RoomsInterested:  []string{},
			ShowingDates:     append([]time.Time{}, sl.ShowingDates...),
			PlannedMoveIn:    sl.PlannedMoveIn,
			PlannedMoveOut:   sl.PlannedMoveOut,
			VisaStatus:       sl.VisaStatus,
		}
		for _, idx := range sl.RoomIndexes {
			if idx < len(available) {
				lead.AddInterest(available[idx])
			}
		}
		if sl.SelectedIndex >= 0 && sl.SelectedIndex < len(available) {
			lead.SelectedRoomID = available[sl.SelectedIndex]
		}
		if err := s.Leads.Create(ctx, lead); err != nil {
			return nil, translate(err, "seed lead "+lead.LeadID)
		}
		res.Leads++
	}

	s.Logger.Info("seed completed",
		zap.Int("operators", res.Operators),
		zap.Int("buildings", res.Buildings),
		zap.Int("rooms", res.Rooms),
		zap.Int("leads", res.Leads))
	return res, nil
}

func (s *Seeder) availableRooms(ctx context.Context, limit int) ([]string, error) {
	rooms, err := s.Rooms.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	ids := make([]string, 0, limit)
	for _, r := range rooms {
		if r.Status != entity.RoomStatusAvailable {
			continue
		}
		ids = append(ids, r.RoomID)
		if len(ids) == limit {
			break
		}
	}
	return ids, nil
}
