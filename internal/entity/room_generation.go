package entity

import (
	"fmt"
	"math/rand"
)

// AreaPricing is the rent basis for one area.
type AreaPricing struct {
	BaseRent float64
	Premium  float64
}

// PricingTable maps an area name to its pricing.
type PricingTable map[string]AreaPricing

func DefaultPricing() PricingTable {
	return PricingTable{
		"Downtown": {BaseRent: 2200, Premium: 1.3},
		"SoMA":     {BaseRent: 1900, Premium: 1.2},
		"Mission":  {BaseRent: 1700, Premium: 1.1},
	}
}

var (
	occupancyOptions = []int{1, 2}
	bathroomOptions  = []string{"Private", "En-Suite", "Shared"}
	bedSizeOptions   = []string{"Twin", "Full", "Queen"}
	bedTypeOptions   = []string{"Single", "Platform"}
	viewOptions      = []string{"Street", "City", "Bay", "Garden"}
)

const (
	minSqFootage = 200
	maxSqFootage = 400
)

// FloorPremium adds 5% per floor above the first.
func FloorPremium(floor int) float64 {
	// the explicit conversion keeps the product rounded on FMA-capable targets
	return 1 + float64(float64(floor-1)*0.05)
}

// Rent is base * area premium * floor premium, multiplied in that order.
func (p AreaPricing) Rent(floor int) float64 {
	return p.BaseRent * p.Premium * FloorPremium(floor)
}

// GenerationResult carries the generated rooms and how many of the building's
// advertised rooms did not fit the per-floor layout.
type GenerationResult struct {
	Rooms         []*Room
	RoomsPerFloor int
	Dropped       int
}

// RoomGenerator lays out a building's rooms floor by floor.
type RoomGenerator struct {
	Pricing PricingTable
	Rand    *rand.Rand
}

func NewRoomGenerator(pricing PricingTable, rng *rand.Rand) *RoomGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &RoomGenerator{Pricing: pricing, Rand: rng}
}

// Generate builds total_rooms/floors rooms on every floor. The remainder of
// that division is not generated and is reported in Dropped.
func (g *RoomGenerator) Generate(b *Building) (*GenerationResult, error) {
	if b.Floors <= 0 {
		return nil, fmt.Errorf("%w: building %s has %d floors", ErrConfiguration, b.BuildingID, b.Floors)
	}
	if b.TotalRooms < 0 {
		return nil, fmt.Errorf("%w: building %s has %d total rooms", ErrConfiguration, b.BuildingID, b.TotalRooms)
	}
	pricing, ok := g.Pricing[b.Area]
	if !ok {
		return nil, fmt.Errorf("%w: no pricing for area %q of building %s", ErrConfiguration, b.Area, b.BuildingID)
	}

	perFloor := b.TotalRooms / b.Floors
	result := &GenerationResult{
		Rooms:         make([]*Room, 0, perFloor*b.Floors),
		RoomsPerFloor: perFloor,
		Dropped:       b.TotalRooms - perFloor*b.Floors,
	}

	for floor := 1; floor <= b.Floors; floor++ {
		for idx := 1; idx <= perFloor; idx++ {
			number := RoomNumber(floor, idx)
			result.Rooms = append(result.Rooms, &Room{
				RoomID:       RoomID(b.BuildingID, number),
				RoomNumber:   number,
				BuildingID:   b.BuildingID,
				FloorNumber:  floor,
				MaxOccupancy: occupancyOptions[g.Rand.Intn(len(occupancyOptions))],
				Rent:         pricing.Rent(floor),
				BathroomType: bathroomOptions[g.Rand.Intn(len(bathroomOptions))],
				BedSize:      bedSizeOptions[g.Rand.Intn(len(bedSizeOptions))],
				BedType:      bedTypeOptions[g.Rand.Intn(len(bedTypeOptions))],
				View:         viewOptions[g.Rand.Intn(len(viewOptions))],
				SqFootage:    minSqFootage + g.Rand.Intn(maxSqFootage-minSqFootage+1),
				Status:       RoomStatusAvailable,
			})
		}
	}
	return result, nil
}
