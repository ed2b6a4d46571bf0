package entity_test

import (
	"errors"
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homewiz/homewiz-backend/internal/entity"
)

func newGenerator() *entity.RoomGenerator {
	return entity.NewRoomGenerator(entity.DefaultPricing(), rand.New(rand.NewSource(42)))
}

func TestGenerateRooms_MarketStreetDropsRemainder(t *testing.T) {
	b := &entity.Building{BuildingID: "BLD_MARKET", Area: "Downtown", Floors: 8, TotalRooms: 20}

	result, err := newGenerator().Generate(b)

	require.NoError(t, err)
	assert.Equal(t, 2, result.RoomsPerFloor)
	assert.Equal(t, 4, result.Dropped)
	assert.Len(t, result.Rooms, 16)
	assert.Equal(t, "BLD_MARKET_R101", result.Rooms[0].RoomID)
	assert.Equal(t, "101", result.Rooms[0].RoomNumber)
	assert.Equal(t, "BLD_MARKET_R802", result.Rooms[15].RoomID)
}

func TestGenerateRooms_CountAndUniqueIDs(t *testing.T) {
	idPattern := regexp.MustCompile(`^BLD_X_R\d+\d{2}$`)
	cases := []struct{ floors, total int }{
		{1, 1}, {1, 12}, {3, 10}, {5, 15}, {6, 15}, {12, 99}, {4, 3},
	}
	for _, tc := range cases {
		b := &entity.Building{BuildingID: "BLD_X", Area: "SoMA", Floors: tc.floors, TotalRooms: tc.total}
		result, err := newGenerator().Generate(b)
		require.NoError(t, err)

		assert.Len(t, result.Rooms, tc.floors*(tc.total/tc.floors))
		seen := map[string]bool{}
		for _, r := range result.Rooms {
			assert.Regexp(t, idPattern, r.RoomID)
			assert.False(t, seen[r.RoomID], "duplicate room id %s", r.RoomID)
			seen[r.RoomID] = true
			assert.Equal(t, entity.RoomStatusAvailable, r.Status)
			assert.Equal(t, "BLD_X", r.BuildingID)
		}
	}
}

func TestGenerateRooms_RentFormula(t *testing.T) {
	b := &entity.Building{BuildingID: "BLD_SOMA", Area: "SoMA", Floors: 6, TotalRooms: 15}

	result, err := newGenerator().Generate(b)
	require.NoError(t, err)

	for _, r := range result.Rooms {
		want := 1900 * 1.2 * (1 + float64(r.FloorNumber-1)*0.05)
		assert.InDelta(t, want, r.Rent, 1e-9, r.RoomID)
	}
	assert.InDelta(t, 2280.0, result.Rooms[0].Rent, 1e-9)
}

func TestGenerateRooms_RentNonDecreasingByFloor(t *testing.T) {
	b := &entity.Building{BuildingID: "BLD_MISSION", Area: "Mission", Floors: 5, TotalRooms: 15}

	result, err := newGenerator().Generate(b)
	require.NoError(t, err)

	for i := 1; i < len(result.Rooms); i++ {
		prev, cur := result.Rooms[i-1], result.Rooms[i]
		assert.GreaterOrEqual(t, cur.Rent, prev.Rent)
		if cur.FloorNumber > prev.FloorNumber {
			assert.Greater(t, cur.Rent, prev.Rent)
		}
	}
}

func TestGenerateRooms_CosmeticAttributesInRange(t *testing.T) {
	b := &entity.Building{BuildingID: "BLD_A", Area: "Downtown", Floors: 4, TotalRooms: 40}

	result, err := newGenerator().Generate(b)
	require.NoError(t, err)

	for _, r := range result.Rooms {
		assert.Contains(t, []int{1, 2}, r.MaxOccupancy)
		assert.Contains(t, []string{"Private", "En-Suite", "Shared"}, r.BathroomType)
		assert.Contains(t, []string{"Twin", "Full", "Queen"}, r.BedSize)
		assert.Contains(t, []string{"Single", "Platform"}, r.BedType)
		assert.Contains(t, []string{"Street", "City", "Bay", "Garden"}, r.View)
		assert.GreaterOrEqual(t, r.SqFootage, 200)
		assert.LessOrEqual(t, r.SqFootage, 400)
	}
}

func TestGenerateRooms_ConfigurationErrors(t *testing.T) {
	cases := map[string]*entity.Building{
		"zero floors":     {BuildingID: "B", Area: "Downtown", Floors: 0, TotalRooms: 10},
		"negative floors": {BuildingID: "B", Area: "Downtown", Floors: -1, TotalRooms: 10},
		"negative rooms":  {BuildingID: "B", Area: "Downtown", Floors: 2, TotalRooms: -4},
		"unknown area":    {BuildingID: "B", Area: "Sunset", Floors: 2, TotalRooms: 4},
	}
	for name, b := range cases {
		t.Run(name, func(t *testing.T) {
			result, err := newGenerator().Generate(b)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, entity.ErrConfiguration), err)
		})
	}
}

func TestFloorPremium(t *testing.T) {
	assert.Equal(t, 1.0, entity.FloorPremium(1))
	assert.InDelta(t, 1.05, entity.FloorPremium(2), 1e-12)
	assert.InDelta(t, 1.35, entity.FloorPremium(8), 1e-12)
}
