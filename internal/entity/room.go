package entity

import "fmt"

// Room is a leasable unit inside a building.
type Room struct {
	ID           int64      `json:"id"`
	RoomID       string     `json:"room_id"`
	RoomNumber   string     `json:"room_number"`
	BuildingID   string     `json:"building_id"`
	FloorNumber  int        `json:"floor_number"`
	MaxOccupancy int        `json:"maximum_people_in_room"`
	Rent         float64    `json:"private_room_rent"`
	BathroomType string     `json:"bathroom_type,omitempty"`
	BedSize      string     `json:"bed_size,omitempty"`
	BedType      string     `json:"bed_type,omitempty"`
	View         string     `json:"view,omitempty"`
	SqFootage    int        `json:"sq_footage"`
	Status       RoomStatus `json:"status"`
}

// RoomNumber joins the floor with the two-digit position on that floor: floor 3, index 7 -> "307".
func RoomNumber(floor, index int) string {
	return fmt.Sprintf("%d%02d", floor, index)
}

// RoomID embeds the building id so room ids are unique across buildings.
func RoomID(buildingID, roomNumber string) string {
	return fmt.Sprintf("%s_R%s", buildingID, roomNumber)
}

// Transition returns a TransitionError when the room cannot move to next.
func (r *Room) Transition(next RoomStatus) error {
	if !r.Status.CanTransitionTo(next) {
		return &TransitionError{Entity: "room", Key: r.RoomID, From: string(r.Status), To: string(next)}
	}
	r.Status = next
	return nil
}
