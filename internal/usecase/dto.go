package usecase

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/homewiz/homewiz-backend/internal/entity"
)

type CreateOperatorInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
	OperatorType string `json:"operator_type"`
	Active       *bool  `json:"active"`
}

type CreateBuildingInput struct {
	BuildingID     string `json:"building_id"`
	BuildingName   string `json:"building_name"`
	FullAddress    string `json:"full_address"`
	OperatorID     *int64 `json:"operator_id"`
	Street         string `json:"street"`
	Area           string `json:"area"`
	City           string `json:"city"`
	State          string `json:"state"`
	Zip            string `json:"zip"`
	Floors         *int   `json:"floors"`
	TotalRooms     *int   `json:"total_rooms"`
	TotalBathrooms *int   `json:"total_bathrooms"`
	WifiIncluded   *bool  `json:"wifi_included"`
	LaundryOnsite  *bool  `json:"laundry_onsite"`
}

// BuildingOutput adds the number of rooms actually stored, which may differ
// from the advertised total_rooms.
type BuildingOutput struct {
	*entity.Building
	RoomCount int `json:"room_count"`
}

type GenerateRoomsOutput struct {
	BuildingID    string         `json:"building_id"`
	RoomsPerFloor int            `json:"rooms_per_floor"`
	Generated     int            `json:"generated"`
	Dropped       int            `json:"dropped"`
	Rooms         []*entity.Room `json:"rooms"`
}

type CreateLeadInput struct {
	Email           string   `json:"email"`
	Status          string   `json:"status"`
	RoomsInterested RoomList `json:"rooms_interested"`
	VisaStatus      string   `json:"visa_status"`
}

// RoomList accepts a JSON array of room ids, or a string holding either a
// JSON array or a comma separated list.
type RoomList []string

func (l *RoomList) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*l = list
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("rooms_interested must be a list of room ids")
	}
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		if err := json.Unmarshal([]byte(s), &list); err != nil {
			return fmt.Errorf("rooms_interested: %w", err)
		}
		*l = list
		return nil
	}
	list = nil
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			list = append(list, id)
		}
	}
	*l = list
	return nil
}

// CreateLeadOutput reports Existing when the email was already known and the
// stored lead was returned untouched.
type CreateLeadOutput struct {
	Lead     *entity.Lead
	Existing bool
}

type RecordInterestInput struct {
	RoomIDs []string `json:"room_ids"`
}

type ScheduleShowingInput struct {
	At time.Time `json:"at"`
}

type SelectRoomInput struct {
	RoomID string `json:"room_id"`
}

type CreateTenantInput struct {
	TenantName        string      `json:"tenant_name"`
	RoomID            string      `json:"room_id"`
	RoomNumber        string      `json:"room_number"`
	LeaseStartDate    entity.Date `json:"lease_start_date"`
	LeaseEndDate      entity.Date `json:"lease_end_date"`
	OperatorID        int64       `json:"operator_id"`
	BookingType       string      `json:"booking_type"`
	TenantNationality string      `json:"tenant_nationality"`
	TenantEmail       string      `json:"tenant_email"`
	Phone             string      `json:"phone"`
	BuildingID        string      `json:"building_id"`
	DepositAmount     float64     `json:"deposit_amount"`
}

type UpdatePaymentStatusInput struct {
	PaymentStatus string `json:"payment_status"`
}

// ConvertLeadInput carries the lease terms. RoomID falls back to the lead's
// selected room; email, room number and building come from the lead and room.
type ConvertLeadInput struct {
	LeadID            string      `json:"-"`
	TenantName        string      `json:"tenant_name"`
	RoomID            string      `json:"room_id"`
	LeaseStartDate    entity.Date `json:"lease_start_date"`
	LeaseEndDate      entity.Date `json:"lease_end_date"`
	OperatorID        int64       `json:"operator_id"`
	BookingType       string      `json:"booking_type"`
	TenantNationality string      `json:"tenant_nationality"`
	Phone             string      `json:"phone"`
	DepositAmount     float64     `json:"deposit_amount"`
}

type ConvertLeadOutput struct {
	ConversionID string         `json:"conversion_id"`
	Tenant       *entity.Tenant `json:"tenant"`
	Room         *entity.Room   `json:"room"`
	Lead         *entity.Lead   `json:"lead"`
}
