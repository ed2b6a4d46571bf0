package entity

import (
	"errors"
	"strings"
)

// Building is a physical property. TotalRooms is advisory; nothing keeps it in
// sync with the rooms actually stored for the building.
type Building struct {
	ID             int64  `json:"id"`
	BuildingID     string `json:"building_id"`
	Name           string `json:"building_name"`
	FullAddress    string `json:"full_address,omitempty"`
	OperatorID     *int64 `json:"operator_id,omitempty"`
	Street         string `json:"street,omitempty"`
	Area           string `json:"area,omitempty"`
	City           string `json:"city,omitempty"`
	State          string `json:"state,omitempty"`
	Zip            string `json:"zip,omitempty"`
	Floors         int    `json:"floors"`
	TotalRooms     int    `json:"total_rooms"`
	TotalBathrooms int    `json:"total_bathrooms"`
	WifiIncluded   bool   `json:"wifi_included"`
	LaundryOnsite  bool   `json:"laundry_onsite"`
}

func (b *Building) Validate() error {
	b.BuildingID = strings.TrimSpace(b.BuildingID)
	if b.BuildingID == "" {
		return errors.New("building_id is required")
	}
	if strings.TrimSpace(b.Name) == "" {
		return errors.New("building_name is required")
	}
	if b.Floors < 0 || b.TotalRooms < 0 || b.TotalBathrooms < 0 {
		return errors.New("floors and room/bathroom counts must not be negative")
	}
	return nil
}
