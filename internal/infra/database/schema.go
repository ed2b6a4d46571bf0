package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var tableNames = []string{"operators", "buildings", "rooms", "leads", "tenants"}

const sequenceTable = "id_sequences"

// The models below only describe the schema for AutoMigrate. Reads and writes
// go through the database/sql repositories.

type OperatorModel struct {
	OperatorID   int64  `gorm:"column:operator_id;primaryKey;autoIncrement"`
	Name         string `gorm:"column:name;not null"`
	Email        string `gorm:"column:email;not null;uniqueIndex"`
	Phone        *string
	Role         *string
	OperatorType string    `gorm:"column:operator_type;not null;default:LEASING_AGENT"`
	Active       bool      `gorm:"column:active;not null;default:true"`
	DateJoined   time.Time `gorm:"column:date_joined;type:date"`
	LastActive   time.Time `gorm:"column:last_active;type:date"`
}

func (OperatorModel) TableName() string { return "operators" }

type BuildingModel struct {
	ID             int64  `gorm:"column:id;primaryKey;autoIncrement"`
	BuildingID     string `gorm:"column:building_id;not null;uniqueIndex"`
	BuildingName   string `gorm:"column:building_name;not null"`
	FullAddress    *string
	OperatorID     *int64 `gorm:"column:operator_id;index"`
	Street         *string
	Area           *string
	City           *string
	State          *string
	Zip            *string
	Floors         int  `gorm:"column:floors;not null;default:0"`
	TotalRooms     int  `gorm:"column:total_rooms;not null;default:0"`
	TotalBathrooms int  `gorm:"column:total_bathrooms;not null;default:0"`
	WifiIncluded   bool `gorm:"column:wifi_included;not null;default:true"`
	LaundryOnsite  bool `gorm:"column:laundry_onsite;not null;default:true"`
}

func (BuildingModel) TableName() string { return "buildings" }

type RoomModel struct {
	ID                  int64   `gorm:"column:id;primaryKey;autoIncrement"`
	RoomID              string  `gorm:"column:room_id;not null;uniqueIndex"`
	RoomNumber          string  `gorm:"column:room_number;not null"`
	BuildingID          string  `gorm:"column:building_id;not null;index"`
	FloorNumber         int     `gorm:"column:floor_number;not null"`
	MaximumPeopleInRoom int     `gorm:"column:maximum_people_in_room;not null;default:1"`
	PrivateRoomRent     float64 `gorm:"column:private_room_rent;not null"`
	BathroomType        *string
	BedSize             *string
	BedType             *string
	View                *string
	SqFootage           int    `gorm:"column:sq_footage;not null;default:0"`
	Status              string `gorm:"column:status;not null;default:AVAILABLE"`

	Building BuildingModel `gorm:"foreignKey:BuildingID;references:BuildingID;constraint:OnDelete:CASCADE"`
}

func (RoomModel) TableName() string { return "rooms" }

type LeadModel struct {
	ID               int64  `gorm:"column:id;primaryKey;autoIncrement"`
	LeadID           string `gorm:"column:lead_id;not null;uniqueIndex"`
	Email            string `gorm:"column:email;not null;index"`
	Status           string `gorm:"column:status;not null;default:EXPLORING"`
	InteractionCount int    `gorm:"column:interaction_count;not null;default:0"`
	RoomsInterested  string `gorm:"column:rooms_interested;type:text"`
	SelectedRoomID   *string
	ShowingDates     string `gorm:"column:showing_dates;type:text"`
	PlannedMoveIn    *string
	PlannedMoveOut   *string
	VisaStatus       *string
}

func (LeadModel) TableName() string { return "leads" }

type TenantModel struct {
	ID                int64  `gorm:"column:id;primaryKey;autoIncrement"`
	TenantID          string `gorm:"column:tenant_id;not null;uniqueIndex"`
	TenantName        string `gorm:"column:tenant_name;not null"`
	RoomID            string `gorm:"column:room_id;not null;index"`
	RoomNumber        *string
	LeaseStartDate    *time.Time `gorm:"column:lease_start_date;type:date"`
	LeaseEndDate      *time.Time `gorm:"column:lease_end_date;type:date"`
	OperatorID        *int64     `gorm:"column:operator_id"`
	BookingType       *string
	TenantNationality *string
	TenantEmail       *string
	Phone             *string
	BuildingID        *string
	Status            string  `gorm:"column:status;not null;default:ACTIVE"`
	DepositAmount     float64 `gorm:"column:deposit_amount;not null;default:0"`
	PaymentStatus     string  `gorm:"column:payment_status;not null;default:CURRENT"`
}

func (TenantModel) TableName() string { return "tenants" }

type SequenceModel struct {
	Name  string `gorm:"column:name;primaryKey"`
	Value int64  `gorm:"column:value;not null"`
}

func (SequenceModel) TableName() string { return sequenceTable }

func Models() []any {
	return []any{
		&OperatorModel{},
		&BuildingModel{},
		&RoomModel{},
		&LeadModel{},
		&TenantModel{},
		&SequenceModel{},
	}
}

// OpenGorm opens a gorm handle on PostgreSQL for schema work.
func OpenGorm(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	return db, nil
}

// Migrate creates or extends every table. It never drops columns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
