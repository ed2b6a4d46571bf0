package entity

import "context"

type OperatorRepository interface {
	Create(ctx context.Context, op *Operator) error
	FindByID(ctx context.Context, id int64) (*Operator, error)
	FindByEmail(ctx context.Context, email string) (*Operator, error)
	List(ctx context.Context) ([]*Operator, error)
	TouchLastActive(ctx context.Context, id int64, day Date) error
}

type BuildingRepository interface {
	Create(ctx context.Context, b *Building) error
	FindByBuildingID(ctx context.Context, buildingID string) (*Building, error)
	List(ctx context.Context) ([]*Building, error)
}

type RoomRepository interface {
	// CreateMany stores every room or none of them.
	CreateMany(ctx context.Context, rooms []*Room) error
	FindByRoomID(ctx context.Context, roomID string) (*Room, error)
	// List returns all rooms, or the rooms of one building when buildingID is set.
	List(ctx context.Context, buildingID string) ([]*Room, error)
	CountByBuilding(ctx context.Context, buildingID string) (int, error)
	// UpdateStatus moves a room from one status to another. It returns
	// ErrConflict when the stored status is no longer from.
	UpdateStatus(ctx context.Context, roomID string, from, to RoomStatus) error
}

type LeadRepository interface {
	Counter
	Create(ctx context.Context, lead *Lead) error
	FindByLeadID(ctx context.Context, leadID string) (*Lead, error)
	FindByEmail(ctx context.Context, email string) (*Lead, error)
	List(ctx context.Context) ([]*Lead, error)
	Update(ctx context.Context, lead *Lead) error
}

type TenantRepository interface {
	Counter
	Create(ctx context.Context, t *Tenant) error
	FindByTenantID(ctx context.Context, tenantID string) (*Tenant, error)
	List(ctx context.Context) ([]*Tenant, error)
	Update(ctx context.Context, t *Tenant) error
	Delete(ctx context.Context, tenantID string) error
}

// TableStats reports row counts per table, keyed by table name.
type TableStats interface {
	TableCounts(ctx context.Context) (map[string]int64, error)
}

// Tables lists the entity tables in dependency order.
var Tables = []string{"operators", "buildings", "rooms", "leads", "tenants"}
