package database

import (
	"context"
	"database/sql"

	"github.com/homewiz/homewiz-backend/internal/entity"
)

type BuildingRepository struct {
	DB *sql.DB
}

func NewBuildingRepository(db *sql.DB) *BuildingRepository {
	return &BuildingRepository{DB: db}
}

const buildingColumns = `id, building_id, building_name, full_address, operator_id, street, area, city, state, zip,
	floors, total_rooms, total_bathrooms, wifi_included, laundry_onsite`

func (r *BuildingRepository) Create(ctx context.Context, b *entity.Building) error {
	query := `
		INSERT INTO buildings (building_id, building_name, full_address, operator_id, street, area, city, state, zip,
			floors, total_rooms, total_bathrooms, wifi_included, laundry_onsite)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		b.BuildingID,
		b.Name,
		nullString(b.FullAddress),
		b.OperatorID,
		nullString(b.Street),
		nullString(b.Area),
		nullString(b.City),
		nullString(b.State),
		nullString(b.Zip),
		b.Floors,
		b.TotalRooms,
		b.TotalBathrooms,
		b.WifiIncluded,
		b.LaundryOnsite,
	).Scan(&b.ID)
	return mapError(err, "building", b.BuildingID)
}

func (r *BuildingRepository) FindByBuildingID(ctx context.Context, buildingID string) (*entity.Building, error) {
	query := `SELECT ` + buildingColumns + ` FROM buildings WHERE building_id = $1`
	b, err := scanBuilding(r.DB.QueryRowContext(ctx, query, buildingID))
	if err != nil {
		return nil, mapError(err, "building", buildingID)
	}
	return b, nil
}

func (r *BuildingRepository) List(ctx context.Context) ([]*entity.Building, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+buildingColumns+` FROM buildings ORDER BY id`)
	if err != nil {
		return nil, mapError(err, "buildings", "list")
	}
	defer rows.Close()

	var out []*entity.Building
	for rows.Next() {
		b, err := scanBuilding(rows)
		if err != nil {
			return nil, mapError(err, "buildings", "scan")
		}
		out = append(out, b)
	}
	return out, mapError(rows.Err(), "buildings", "list")
}

func scanBuilding(row rowScanner) (*entity.Building, error) {
	var (
		b                                    entity.Building
		address, street, area, city, st, zip sql.NullString
		operatorID                           sql.NullInt64
	)
	err := row.Scan(&b.ID, &b.BuildingID, &b.Name, &address, &operatorID, &street, &area, &city, &st, &zip,
		&b.Floors, &b.TotalRooms, &b.TotalBathrooms, &b.WifiIncluded, &b.LaundryOnsite)
	if err != nil {
		return nil, err
	}
	b.FullAddress = address.String
	b.Street = street.String
	b.Area = area.String
	b.City = city.String
	b.State = st.String
	b.Zip = zip.String
	if operatorID.Valid {
		id := operatorID.Int64
		b.OperatorID = &id
	}
	return &b, nil
}
