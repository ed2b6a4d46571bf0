package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/homewiz/homewiz-backend/internal/entity"
)

type RoomRepository struct {
	DB *sql.DB
}

func NewRoomRepository(db *sql.DB) *RoomRepository {
	return &RoomRepository{DB: db}
}

const roomColumns = `id, room_id, room_number, building_id, floor_number, maximum_people_in_room, private_room_rent,
	bathroom_type, bed_size, bed_type, view, sq_footage, status`

// CreateMany inserts all rooms in one transaction.
func (r *RoomRepository) CreateMany(ctx context.Context, rooms []*entity.Room) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return mapError(err, "rooms", "begin")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO rooms (room_id, room_number, building_id, floor_number, maximum_people_in_room, private_room_rent,
			bathroom_type, bed_size, bed_type, view, sq_footage, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`)
	if err != nil {
		return mapError(err, "rooms", "prepare")
	}
	defer stmt.Close()

	for _, room := range rooms {
		err := stmt.QueryRowContext(ctx,
			room.RoomID,
			room.RoomNumber,
			room.BuildingID,
			room.FloorNumber,
			room.MaxOccupancy,
			room.Rent,
			nullString(room.BathroomType),
			nullString(room.BedSize),
			nullString(room.BedType),
			nullString(room.View),
			room.SqFootage,
			string(room.Status),
		).Scan(&room.ID)
		if err != nil {
			return mapError(err, "room", room.RoomID)
		}
	}

	if err := tx.Commit(); err != nil {
		return mapError(err, "rooms", "commit")
	}
	return nil
}

func (r *RoomRepository) FindByRoomID(ctx context.Context, roomID string) (*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE room_id = $1`
	room, err := scanRoom(r.DB.QueryRowContext(ctx, query, roomID))
	if err != nil {
		return nil, mapError(err, "room", roomID)
	}
	return room, nil
}

func (r *RoomRepository) List(ctx context.Context, buildingID string) ([]*entity.Room, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if buildingID == "" {
		rows, err = r.DB.QueryContext(ctx, `SELECT `+roomColumns+` FROM rooms ORDER BY id`)
	} else {
		rows, err = r.DB.QueryContext(ctx, `SELECT `+roomColumns+` FROM rooms WHERE building_id = $1 ORDER BY id`, buildingID)
	}
	if err != nil {
		return nil, mapError(err, "rooms", "list")
	}
	defer rows.Close()

	var out []*entity.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, mapError(err, "rooms", "scan")
		}
		out = append(out, room)
	}
	return out, mapError(rows.Err(), "rooms", "list")
}

func (r *RoomRepository) CountByBuilding(ctx context.Context, buildingID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms WHERE building_id = $1`, buildingID).Scan(&n)
	if err != nil {
		return 0, mapError(err, "rooms", buildingID)
	}
	return n, nil
}

// UpdateStatus only writes when the stored status still equals from.
func (r *RoomRepository) UpdateStatus(ctx context.Context, roomID string, from, to entity.RoomStatus) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE rooms SET status = $1 WHERE room_id = $2 AND status = $3`,
		string(to), roomID, string(from))
	if err != nil {
		return mapError(err, "room", roomID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(err, "room", roomID)
	}
	if n == 1 {
		return nil
	}

	var current string
	err = r.DB.QueryRowContext(ctx, `SELECT status FROM rooms WHERE room_id = $1`, roomID).Scan(&current)
	if err != nil {
		return mapError(err, "room", roomID)
	}
	return fmt.Errorf("room %s is %s, expected %s: %w", roomID, current, from, entity.ErrConflict)
}

func scanRoom(row rowScanner) (*entity.Room, error) {
	var (
		room                         entity.Room
		bath, bedSize, bedType, view sql.NullString
		status                       string
	)
	err := row.Scan(&room.ID, &room.RoomID, &room.RoomNumber, &room.BuildingID, &room.FloorNumber,
		&room.MaxOccupancy, &room.Rent, &bath, &bedSize, &bedType, &view, &room.SqFootage, &status)
	if err != nil {
		return nil, err
	}
	room.BathroomType = bath.String
	room.BedSize = bedSize.String
	room.BedType = bedType.String
	room.View = view.String
	room.Status = entity.RoomStatus(status)
	return &room, nil
}
