package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/homewiz/homewiz-backend/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, lead_id, email, status, interaction_count, rooms_interested, selected_room_id, showing_dates,
	planned_move_in, planned_move_out, visa_status`

func (r *LeadRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&n); err != nil {
		return 0, mapError(err, "leads", "count")
	}
	return n, nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	rooms, dates, err := encodeLeadLists(lead)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO leads (lead_id, email, status, interaction_count, rooms_interested, selected_room_id, showing_dates,
			planned_move_in, planned_move_out, visa_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err = r.DB.QueryRowContext(ctx, query,
		lead.LeadID,
		lead.Email,
		string(lead.Status),
		lead.InteractionCount,
		rooms,
		nullString(lead.SelectedRoomID),
		dates,
		nullString(lead.PlannedMoveIn),
		nullString(lead.PlannedMoveOut),
		nullString(lead.VisaStatus),
	).Scan(&lead.ID)
	return mapError(err, "lead", lead.LeadID)
}

func (r *LeadRepository) FindByLeadID(ctx context.Context, leadID string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE lead_id = $1`
	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, leadID))
	if err != nil {
		return nil, mapError(err, "lead", leadID)
	}
	return lead, nil
}

// FindByEmail returns the oldest lead with this email. Email is not unique.
func (r *LeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE LOWER(email) = LOWER($1) ORDER BY id LIMIT 1`
	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, mapError(err, "lead", email)
	}
	return lead, nil
}

func (r *LeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY id`)
	if err != nil {
		return nil, mapError(err, "leads", "list")
	}
	defer rows.Close()

	var out []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, mapError(err, "leads", "scan")
		}
		out = append(out, lead)
	}
	return out, mapError(rows.Err(), "leads", "list")
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	rooms, dates, err := encodeLeadLists(lead)
	if err != nil {
		return err
	}
	query := `
		UPDATE leads SET status = $1, interaction_count = $2, rooms_interested = $3, selected_room_id = $4,
			showing_dates = $5, planned_move_in = $6, planned_move_out = $7, visa_status = $8
		WHERE lead_id = $9
	`
	res, err := r.DB.ExecContext(ctx, query,
		string(lead.Status),
		lead.InteractionCount,
		rooms,
		nullString(lead.SelectedRoomID),
		dates,
		nullString(lead.PlannedMoveIn),
		nullString(lead.PlannedMoveOut),
		nullString(lead.VisaStatus),
		lead.LeadID,
	)
	if err != nil {
		return mapError(err, "lead", lead.LeadID)
	}
	return expectOneRow(res, "lead", lead.LeadID)
}

// The two lists are stored as JSON text columns.
func encodeLeadLists(lead *entity.Lead) (string, string, error) {
	rooms := lead.RoomsInterested
	if rooms == nil {
		rooms = []string{}
	}
	dates := lead.ShowingDates
	if dates == nil {
		dates = []time.Time{}
	}
	roomsJSON, err := json.Marshal(rooms)
	if err != nil {
		return "", "", fmt.Errorf("encode rooms_interested: %w", err)
	}
	datesJSON, err := json.Marshal(dates)
	if err != nil {
		return "", "", fmt.Errorf("encode showing_dates: %w", err)
	}
	return string(roomsJSON), string(datesJSON), nil
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var (
		lead                                  entity.Lead
		status                                string
		rooms, selected, dates, in, out, visa sql.NullString
	)
	err := row.Scan(&lead.ID, &lead.LeadID, &lead.Email, &status, &lead.InteractionCount,
		&rooms, &selected, &dates, &in, &out, &visa)
	if err != nil {
		return nil, err
	}
	lead.Status = entity.LeadStatus(status)
	lead.SelectedRoomID = selected.String
	lead.PlannedMoveIn = in.String
	lead.PlannedMoveOut = out.String
	lead.VisaStatus = visa.String

	lead.RoomsInterested = []string{}
	if rooms.String != "" {
		if err := json.Unmarshal([]byte(rooms.String), &lead.RoomsInterested); err != nil {
			return nil, fmt.Errorf("decode rooms_interested of %s: %w", lead.LeadID, err)
		}
	}
	lead.ShowingDates = []time.Time{}
	if dates.String != "" {
		if err := json.Unmarshal([]byte(dates.String), &lead.ShowingDates); err != nil {
			return nil, fmt.Errorf("decode showing_dates of %s: %w", lead.LeadID, err)
		}
	}
	return &lead, nil
}
