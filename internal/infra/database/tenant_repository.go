package database

import (
	"context"
	"database/sql"

	"github.com/homewiz/homewiz-backend/internal/entity"
)

type TenantRepository struct {
	DB *sql.DB
}

func NewTenantRepository(db *sql.DB) *TenantRepository {
	return &TenantRepository{DB: db}
}

const tenantColumns = `id, tenant_id, tenant_name, room_id, room_number, lease_start_date, lease_end_date, operator_id,
	booking_type, tenant_nationality, tenant_email, phone, building_id, status, deposit_amount, payment_status`

func (r *TenantRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM tenants`).Scan(&n); err != nil {
		return 0, mapError(err, "tenants", "count")
	}
	return n, nil
}

func (r *TenantRepository) Create(ctx context.Context, t *entity.Tenant) error {
	query := `
		INSERT INTO tenants (tenant_id, tenant_name, room_id, room_number, lease_start_date, lease_end_date, operator_id,
			booking_type, tenant_nationality, tenant_email, phone, building_id, status, deposit_amount, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		t.TenantID,
		t.Name,
		t.RoomID,
		nullString(t.RoomNumber),
		t.LeaseStart,
		t.LeaseEnd,
		t.OperatorID,
		nullString(t.BookingType),
		nullString(t.Nationality),
		nullString(t.Email),
		nullString(t.Phone),
		nullString(t.BuildingID),
		string(t.Status),
		t.DepositAmount,
		string(t.PaymentStatus),
	).Scan(&t.ID)
	return mapError(err, "tenant", t.TenantID)
}

func (r *TenantRepository) FindByTenantID(ctx context.Context, tenantID string) (*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE tenant_id = $1`
	t, err := scanTenant(r.DB.QueryRowContext(ctx, query, tenantID))
	if err != nil {
		return nil, mapError(err, "tenant", tenantID)
	}
	return t, nil
}

func (r *TenantRepository) List(ctx context.Context) ([]*entity.Tenant, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+tenantColumns+` FROM tenants ORDER BY id`)
	if err != nil {
		return nil, mapError(err, "tenants", "list")
	}
	defer rows.Close()

	var out []*entity.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, mapError(err, "tenants", "scan")
		}
		out = append(out, t)
	}
	return out, mapError(rows.Err(), "tenants", "list")
}

func (r *TenantRepository) Update(ctx context.Context, t *entity.Tenant) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE tenants SET status = $1, payment_status = $2 WHERE tenant_id = $3`,
		string(t.Status), string(t.PaymentStatus), t.TenantID)
	if err != nil {
		return mapError(err, "tenant", t.TenantID)
	}
	return expectOneRow(res, "tenant", t.TenantID)
}

func (r *TenantRepository) Delete(ctx context.Context, tenantID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM tenants WHERE tenant_id = $1`, tenantID)
	if err != nil {
		return mapError(err, "tenant", tenantID)
	}
	return expectOneRow(res, "tenant", tenantID)
}

func scanTenant(row rowScanner) (*entity.Tenant, error) {
	var (
		t                                                   entity.Tenant
		roomNumber, booking, nationality, email, phone, bld sql.NullString
		operatorID                                          sql.NullInt64
		deposit                                             sql.NullFloat64
		status, payment                                     string
	)
	err := row.Scan(&t.ID, &t.TenantID, &t.Name, &t.RoomID, &roomNumber, &t.LeaseStart, &t.LeaseEnd, &operatorID,
		&booking, &nationality, &email, &phone, &bld, &status, &deposit, &payment)
	if err != nil {
		return nil, err
	}
	t.RoomNumber = roomNumber.String
	t.OperatorID = operatorID.Int64
	t.BookingType = booking.String
	t.Nationality = nationality.String
	t.Email = email.String
	t.Phone = phone.String
	t.BuildingID = bld.String
	t.Status = entity.TenantStatus(status)
	t.DepositAmount = deposit.Float64
	t.PaymentStatus = entity.PaymentStatus(payment)
	return &t, nil
}
