package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/homewiz/homewiz-backend/internal/entity"
)

type OperatorRepository struct {
	DB *sql.DB
}

func NewOperatorRepository(db *sql.DB) *OperatorRepository {
	return &OperatorRepository{DB: db}
}

const operatorColumns = `operator_id, name, email, phone, role, operator_type, active, date_joined, last_active`

func (r *OperatorRepository) Create(ctx context.Context, op *entity.Operator) error {
	query := `
		INSERT INTO operators (name, email, phone, role, operator_type, active, date_joined, last_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING operator_id
	`
	err := r.DB.QueryRowContext(ctx, query,
		op.Name,
		op.Email,
		nullString(op.Phone),
		nullString(op.Role),
		string(op.Type),
		op.Active,
		op.DateJoined,
		op.LastActive,
	).Scan(&op.ID)
	return mapError(err, "operator", op.Email)
}

func (r *OperatorRepository) FindByID(ctx context.Context, id int64) (*entity.Operator, error) {
	query := `SELECT ` + operatorColumns + ` FROM operators WHERE operator_id = $1`
	op, err := scanOperator(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "operator", fmt.Sprint(id))
	}
	return op, nil
}

func (r *OperatorRepository) FindByEmail(ctx context.Context, email string) (*entity.Operator, error) {
	query := `SELECT ` + operatorColumns + ` FROM operators WHERE LOWER(email) = LOWER($1)`
	op, err := scanOperator(r.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, mapError(err, "operator", email)
	}
	return op, nil
}

func (r *OperatorRepository) List(ctx context.Context) ([]*entity.Operator, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+operatorColumns+` FROM operators ORDER BY operator_id`)
	if err != nil {
		return nil, mapError(err, "operators", "list")
	}
	defer rows.Close()

	var out []*entity.Operator
	for rows.Next() {
		op, err := scanOperator(rows)
		if err != nil {
			return nil, mapError(err, "operators", "scan")
		}
		out = append(out, op)
	}
	return out, mapError(rows.Err(), "operators", "list")
}

func (r *OperatorRepository) TouchLastActive(ctx context.Context, id int64, day entity.Date) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE operators SET last_active = $1 WHERE operator_id = $2`, day, id)
	if err != nil {
		return mapError(err, "operator", fmt.Sprint(id))
	}
	return expectOneRow(res, "operator", fmt.Sprint(id))
}

func scanOperator(row rowScanner) (*entity.Operator, error) {
	var (
		op          entity.Operator
		phone, role sql.NullString
		opType      string
	)
	if err := row.Scan(&op.ID, &op.Name, &op.Email, &phone, &role, &opType, &op.Active, &op.DateJoined, &op.LastActive); err != nil {
		return nil, err
	}
	op.Phone = phone.String
	op.Role = role.String
	op.Type = entity.OperatorType(opType)
	return &op, nil
}
