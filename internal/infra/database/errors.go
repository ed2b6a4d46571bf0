package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/homewiz/homewiz-backend/internal/entity"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapError turns driver errors into the entity sentinels so callers never see
// lib/pq types.
func mapError(err error, kind, key string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", kind, key, entity.ErrNotFound)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s %s already exists: %w", kind, key, entity.ErrConflict)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s %s references a missing row (%s): %w", kind, key, pqErr.Constraint, entity.ErrNotFound)
		}
	}
	return fmt.Errorf("%s %s: %w", kind, key, err)
}

// expectOneRow reports NotFound when an update or delete matched nothing.
func expectOneRow(res sql.Result, kind, key string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %s: %w", kind, key, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, key, entity.ErrNotFound)
	}
	return nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type rowScanner interface {
	Scan(dest ...any) error
}
