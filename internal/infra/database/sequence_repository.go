package database

import (
	"context"
	"database/sql"
	"fmt"
)

// SequenceRepository allocates ids from the id_sequences table. The upsert is
// a single statement, so concurrent callers never receive the same value.
type SequenceRepository struct {
	DB *sql.DB
}

func NewSequenceRepository(db *sql.DB) *SequenceRepository {
	return &SequenceRepository{DB: db}
}

func (r *SequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	query := `
		INSERT INTO id_sequences (name, value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = id_sequences.value + 1
		RETURNING value
	`
	var n int64
	if err := r.DB.QueryRowContext(ctx, query, name).Scan(&n); err != nil {
		return 0, fmt.Errorf("next value of sequence %s: %w", name, err)
	}
	return n, nil
}

// EnsureAtLeast raises the sequence to floor when it is lower, so ids already
// stored are never handed out again. It never lowers the sequence.
func (r *SequenceRepository) EnsureAtLeast(ctx context.Context, name string, floor int64) error {
	query := `
		INSERT INTO id_sequences (name, value) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET value = GREATEST(id_sequences.value, EXCLUDED.value)
	`
	if _, err := r.DB.ExecContext(ctx, query, name, floor); err != nil {
		return fmt.Errorf("raise sequence %s to %d: %w", name, floor, err)
	}
	return nil
}
