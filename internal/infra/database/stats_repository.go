package database

import (
	"context"
	"database/sql"
	"fmt"
)

// StatsRepository counts rows per entity table and backs the health and
// monitor checks.
type StatsRepository struct {
	DB *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{DB: db}
}

func (r *StatsRepository) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

func (r *StatsRepository) TableCounts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(tableNames))
	for _, table := range tableNames {
		var n int64
		// table comes from a fixed list, never from input.
		if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

// MissingTables returns the expected tables absent from the current schema.
func (r *StatsRepository) MissingTables(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema()`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	present := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list tables: %w", err)
		}
		present[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	var missing []string
	for _, table := range append(append([]string{}, tableNames...), sequenceTable) {
		if !present[table] {
			missing = append(missing, table)
		}
	}
	return missing, nil
}
