package worker

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/homewiz/homewiz-backend/internal/entity"
)

// TableChange is a row count that moved between two polls.
type TableChange struct {
	Table    string
	Previous int64
	Current  int64
}

func (c TableChange) Delta() int64 {
	return c.Current - c.Previous
}

// TableMonitor polls per-table row counts and logs what changed since the
// previous poll.
type TableMonitor struct {
	stats        entity.TableStats
	tickInterval time.Duration
	logger       *zap.Logger
	onChange     func([]TableChange)

	mu   sync.Mutex
	last map[string]int64
}

func NewTableMonitor(stats entity.TableStats, interval time.Duration, logger *zap.Logger) *TableMonitor {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &TableMonitor{
		stats:        stats,
		tickInterval: interval,
		logger:       logger,
	}
}

// OnChange registers fn to receive every non-empty set of changes.
func (w *TableMonitor) OnChange(fn func([]TableChange)) {
	w.onChange = fn
}

// Start polls until ctx is cancelled. The first poll only records a baseline.
func (w *TableMonitor) Start(ctx context.Context) {
	w.logger.Info("table monitor started", zap.Duration("interval", w.tickInterval))

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("table monitor stopped")
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

func (w *TableMonitor) poll(ctx context.Context) {
	changes, err := w.Poll(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Error("failed to read table counts", zap.Error(err))
		}
		return
	}
	for _, c := range changes {
		w.logger.Info("table changed",
			zap.String("table", c.Table),
			zap.Int64("previous", c.Previous),
			zap.Int64("current", c.Current),
			zap.Int64("delta", c.Delta()),
		)
	}
	if len(changes) > 0 && w.onChange != nil {
		w.onChange(changes)
	}
}

// Poll reads the counts once and returns the tables whose count differs from
// the previous poll, in table order. The first call returns nothing.
func (w *TableMonitor) Poll(ctx context.Context) ([]TableChange, error) {
	counts, err := w.stats.TableCounts(ctx)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.last == nil {
		w.last = counts
		w.logger.Info("table monitor baseline", zap.Any("counts", counts))
		return nil, nil
	}

	var changes []TableChange
	for table, current := range counts {
		if previous := w.last[table]; previous != current {
			changes = append(changes, TableChange{Table: table, Previous: previous, Current: current})
		}
	}
	sort.Slice(changes, func(i, j int) bool {
		return tableOrder(changes[i].Table) < tableOrder(changes[j].Table)
	})
	w.last = counts
	return changes, nil
}

func tableOrder(table string) int {
	for i, t := range entity.Tables {
		if t == table {
			return i
		}
	}
	return len(entity.Tables)
}
