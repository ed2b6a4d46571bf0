package entity

import (
	"context"
	"fmt"
)

// Sequence names, one per entity with a generated business key.
const (
	SequenceLeads   = "leads"
	SequenceTenants = "tenants"
)

func FormatLeadID(n int64) string {
	return fmt.Sprintf("LEAD_%03d", n)
}

func FormatTenantID(n int64) string {
	return fmt.Sprintf("TNT_%03d", n)
}

// Sequencer hands out the next number of a named sequence.
type Sequencer interface {
	Next(ctx context.Context, name string) (int64, error)
}

// Counter reports how many rows an entity table holds.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// CountingSequencer derives the next number as count+1. Two concurrent callers
// can read the same count and produce the same id; the second insert then fails
// with ErrConflict on the unique business key.
type CountingSequencer struct {
	counters map[string]Counter
}

func NewCountingSequencer(counters map[string]Counter) *CountingSequencer {
	return &CountingSequencer{counters: counters}
}

func (s *CountingSequencer) Next(ctx context.Context, name string) (int64, error) {
	c, ok := s.counters[name]
	if !ok {
		return 0, fmt.Errorf("%w: unknown sequence %q", ErrConfiguration, name)
	}
	n, err := c.Count(ctx)
	if err != nil {
		return 0, err
	}
	return n + 1, nil
}
