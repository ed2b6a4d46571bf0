package entity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homewiz/homewiz-backend/internal/entity"
)

type fixedCounter int64

func (c fixedCounter) Count(context.Context) (int64, error) { return int64(c), nil }

func TestFormatIDs(t *testing.T) {
	assert.Equal(t, "LEAD_001", entity.FormatLeadID(1))
	assert.Equal(t, "LEAD_042", entity.FormatLeadID(42))
	assert.Equal(t, "LEAD_1000", entity.FormatLeadID(1000))
	assert.Equal(t, "TNT_007", entity.FormatTenantID(7))
}

func TestCountingSequencer(t *testing.T) {
	seq := entity.NewCountingSequencer(map[string]entity.Counter{
		entity.SequenceLeads: fixedCounter(3),
	})

	n, err := seq.Next(context.Background(), entity.SequenceLeads)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	// Count has not moved, so a second caller gets the same number.
	n2, err := seq.Next(context.Background(), entity.SequenceLeads)
	require.NoError(t, err)
	assert.Equal(t, n, n2)

	_, err = seq.Next(context.Background(), "unknown")
	assert.True(t, errors.Is(err, entity.ErrConfiguration))
}
