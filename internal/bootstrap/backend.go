// Package bootstrap selects and opens the storage backend named by the
// configuration. The API server and the admin tool share it.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/homewiz/homewiz-backend/internal/config"
	"github.com/homewiz/homewiz-backend/internal/entity"
	"github.com/homewiz/homewiz-backend/internal/infra/cache"
	"github.com/homewiz/homewiz-backend/internal/infra/database"
	"github.com/homewiz/homewiz-backend/internal/infra/memory"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Backend holds the repositories and the id sequencer of one storage choice.
type Backend struct {
	Operators entity.OperatorRepository
	Buildings entity.BuildingRepository
	Rooms     entity.RoomRepository
	Leads     entity.LeadRepository
	Tenants   entity.TenantRepository
	IDs       entity.Sequencer
	Stats     entity.TableStats

	// DB is nil when the in-memory store is used.
	DB       *sql.DB
	Database Pinger
	// Redis is nil unless REDIS_ADDR is set.
	Redis *cache.RedisSequence

	kind    string
	closers []func() error
}

// Kind is "postgres" or "memory".
func (b *Backend) Kind() string { return b.kind }

// Open connects to PostgreSQL when DatabaseURL is set and falls back to the
// in-memory store otherwise.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backend, error) {
	b := &Backend{}
	var storeSequence entity.Sequencer

	if cfg.DatabaseURL != "" {
		db, err := database.NewDBConnection(ctx, cfg.DatabaseURL, database.PoolConfig{
			MaxOpenConns: cfg.DBMaxOpenConns,
			MaxIdleConns: cfg.DBMaxIdleConns,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		b.closers = append(b.closers, db.Close)

		stats := database.NewStatsRepository(db)
		b.kind = "postgres"
		b.DB = db
		b.Database = stats
		b.Stats = stats
		b.Operators = database.NewOperatorRepository(db)
		b.Buildings = database.NewBuildingRepository(db)
		b.Rooms = database.NewRoomRepository(db)
		b.Leads = database.NewLeadRepository(db)
		b.Tenants = database.NewTenantRepository(db)
		storeSequence = database.NewSequenceRepository(db)
		logger.Info("using postgres store", zap.Int("max_open_conns", cfg.DBMaxOpenConns))
	} else {
		store := memory.NewStore()
		b.kind = "memory"
		b.Database = store
		b.Stats = store
		b.Operators = store.Operators()
		b.Buildings = store.Buildings()
		b.Rooms = store.Rooms()
		b.Leads = store.Leads()
		b.Tenants = store.Tenants()
		storeSequence = store
		logger.Warn("DATABASE_URL not set, using in-memory store")
	}

	if cfg.RedisAddr != "" {
		client := cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		b.closers = append(b.closers, client.Close)
		b.Redis = cache.NewRedisSequence(client)
		if err := b.Redis.Ping(ctx); err != nil {
			b.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
	}

	ids, err := b.selectSequencer(ctx, cfg.IDStrategy, storeSequence, logger)
	if err != nil {
		b.Close()
		return nil, err
	}
	b.IDs = ids
	return b, nil
}

func (b *Backend) selectSequencer(ctx context.Context, strategy string, storeSequence entity.Sequencer, logger *zap.Logger) (entity.Sequencer, error) {
	if strategy == config.IDStrategyCount {
		logger.Warn("using count-based ids, concurrent creates may collide")
		return entity.NewCountingSequencer(map[string]entity.Counter{
			entity.SequenceLeads:   b.Leads,
			entity.SequenceTenants: b.Tenants,
		}), nil
	}
	seq := storeSequence
	if b.Redis != nil {
		seq = b.Redis
		logger.Info("using redis id sequence")
	}
	if floored, ok := seq.(sequenceFloor); ok {
		err := floorSequences(ctx, floored, map[string]entity.Counter{
			entity.SequenceLeads:   b.Leads,
			entity.SequenceTenants: b.Tenants,
		})
		if err != nil {
			return nil, err
		}
	}
	return seq, nil
}

// sequenceFloor is a sequence that may start behind rows already stored,
// such as a fresh Redis or id_sequences table over existing data.
type sequenceFloor interface {
	entity.Sequencer
	EnsureAtLeast(ctx context.Context, name string, floor int64) error
}

// floorSequences raises each named sequence to its table's row count.
func floorSequences(ctx context.Context, seq sequenceFloor, counters map[string]entity.Counter) error {
	for name, counter := range counters {
		n, err := counter.Count(ctx)
		if err != nil {
			return fmt.Errorf("count %s: %w", name, err)
		}
		if err := seq.EnsureAtLeast(ctx, name, n); err != nil {
			return err
		}
	}
	return nil
}

// Close releases every connection opened by Open.
func (b *Backend) Close() error {
	var first error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	b.closers = nil
	return first
}
