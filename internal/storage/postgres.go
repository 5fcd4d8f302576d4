package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/farmstead/internal/domain"
	"github.com/osse101/farmstead/internal/logger"
)

// PostgresStore keeps snapshots as JSONB rows. Every save also appends to
// save_history so earlier saves of a slot can be inspected.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps a migrated connection pool
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Save upserts the slot and records a history row in one transaction
func (p *PostgresStore) Save(ctx context.Context, slot string, s *domain.Snapshot) error {
	if err := checkSave(slot, s); err != nil {
		return err
	}
	data, err := Encode(s)
	if err != nil {
		return err
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgWriteSave, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO save_slots (slot, schema_version, game_day, snapshot, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (slot) DO UPDATE SET
			schema_version = EXCLUDED.schema_version,
			game_day = EXCLUDED.game_day,
			snapshot = EXCLUDED.snapshot,
			updated_at = NOW()`,
		slot, s.SchemaVersion, int64(s.Timestamp.Day), data)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgWriteSave, err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO save_history (slot, game_day, snapshot) VALUES ($1, $2, $3)`,
		slot, int64(s.Timestamp.Day), data)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgWriteSave, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgWriteSave, err)
	}
	logger.FromContext(ctx).Debug(LogMsgSnapshotSaved, "backend", BackendPostgres, "slot", slot)
	return nil
}

// Load reads the latest snapshot of slot
func (p *PostgresStore) Load(ctx context.Context, slot string) (*domain.Snapshot, error) {
	if err := ValidateSlot(slot); err != nil {
		return nil, err
	}
	var data []byte
	err := p.pool.QueryRow(ctx, `SELECT snapshot FROM save_slots WHERE slot = $1`, slot).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadSave, err)
	}
	logger.FromContext(ctx).Debug(LogMsgSnapshotLoaded, "backend", BackendPostgres, "slot", slot)
	return Decode(data)
}

// List returns every stored slot ordered by name
func (p *PostgresStore) List(ctx context.Context) ([]domain.SaveRecord, error) {
	rows, err := p.pool.Query(ctx, `SELECT slot, snapshot, updated_at FROM save_slots ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadSave, err)
	}
	defer rows.Close()

	var records []domain.SaveRecord
	for rows.Next() {
		var (
			slot      string
			data      []byte
			updatedAt time.Time
		)
		if err := rows.Scan(&slot, &data, &updatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgReadSave, err)
		}
		s, err := Decode(data)
		if err != nil {
			return nil, err
		}
		records = append(records, domain.SaveRecord{Slot: slot, Snapshot: s, UpdatedAt: updatedAt.UTC()})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadSave, err)
	}
	return records, nil
}

// History returns the number of saves recorded for slot
func (p *PostgresStore) History(ctx context.Context, slot string) (int, error) {
	var n int
	err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM save_history WHERE slot = $1`, slot).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgReadSave, err)
	}
	return n, nil
}
