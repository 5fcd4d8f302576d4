package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/osse101/farmstead/internal/domain"
	"github.com/osse101/farmstead/internal/logger"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS save_slots (
	slot TEXT PRIMARY KEY,
	schema_version INTEGER NOT NULL,
	game_day INTEGER NOT NULL,
	snapshot TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// SQLiteStore keeps snapshots in a single-file SQLite database
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and ensures the
// schema exists
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgOpenDatabase, err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateSchema, err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save upserts the snapshot under slot
func (s *SQLiteStore) Save(ctx context.Context, slot string, snap *domain.Snapshot) error {
	if err := checkSave(slot, snap); err != nil {
		return err
	}
	data, err := Encode(snap)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO save_slots (slot, schema_version, game_day, snapshot, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			schema_version = excluded.schema_version,
			game_day = excluded.game_day,
			snapshot = excluded.snapshot,
			updated_at = excluded.updated_at`,
		slot, snap.SchemaVersion, int64(snap.Timestamp.Day), string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgWriteSave, err)
	}

	logger.FromContext(ctx).Debug(LogMsgSnapshotSaved, "backend", BackendSQLite, "slot", slot)
	return nil
}

// Load reads the snapshot stored under slot
func (s *SQLiteStore) Load(ctx context.Context, slot string) (*domain.Snapshot, error) {
	if err := ValidateSlot(slot); err != nil {
		return nil, err
	}
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT snapshot FROM save_slots WHERE slot = ?`, slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadSave, err)
	}
	logger.FromContext(ctx).Debug(LogMsgSnapshotLoaded, "backend", BackendSQLite, "slot", slot)
	return Decode([]byte(data))
}

// List returns every stored slot ordered by name
func (s *SQLiteStore) List(ctx context.Context) ([]domain.SaveRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slot, snapshot, updated_at FROM save_slots ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadSave, err)
	}
	defer rows.Close()

	var records []domain.SaveRecord
	for rows.Next() {
		var (
			slot, data string
			updatedAt  time.Time
		)
		if err := rows.Scan(&slot, &data, &updatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgReadSave, err)
		}
		snap, err := Decode([]byte(data))
		if err != nil {
			return nil, err
		}
		records = append(records, domain.SaveRecord{Slot: slot, Snapshot: snap, UpdatedAt: updatedAt.UTC()})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadSave, err)
	}
	return records, nil
}
