package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/osse101/farmstead/internal/domain"
)

// Store persists snapshots by slot. Load returns domain.ErrSnapshotNotFound
// for a slot that was never saved.
type Store interface {
	Save(ctx context.Context, slot string, s *domain.Snapshot) error
	Load(ctx context.Context, slot string) (*domain.Snapshot, error)
}

// Lister is implemented by stores that can enumerate their slots
type Lister interface {
	List(ctx context.Context) ([]domain.SaveRecord, error)
}

var (
	ErrInvalidSlot    = errors.New(ErrMsgInvalidSlot)
	ErrNilSnapshot    = errors.New(ErrMsgNilSnapshot)
	ErrUnknownBackend = errors.New(ErrMsgUnknownBackend)
)

var slotPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// ValidateSlot rejects slot names that could escape a save directory or
// overflow the slot column
func ValidateSlot(slot string) error {
	if !slotPattern.MatchString(slot) {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	return nil
}

func checkSave(slot string, s *domain.Snapshot) error {
	if err := ValidateSlot(slot); err != nil {
		return err
	}
	if s == nil {
		return ErrNilSnapshot
	}
	return nil
}

// Encode serializes a snapshot in its persisted JSON form
func Encode(s *domain.Snapshot) ([]byte, error) {
	data, err := json.Marshal(s.Clone())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgEncodeSnapshot, err)
	}
	return data, nil
}

// Decode parses a persisted snapshot. Unknown fields or a foreign schema
// version are reported as domain.ErrDeserializationMismatch.
func Decode(data []byte) (*domain.Snapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var s domain.Snapshot
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDeserializationMismatch, ErrMsgDecodeSnapshot, err)
	}
	if s.SchemaVersion != domain.SnapshotSchemaVersion {
		return nil, fmt.Errorf("%w: schema version %d, want %d",
			domain.ErrDeserializationMismatch, s.SchemaVersion, domain.SnapshotSchemaVersion)
	}
	return s.Clone(), nil
}
