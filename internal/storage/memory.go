package storage

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/farmstead/internal/domain"
)

// MemoryStore keeps encoded snapshots in process memory
type MemoryStore struct {
	mu    sync.RWMutex
	saves map[string]memoryEntry
}

type memoryEntry struct {
	data      []byte
	updatedAt time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{saves: make(map[string]memoryEntry)}
}

// Save stores the snapshot under slot
func (m *MemoryStore) Save(_ context.Context, slot string, s *domain.Snapshot) error {
	if err := checkSave(slot, s); err != nil {
		return err
	}
	data, err := Encode(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves[slot] = memoryEntry{data: data, updatedAt: time.Now().UTC()}
	return nil
}

// Load returns the snapshot stored under slot
func (m *MemoryStore) Load(_ context.Context, slot string) (*domain.Snapshot, error) {
	if err := ValidateSlot(slot); err != nil {
		return nil, err
	}
	m.mu.RLock()
	entry, ok := m.saves[slot]
	m.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return Decode(entry.data)
}

// List returns every stored slot
func (m *MemoryStore) List(_ context.Context) ([]domain.SaveRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	records := make([]domain.SaveRecord, 0, len(m.saves))
	for slot, entry := range m.saves {
		s, err := Decode(entry.data)
		if err != nil {
			return nil, err
		}
		records = append(records, domain.SaveRecord{Slot: slot, Snapshot: s, UpdatedAt: entry.updatedAt})
	}
	sortRecords(records)
	return records, nil
}
