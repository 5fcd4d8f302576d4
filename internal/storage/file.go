package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/osse101/farmstead/internal/domain"
	"github.com/osse101/farmstead/internal/logger"
)

// FileStore writes one JSON file per slot under a directory
type FileStore struct {
	dir string
}

// NewFileStore creates the save directory if needed
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, saveDirMode); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgWriteSave, err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(slot string) string {
	return filepath.Join(f.dir, slot+SaveFileExt)
}

// Save atomically replaces the slot's file. A crash mid-write leaves the
// previous save intact.
func (f *FileStore) Save(ctx context.Context, slot string, s *domain.Snapshot) error {
	if err := checkSave(slot, s); err != nil {
		return err
	}
	data, err := Encode(s)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgWriteSave, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: %w", ErrMsgWriteSave, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: %w", ErrMsgWriteSave, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgWriteSave, err)
	}
	if err := os.Chmod(tmpName, saveFileMode); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgWriteSave, err)
	}
	if err := os.Rename(tmpName, f.path(slot)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgWriteSave, err)
	}

	logger.FromContext(ctx).Debug(LogMsgSnapshotSaved, "backend", BackendFile, "slot", slot, "bytes", len(data))
	return nil
}

// Load reads the slot's file
func (f *FileStore) Load(ctx context.Context, slot string) (*domain.Snapshot, error) {
	if err := ValidateSlot(slot); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadSave, err)
	}
	logger.FromContext(ctx).Debug(LogMsgSnapshotLoaded, "backend", BackendFile, "slot", slot)
	return Decode(data)
}

// List returns every save file in the directory
func (f *FileStore) List(ctx context.Context) ([]domain.SaveRecord, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadSave, err)
	}
	var records []domain.SaveRecord
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, SaveFileExt) {
			continue
		}
		slot := strings.TrimSuffix(name, SaveFileExt)
		if ValidateSlot(slot) != nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgReadSave, err)
		}
		s, err := f.Load(ctx, slot)
		if err != nil {
			return nil, err
		}
		records = append(records, domain.SaveRecord{Slot: slot, Snapshot: s, UpdatedAt: info.ModTime().UTC()})
	}
	sortRecords(records)
	return records, nil
}

func sortRecords(records []domain.SaveRecord) {
	sort.Slice(records, func(i, j int) bool { return records[i].Slot < records[j].Slot })
}
