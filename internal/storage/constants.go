package storage

import "time"

// Backend names accepted by Open
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Cache defaults
const (
	DefaultCacheSize = 16
	DefaultCacheTTL  = 10 * time.Minute
)

// File store layout
const (
	SaveFileExt     = ".json"
	saveFileMode    = 0o644
	saveDirMode     = 0o755
	tempFilePattern = ".save-*.tmp"
)

// Error Messages
const (
	ErrMsgInvalidSlot       = "invalid save slot"
	ErrMsgNilSnapshot       = "snapshot is nil"
	ErrMsgUnknownBackend    = "unknown storage backend"
	ErrMsgEncodeSnapshot    = "failed to encode snapshot"
	ErrMsgDecodeSnapshot    = "failed to decode snapshot"
	ErrMsgWriteSave         = "failed to write save"
	ErrMsgReadSave          = "failed to read save"
	ErrMsgOpenDatabase      = "failed to open save database"
	ErrMsgCreateSchema      = "failed to create save schema"
	ErrMsgMissingConnection = "database url is required for the postgres backend"
)

// Log Messages
const (
	LogMsgSnapshotSaved  = "Snapshot written"
	LogMsgSnapshotLoaded = "Snapshot read"
	LogMsgCacheHit       = "Snapshot served from cache"
	LogMsgStoreOpened    = "Save store opened"
)
