package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/farmstead/internal/database"
	"github.com/osse101/farmstead/internal/logger"
)

// Options selects and configures a storage backend
type Options struct {
	Backend     string
	Dir         string
	SQLitePath  string
	DatabaseURL string

	MaxConns    int
	MaxIdle     time.Duration
	MaxLifetime time.Duration

	CacheSize int
	CacheTTL  time.Duration
}

// Open builds the configured store wrapped in a CachedStore. The returned
// close function releases any database handles.
func Open(ctx context.Context, opts Options) (*CachedStore, func(), error) {
	var (
		store   Store
		closeFn = func() {}
	)

	switch opts.Backend {
	case BackendMemory:
		store = NewMemoryStore()
	case BackendFile, "":
		fs, err := NewFileStore(opts.Dir)
		if err != nil {
			return nil, nil, err
		}
		store = fs
	case BackendSQLite:
		ss, err := NewSQLiteStore(opts.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		store = ss
		closeFn = func() { _ = ss.Close() }
	case BackendPostgres:
		if opts.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnknownBackend, ErrMsgMissingConnection)
		}
		if err := database.Migrate(ctx, opts.DatabaseURL); err != nil {
			return nil, nil, err
		}
		pool, err := database.NewPool(ctx, opts.DatabaseURL, opts.MaxConns, opts.MaxIdle, opts.MaxLifetime)
		if err != nil {
			return nil, nil, err
		}
		store = NewPostgresStore(pool)
		closeFn = pool.Close
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}

	logger.FromContext(ctx).Info(LogMsgStoreOpened, "backend", opts.Backend)
	return NewCachedStore(store, opts.CacheSize, opts.CacheTTL), closeFn, nil
}
