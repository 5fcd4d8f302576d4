package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/farmstead/internal/bootstrap"
	"github.com/osse101/farmstead/internal/config"
	"github.com/osse101/farmstead/internal/logger"
	"github.com/osse101/farmstead/internal/server"
	"github.com/osse101/farmstead/internal/sse"
	"github.com/osse101/farmstead/internal/storage"
)

// shutdownTimeout bounds the whole graceful shutdown, final save included
const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	if err := run(cfg); err != nil {
		logger.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}
	if err := bootstrap.RegisterEventHandlers(eventBus); err != nil {
		return err
	}

	store, closeStore, err := storage.Open(ctx, storage.Options{
		Backend:     cfg.StorageDriver,
		Dir:         cfg.SaveDir,
		SQLitePath:  cfg.SQLitePath,
		DatabaseURL: cfg.GetDBConnString(),
		MaxConns:    cfg.DBMaxConns,
		MaxIdle:     cfg.DBMaxConnIdleTime,
		MaxLifetime: cfg.DBMaxConnLifetime,
		CacheSize:   cfg.SnapshotCacheSize,
		CacheTTL:    cfg.SnapshotCacheTTL,
	})
	if err != nil {
		return err
	}

	game, err := bootstrap.BuildGame(cfg, store, publisher)
	if err != nil {
		closeStore()
		return err
	}

	// The writer must run before the save can be loaded through it
	game.Pool.Start()
	if err := game.LoadOrStart(ctx); err != nil {
		game.Pool.Stop()
		closeStore()
		return err
	}
	game.Start()

	streams := sse.NewHub()
	streams.Start()
	sse.NewSubscriber(streams, eventBus).Subscribe()

	srv := server.NewServer(server.Config{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		EventStream:    sse.Handler(streams),
	}, game.Handlers(), game.Readiness())

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case <-stop:
	case runErr = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Streams:            streams,
		Game:               game,
		ResilientPublisher: publisher,
		CloseStore:         closeStore,
	})
	return runErr
}
