package bootstrap

import (
	"context"

	"github.com/osse101/farmstead/internal/event"
	"github.com/osse101/farmstead/internal/logger"
	"github.com/osse101/farmstead/internal/server"
	"github.com/osse101/farmstead/internal/sleep"
	"github.com/osse101/farmstead/internal/sse"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Any field may be nil.
type ShutdownComponents struct {
	Server             *server.Server
	Streams            *sse.Hub
	Game               *Game
	ResilientPublisher *event.ResilientPublisher
	CloseStore         func()
}

// GracefulShutdown stops the application in dependency order:
//  1. Event streams, then the HTTP server (stop accepting new requests)
//  2. Clock scheduler (no more real-time ticks)
//  3. Running sleep, then a final save on the world writer
//  4. World writer
//  5. Event publisher (flush pending events) and storage
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	// open streams would hold the server's shutdown until the deadline
	if components.Streams != nil {
		components.Streams.Stop()
	}

	if components.Server != nil {
		logger.Info(LogMsgShuttingDownServer)
		if err := components.Server.Stop(ctx); err != nil {
			logger.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if g := components.Game; g != nil {
		logger.Info(LogMsgStoppingClock)
		g.Scheduler.Stop()

		if g.Sleep.State() != sleep.StateIdle {
			if _, err := g.Sleep.Wait(ctx); err != nil {
				logger.Warn(LogMsgSleepInterrupted, "error", err)
			}
		}

		logger.Info(LogMsgSavingWorld, "slot", g.Coordinator.SaveSlot())
		if err := g.Pool.Do(ctx, g.Coordinator.Save); err != nil {
			logger.Error(LogMsgFinalSaveFailed, "error", err)
		}
		g.Pool.Stop()
	}

	if components.ResilientPublisher != nil {
		logger.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			logger.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.CloseStore != nil {
		components.CloseStore()
	}

	logger.Info(LogMsgServerStopped)
}
