package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/farmstead/internal/catalog"
	"github.com/osse101/farmstead/internal/clock"
	"github.com/osse101/farmstead/internal/config"
	"github.com/osse101/farmstead/internal/domain"
	"github.com/osse101/farmstead/internal/event"
	"github.com/osse101/farmstead/internal/farm"
	"github.com/osse101/farmstead/internal/handler"
	"github.com/osse101/farmstead/internal/incubation"
	"github.com/osse101/farmstead/internal/inventory"
	"github.com/osse101/farmstead/internal/location"
	"github.com/osse101/farmstead/internal/logger"
	"github.com/osse101/farmstead/internal/player"
	"github.com/osse101/farmstead/internal/relationship"
	"github.com/osse101/farmstead/internal/scheduler"
	"github.com/osse101/farmstead/internal/shipping"
	"github.com/osse101/farmstead/internal/sleep"
	"github.com/osse101/farmstead/internal/storage"
	"github.com/osse101/farmstead/internal/ui"
	"github.com/osse101/farmstead/internal/worker"
	"github.com/osse101/farmstead/internal/world"
)

// WorldQueueSize bounds the jobs waiting for the world writer
const WorldQueueSize = 64

// Game is the assembled world: the clock, the coordinator and its
// subsystems, the single writer that serializes them and the sleep sequence
type Game struct {
	Catalog     *catalog.Catalog
	Clock       *clock.Clock
	Coordinator *world.Coordinator
	Pool        *worker.Pool
	Scheduler   *scheduler.Scheduler
	Sleep       *sleep.Sequence
	Fader       *ui.TimedFader
	Store       *storage.CachedStore

	tickInterval time.Duration
}

// BuildGame wires every subsystem of a fresh world. Nothing runs until
// Start is called.
func BuildGame(cfg *config.Config, store *storage.CachedStore, publisher event.Publisher) (*Game, error) {
	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCatalog, err)
	}

	gameClock := clock.New(domain.NewTimestamp(1, cfg.WakeHour, 0), clock.WithMinutesPerTick(cfg.MinutesPerTick))

	rules := farm.Rules{
		WaterDuration:  domain.HoursToMinutes(cfg.WaterDurationHours),
		DecayPerTick:   cfg.CropDecayPerTick,
		WiltThreshold:  cfg.CropWiltThreshold,
		MinutesPerTick: cfg.MinutesPerTick,
	}
	wallet := player.NewWallet(player.StartingMoney)
	inv := inventory.New(cfg.ToolSlots, cfg.ItemSlots, cat)

	incubationCfg := incubation.DefaultConfig()
	incubationCfg.MinutesPerTick = cfg.MinutesPerTick

	coord := world.NewCoordinator(world.Config{
		ShipHour:  cfg.ShipHour,
		SaveSlot:  cfg.SaveSlot,
		PlotCount: cfg.PlotCount,
	}, world.Deps{
		Clock:         gameClock,
		Farm:          farm.New(rules, cat),
		Shipper:       shipping.NewBin(cat, wallet, publisher, gameClock),
		Incubator:     incubation.New(incubationCfg, inv, publisher, gameClock),
		Inventory:     inv,
		Wallet:        wallet,
		Relationships: relationship.NewBook(),
		Location:      location.NewTracker(domain.LocationHome),
		Catalog:       cat,
		Store:         store,
		Publisher:     publisher,
	})
	gameClock.Register(coord)
	gameClock.Register(coord.SceneTracker())

	pool := worker.NewPool(1, WorldQueueSize)
	fader := ui.NewTimedFader(cfg.HeadlessFadeDelay)

	sleepCfg := sleep.DefaultConfig()
	sleepCfg.WakeHour = cfg.WakeHour
	sleepCfg.PollInterval = cfg.FadePollInterval
	sleepCfg.FadeTimeout = cfg.FadeTimeout

	seq := sleep.New(sleepCfg, sleep.Deps{
		Prompter:  ui.AutoPrompter{Confirm: true},
		Fader:     fader,
		Clock:     gameClock,
		Saver:     coord,
		Executor:  pool,
		Publisher: publisher,
	})
	fader.Bind(seq)

	logger.Info(LogMsgWorldAssembled,
		"start", gameClock.Now().String(),
		"plots", cfg.PlotCount,
		"save_slot", coord.SaveSlot())

	return &Game{
		Catalog:      cat,
		Clock:        gameClock,
		Coordinator:  coord,
		Pool:         pool,
		Scheduler:    scheduler.New(pool),
		Sleep:        seq,
		Fader:        fader,
		Store:        store,
		tickInterval: cfg.TickInterval,
	}, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	var (
		cat *catalog.Catalog
		err error
	)
	if path == "" {
		cat, err = catalog.Default()
	} else {
		cat, err = catalog.Load(path)
	}
	if err != nil {
		return nil, err
	}
	logger.Info(LogMsgCatalogLoaded, "path", path)
	return cat, nil
}

// Start launches the world writer and the real-time clock
func (g *Game) Start() {
	g.Pool.Start()
	g.Scheduler.Schedule(g.tickInterval, g.Clock.TickJob())
}

// LoadOrStart restores the configured save slot. A missing save starts a
// new game; any other failure is returned. The pool must be running.
func (g *Game) LoadOrStart(ctx context.Context) error {
	err := g.Pool.Do(ctx, g.Coordinator.Load)
	switch {
	case err == nil:
		logger.Info(LogMsgSaveLoaded, "slot", g.Coordinator.SaveSlot(), "now", g.Clock.Now().String())
		return nil
	case errors.Is(err, domain.ErrSnapshotNotFound):
		logger.Info(LogMsgNewGame, "slot", g.Coordinator.SaveSlot())
		return nil
	default:
		return fmt.Errorf("%s: %w", ErrMsgFailedLoadWorld, err)
	}
}

// Handlers returns the HTTP handlers for this game
func (g *Game) Handlers() *handler.GameHandlers {
	return handler.NewGameHandlers(handler.GameDeps{
		Executor: g.Pool,
		World:    g.Coordinator,
		Clock:    g.Clock,
		Ticks:    g.Scheduler,
		Sleep:    g.Sleep,
		Saves:    g.Store,
	})
}

// Readiness returns the checks behind /readyz. The world check runs a no-op
// through the writer, so a wedged tick shows up as not ready.
func (g *Game) Readiness() map[string]handler.HealthChecker {
	return map[string]handler.HealthChecker{
		"world": handler.HealthCheckFunc(func(ctx context.Context) error {
			return g.Pool.Do(ctx, func(context.Context) error { return nil })
		}),
		"storage": handler.HealthCheckFunc(func(ctx context.Context) error {
			_, err := g.Store.List(ctx)
			return err
		}),
	}
}
