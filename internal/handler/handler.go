package handler

import (
	"context"

	"github.com/osse101/farmstead/internal/domain"
	"github.com/osse101/farmstead/internal/sleep"
	"github.com/osse101/farmstead/internal/world"
)

// Executor runs fn on the world's single writer and waits for it
type Executor interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// World is the coordinator surface exposed over HTTP. Every call must run
// inside Executor.Do.
type World interface {
	Status() world.Status
	MoveTo(ctx context.Context, loc domain.Location) error
	Till(ctx context.Context, plotID int) error
	Water(ctx context.Context, plotID int) error
	Plant(ctx context.Context, plotID int, seedItem string) (domain.Crop, error)
	Harvest(ctx context.Context, plotID int) (string, error)
	ClearObstacle(ctx context.Context, plotID int) (domain.ObstacleStatus, error)
	Equip(ctx context.Context, t domain.InventoryType, index int) (domain.ItemSlot, error)
	Ship(ctx context.Context, itemID string, quantity int) error
	Buy(ctx context.Context, itemID string, quantity int) error
	Talk(ctx context.Context, npcID string) (domain.RelationshipRecord, error)
	Gift(ctx context.Context, npcID, itemID string) (domain.RelationshipRecord, error)
	Incubate(ctx context.Context, incubatorID int) (domain.EggIncubation, error)
	ExportSnapshot() *domain.Snapshot
	ImportSnapshot(ctx context.Context, s *domain.Snapshot) error
	Save(ctx context.Context) error
	Load(ctx context.Context) error
	SaveSlot() string
}

// Clock is the game clock
type Clock interface {
	Now() domain.Timestamp
	MinutesPerTick() int
	AdvanceOneUnit(ctx context.Context) error
	Skip(ctx context.Context, target domain.Timestamp) error
}

// TickControl pauses and resumes real-time ticking
type TickControl interface {
	Pause()
	Resume()
	Paused() bool
}

// Sleeper is the sleep state machine
type Sleeper interface {
	State() sleep.State
	Request(ctx context.Context) error
	Start(ctx context.Context) (string, error)
	Cancel() error
	OnFadeOutComplete() error
	Wait(ctx context.Context) (sleep.Result, error)
}

// SaveLister enumerates stored save slots
type SaveLister interface {
	List(ctx context.Context) ([]domain.SaveRecord, error)
}

// GameDeps are the collaborators of GameHandlers. Ticks and Saves may be nil.
type GameDeps struct {
	Executor Executor
	World    World
	Clock    Clock
	Ticks    TickControl
	Sleep    Sleeper
	Saves    SaveLister
}

// GameHandlers serves the world API
type GameHandlers struct {
	GameDeps
}

// NewGameHandlers creates the world API handlers
func NewGameHandlers(deps GameDeps) *GameHandlers {
	return &GameHandlers{GameDeps: deps}
}
