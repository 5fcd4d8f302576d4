// Package world coordinates the per-tick advancement of the persisted world
// and owns snapshot export and import.
//
// A Coordinator is not safe for concurrent use. Every call, including
// OnTick driven by the clock, is expected to run on the world's single
// writer (a one-worker pool).
package world

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/farmstead/internal/domain"
	"github.com/osse101/farmstead/internal/event"
	"github.com/osse101/farmstead/internal/farm"
	"github.com/osse101/farmstead/internal/logger"
)

// Clock is the authoritative game time
type Clock interface {
	Now() domain.Timestamp
	Load(ts domain.Timestamp) error
}

// Shipper owns the shipping bin
type Shipper interface {
	ShipItems(ctx context.Context) error
	Add(itemID string, quantity int) error
	Pending() map[string]int
}

// Incubator owns the incubating eggs
type Incubator interface {
	UpdateEggs(ctx context.Context) error
	Incubate(ctx context.Context, incubatorID int) (domain.EggIncubation, error)
	Eggs() []domain.EggIncubation
	Validate(eggs []domain.EggIncubation) error
	Load(eggs []domain.EggIncubation) error
}

// Inventory owns the player's slots
type Inventory interface {
	Slots(t domain.InventoryType) []domain.ItemSlot
	Equipped(t domain.InventoryType) domain.ItemSlot
	View() domain.InventoryView
	Validate(tools []domain.ItemSlot, equippedTool domain.ItemSlot, items []domain.ItemSlot, equippedItem domain.ItemSlot) error
	Load(tools []domain.ItemSlot, equippedTool domain.ItemSlot, items []domain.ItemSlot, equippedItem domain.ItemSlot) error
	Add(itemID string, quantity int) error
	Remove(itemID string, quantity int) error
	Count(itemID string) int
	Equip(t domain.InventoryType, index int) error
}

// Wallet owns the player's money
type Wallet interface {
	Money() int
	Earn(amount int) error
	Spend(amount int) error
	Load(money int) error
}

// Relationships owns the NPC relationship records
type Relationships interface {
	Records() []domain.RelationshipRecord
	Validate(records []domain.RelationshipRecord) error
	Load(records []domain.RelationshipRecord) error
	ResetDaily() int
	Talk(npcID string) (domain.RelationshipRecord, error)
	Gift(npcID string) (domain.RelationshipRecord, error)
}

// Location reports and changes the player's scene
type Location interface {
	Current() domain.Location
	IsOnFarm() bool
	MoveTo(loc domain.Location) (domain.Location, error)
}

// Catalog resolves static game data
type Catalog interface {
	SpeciesForSeed(seedItem string) (domain.CropSpecies, error)
	Item(id string) (domain.ItemDefinition, error)
}

// Store persists snapshots by slot
type Store interface {
	Save(ctx context.Context, slot string, snapshot *domain.Snapshot) error
	Load(ctx context.Context, slot string) (*domain.Snapshot, error)
}

// Config tunes the coordinator
type Config struct {
	ShipHour  int
	SaveSlot  string
	PlotCount int
}

// Deps are the subsystems the coordinator drives. Publisher may be nil.
type Deps struct {
	Clock         Clock
	Farm          *farm.Farm
	Shipper       Shipper
	Incubator     Incubator
	Inventory     Inventory
	Wallet        Wallet
	Relationships Relationships
	Location      Location
	Catalog       Catalog
	Store         Store
	Publisher     event.Publisher
}

// Coordinator is the principal clock tracker. It owns the farm and the
// daily reset and holds lookups into the other subsystems.
type Coordinator struct {
	cfg Config
	Deps
}

// NewCoordinator creates a coordinator
func NewCoordinator(cfg Config, deps Deps) *Coordinator {
	if cfg.SaveSlot == "" {
		cfg.SaveSlot = domain.DefaultSaveSlot
	}
	if deps.Publisher == nil {
		deps.Publisher = event.Discard{}
	}
	return &Coordinator{cfg: cfg, Deps: deps}
}

// Name labels the coordinator in tracker logs and metrics
func (c *Coordinator) Name() string {
	return TrackerName
}

// OnTick runs, in this order: the shipping payout check, the farm
// fast-forward, incubation and the midnight reset. A failing step is
// logged and reported but does not stop the steps after it.
func (c *Coordinator) OnTick(ctx context.Context, ts domain.Timestamp) error {
	var errs []error
	run := func(step string, fn func() error) {
		if err := fn(); err != nil {
			logger.FromContext(ctx).Error(LogMsgStepFailed, "step", step, "error", err, "timestamp", ts.String())
			errs = append(errs, fmt.Errorf("%s: %w", step, err))
		}
	}

	run(StepShipping, func() error { return c.updateShipping(ctx, ts) })
	run(StepFarm, func() error { return c.updateFarm(ctx, ts) })
	run(StepIncubation, func() error { return c.Incubator.UpdateEggs(ctx) })
	run(StepDailyReset, func() error { return c.dailyReset(ctx, ts) })

	return errors.Join(errs...)
}

func (c *Coordinator) updateShipping(ctx context.Context, ts domain.Timestamp) error {
	if ts.Hour != c.cfg.ShipHour || ts.Minute != 0 {
		return nil
	}
	return c.Shipper.ShipItems(ctx)
}

// updateFarm fast-forwards the stored farm while the player is away. While
// the player is on the farm the scene tracker keeps it live instead.
func (c *Coordinator) updateFarm(ctx context.Context, ts domain.Timestamp) error {
	if c.Location.IsOnFarm() {
		return nil
	}
	return c.advanceFarm(ctx, ts)
}

func (c *Coordinator) advanceFarm(ctx context.Context, ts domain.Timestamp) error {
	transitions, err := c.Farm.Advance(ts)
	for _, tr := range transitions {
		c.publishCropTransition(ctx, tr, ts)
	}
	return err
}

func (c *Coordinator) publishCropTransition(ctx context.Context, tr farm.Transition, ts domain.Timestamp) {
	logger.FromContext(ctx).Debug(LogMsgCropTransition,
		"plot_id", tr.Crop.PlotID,
		"species", tr.Crop.Species,
		"from", tr.From,
		"to", tr.Crop.State)

	switch tr.Crop.State {
	case domain.CropStateMature:
		c.publish(ctx, event.NewCropEvent(event.CropMatured, tr.Crop, ts))
	case domain.CropStateWilted:
		c.publish(ctx, event.NewCropEvent(event.CropWilted, tr.Crop, ts))
	}
}

func (c *Coordinator) dailyReset(ctx context.Context, ts domain.Timestamp) error {
	if !ts.IsMidnight() {
		return nil
	}
	cleared := c.Relationships.ResetDaily()
	logger.FromContext(ctx).Info(LogMsgDayReset, "day", ts.Day, "relationships", cleared)
	c.publish(ctx, event.NewDayStartedEvent(ts.Day, cleared))
	return nil
}

func (c *Coordinator) publish(ctx context.Context, evt event.Event) {
	if err := c.Publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)
	}
}

// SceneTracker returns the tracker that stands in for the live farm scene:
// it advances the farm only while the player is on it
func (c *Coordinator) SceneTracker() *SceneTracker {
	return &SceneTracker{c: c}
}

// SceneTracker keeps the farm live while the player is on it
type SceneTracker struct {
	c *Coordinator
}

// Name labels the tracker in logs and metrics
func (s *SceneTracker) Name() string {
	return SceneName
}

// OnTick advances the farm when the player is on the farm
func (s *SceneTracker) OnTick(ctx context.Context, ts domain.Timestamp) error {
	if !s.c.Location.IsOnFarm() {
		return nil
	}
	return s.c.advanceFarm(ctx, ts)
}
