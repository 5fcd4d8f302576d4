// Package incubation counts eggs down to hatching, one tick at a time.
package incubation

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/osse101/farmstead/internal/domain"
	"github.com/osse101/farmstead/internal/event"
	"github.com/osse101/farmstead/internal/logger"
)

// Defaults
const (
	DefaultIncubators     = 4
	DefaultIncubationDays = 3
	DefaultHatchItem      = "chicken"

	LogMsgEggHatched     = "Egg hatched"
	LogMsgHatchDelivery  = "Failed to deliver hatchling"
	LogMsgEggIncubating  = "Egg placed in incubator"
	LogMsgPublishFailure = "Failed to publish incubation event"
)

// ItemAdder receives hatchlings
type ItemAdder interface {
	Add(itemID string, quantity int) error
}

// TimeSource reports the current game time
type TimeSource interface {
	Now() domain.Timestamp
}

// Config tunes the incubators
type Config struct {
	Incubators     int
	IncubationDays int
	MinutesPerTick int
	HatchItem      string
}

// DefaultConfig returns the stock tuning
func DefaultConfig() Config {
	return Config{
		Incubators:     DefaultIncubators,
		IncubationDays: DefaultIncubationDays,
		MinutesPerTick: 1,
		HatchItem:      DefaultHatchItem,
	}
}

// Incubator holds the eggs currently incubating
type Incubator struct {
	mu        sync.Mutex
	cfg       Config
	eggs      []domain.EggIncubation
	hatchery  ItemAdder
	publisher event.Publisher
	clock     TimeSource
}

// New creates an incubator with no eggs
func New(cfg Config, hatchery ItemAdder, publisher event.Publisher, clock TimeSource) *Incubator {
	if cfg.MinutesPerTick <= 0 {
		cfg.MinutesPerTick = 1
	}
	if publisher == nil {
		publisher = event.Discard{}
	}
	return &Incubator{cfg: cfg, hatchery: hatchery, publisher: publisher, clock: clock}
}

// Incubate places a new egg in an empty incubator
func (inc *Incubator) Incubate(ctx context.Context, incubatorID int) (domain.EggIncubation, error) {
	inc.mu.Lock()
	defer inc.mu.Unlock()

	if incubatorID < 0 || incubatorID >= inc.cfg.Incubators {
		return domain.EggIncubation{}, fmt.Errorf("%w: %d", domain.ErrIncubatorNotFound, incubatorID)
	}
	if inc.index(incubatorID) >= 0 {
		return domain.EggIncubation{}, fmt.Errorf("%w: %d", domain.ErrIncubatorOccupied, incubatorID)
	}
	egg := domain.EggIncubation{
		IncubatorID:      incubatorID,
		MinutesRemaining: domain.DaysToMinutes(inc.cfg.IncubationDays),
	}
	inc.eggs = append(inc.eggs, egg)
	logger.FromContext(ctx).Info(LogMsgEggIncubating, "incubator_id", incubatorID)
	return egg, nil
}

// UpdateEggs advances every egg by one tick and hatches the ones that are
// done. A hatchling that cannot be delivered stays in its incubator at zero
// minutes and is retried on the next tick.
func (inc *Incubator) UpdateEggs(ctx context.Context) error {
	inc.mu.Lock()
	var hatched []int
	for i := range inc.eggs {
		egg := &inc.eggs[i]
		egg.MinutesRemaining = max(egg.MinutesRemaining-inc.cfg.MinutesPerTick, 0)
		if egg.Hatched() {
			hatched = append(hatched, egg.IncubatorID)
		}
	}
	inc.mu.Unlock()

	if len(hatched) == 0 {
		return nil
	}

	log := logger.FromContext(ctx)
	ts := inc.clock.Now()
	var errs []error
	for _, id := range hatched {
		if err := inc.hatchery.Add(inc.cfg.HatchItem, 1); err != nil {
			log.Warn(LogMsgHatchDelivery, "incubator_id", id, "error", err)
			errs = append(errs, fmt.Errorf("incubator %d: %w", id, err))
			continue
		}
		inc.remove(id)
		log.Info(LogMsgEggHatched, "incubator_id", id, "timestamp", ts.String())
		if err := inc.publisher.Publish(ctx, event.NewEggHatchedEvent(id, ts)); err != nil {
			log.Warn(LogMsgPublishFailure, "error", err)
		}
	}
	return errors.Join(errs...)
}

// Eggs returns a copy of the incubating eggs
func (inc *Incubator) Eggs() []domain.EggIncubation {
	inc.mu.Lock()
	defer inc.mu.Unlock()
	return append([]domain.EggIncubation(nil), inc.eggs...)
}

// Validate checks saved eggs against the configured incubators
func (inc *Incubator) Validate(eggs []domain.EggIncubation) error {
	seen := make(map[int]bool, len(eggs))
	for _, egg := range eggs {
		if egg.IncubatorID < 0 || egg.IncubatorID >= inc.cfg.Incubators {
			return fmt.Errorf("%w: incubator %d does not exist", domain.ErrDeserializationMismatch, egg.IncubatorID)
		}
		if seen[egg.IncubatorID] {
			return fmt.Errorf("%w: incubator %d holds two eggs", domain.ErrDeserializationMismatch, egg.IncubatorID)
		}
		if egg.MinutesRemaining < 0 {
			return fmt.Errorf("%w: egg in incubator %d has negative time", domain.ErrDeserializationMismatch, egg.IncubatorID)
		}
		seen[egg.IncubatorID] = true
	}
	return nil
}

// Load replaces every egg
func (inc *Incubator) Load(eggs []domain.EggIncubation) error {
	if err := inc.Validate(eggs); err != nil {
		return err
	}
	inc.mu.Lock()
	defer inc.mu.Unlock()
	inc.eggs = append([]domain.EggIncubation(nil), eggs...)
	return nil
}

func (inc *Incubator) remove(incubatorID int) {
	inc.mu.Lock()
	defer inc.mu.Unlock()
	if i := inc.index(incubatorID); i >= 0 {
		inc.eggs = slices.Delete(inc.eggs, i, i+1)
	}
}

func (inc *Incubator) index(incubatorID int) int {
	return slices.IndexFunc(inc.eggs, func(e domain.EggIncubation) bool { return e.IncubatorID == incubatorID })
}
