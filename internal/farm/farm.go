// Package farm stores farmland and crops in arenas addressed by stable ids
// and applies their per-tick transition rules.
package farm

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/osse101/farmstead/internal/domain"
	"github.com/osse101/farmstead/internal/logger"
)

// SpeciesCatalog resolves crop species
type SpeciesCatalog interface {
	Species(id string) (domain.CropSpecies, error)
}

// Transition records a crop whose lifecycle state changed during a tick
type Transition struct {
	Crop domain.Crop
	From domain.CropState
}

// Farm owns the land plot and crop arenas. Plots are indexed by their id;
// crops refer to plots by id only.
//
// Farm is not safe for concurrent use. Its owner serializes access.
type Farm struct {
	rules       Rules
	catalog     SpeciesCatalog
	initialized bool
	plots       []domain.LandPlot
	crops       []domain.Crop
}

// New creates an uninitialized farm
func New(rules Rules, catalog SpeciesCatalog) *Farm {
	return &Farm{rules: rules, catalog: catalog}
}

// Rules returns the transition tuning
func (f *Farm) Rules() Rules {
	return f.rules
}

// Initialized reports whether farm data exists yet
func (f *Farm) Initialized() bool {
	return f.initialized
}

// Init creates n untilled plots if the farm has no data yet
func (f *Farm) Init(ctx context.Context, n int) {
	if f.initialized || n <= 0 {
		return
	}
	f.plots = make([]domain.LandPlot, n)
	for i := range f.plots {
		f.plots[i] = domain.LandPlot{ID: i, Status: domain.LandStatusSoil, Obstacle: domain.ObstacleNone}
	}
	f.crops = nil
	f.initialized = true
	logger.FromContext(ctx).Info(LogMsgFarmInitialized, "plots", n)
}

// Plots returns a copy of the land plots
func (f *Farm) Plots() []domain.LandPlot {
	return append(make([]domain.LandPlot, 0, len(f.plots)), f.plots...)
}

// Crops returns a copy of the planted crops
func (f *Farm) Crops() []domain.Crop {
	return append(make([]domain.Crop, 0, len(f.crops)), f.crops...)
}

// Replace swaps both arenas wholesale. An empty plot list leaves the farm
// uninitialized. Callers validate the data first; see Validate.
func (f *Farm) Replace(plots []domain.LandPlot, crops []domain.Crop) {
	f.plots = append([]domain.LandPlot(nil), plots...)
	f.crops = append([]domain.Crop(nil), crops...)
	f.initialized = len(plots) > 0
}

// Validate checks that plots are indexed by id and every crop points at an
// existing plot with a known species, at most one crop per plot
func (f *Farm) Validate(plots []domain.LandPlot, crops []domain.Crop) error {
	for i, p := range plots {
		if p.ID != i {
			return fmt.Errorf("%w: land plot at index %d has id %d", domain.ErrDeserializationMismatch, i, p.ID)
		}
		if !p.LastWatered.Valid() {
			return fmt.Errorf("%w: land plot %d watered at invalid time", domain.ErrDeserializationMismatch, p.ID)
		}
	}
	occupied := make(map[int]bool, len(crops))
	for i, c := range crops {
		if c.PlotID < 0 || c.PlotID >= len(plots) {
			return fmt.Errorf("%w: crop %d references missing plot %d", domain.ErrDeserializationMismatch, i, c.PlotID)
		}
		if occupied[c.PlotID] {
			return fmt.Errorf("%w: plot %d has more than one crop", domain.ErrDeserializationMismatch, c.PlotID)
		}
		occupied[c.PlotID] = true
		if f.catalog != nil {
			if _, err := f.catalog.Species(c.Species); err != nil {
				return fmt.Errorf("%w: crop %d: %w", domain.ErrDeserializationMismatch, i, err)
			}
		}
	}
	return nil
}

// Advance applies one tick to every crop that is not wilted: first the
// owning plot's clock rule, then growth on watered land or decay otherwise.
// Missing farm data and an empty crop list are no-ops.
func (f *Farm) Advance(ts domain.Timestamp) ([]Transition, error) {
	if !f.initialized || len(f.crops) == 0 {
		return nil, nil
	}

	var transitions []Transition
	var errs []error
	for i := range f.crops {
		crop := &f.crops[i]
		if crop.IsWilted() {
			continue
		}
		plot := &f.plots[crop.PlotID]
		f.rules.UpdateLand(plot, ts)

		var before domain.CropState
		if plot.Status == domain.LandStatusWatered {
			sp, err := f.catalog.Species(crop.Species)
			if err != nil {
				errs = append(errs, fmt.Errorf("crop on plot %d: %w", crop.PlotID, err))
				continue
			}
			before = f.rules.Grow(crop, sp)
		} else {
			before = f.rules.Wither(crop)
		}

		if crop.State != before {
			transitions = append(transitions, Transition{Crop: *crop, From: before})
		}
	}

	if len(errs) > 0 {
		return transitions, fmt.Errorf("farm update at %s: %w", ts, errors.Join(errs...))
	}
	return transitions, nil
}

// Summary counts plots and crops by state
func (f *Farm) Summary() domain.FarmSummary {
	s := domain.FarmSummary{Initialized: f.initialized, Plots: len(f.plots), Crops: len(f.crops)}
	for _, p := range f.plots {
		if p.Status == domain.LandStatusWatered {
			s.Watered++
		}
	}
	for _, c := range f.crops {
		switch c.State {
		case domain.CropStateMature:
			s.Mature++
		case domain.CropStateWilted:
			s.Wilted++
		}
	}
	return s
}

func (f *Farm) plot(id int) (*domain.LandPlot, error) {
	if !f.initialized {
		return nil, domain.ErrFarmNotInitialized
	}
	if id < 0 || id >= len(f.plots) {
		return nil, fmt.Errorf("%w: %d", domain.ErrPlotNotFound, id)
	}
	return &f.plots[id], nil
}

func (f *Farm) cropIndex(plotID int) int {
	return slices.IndexFunc(f.crops, func(c domain.Crop) bool { return c.PlotID == plotID })
}
