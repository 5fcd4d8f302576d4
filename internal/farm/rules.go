package farm

import "github.com/osse101/farmstead/internal/domain"

// Rules holds the tuning of the per-tick land and crop transitions
type Rules struct {
	// WaterDuration is how many minutes watered land stays watered
	WaterDuration int
	// DecayPerTick is the health a crop loses on each dry one-minute tick.
	// Longer ticks lose it once per minute they cover.
	DecayPerTick int
	// WiltThreshold is the health at or below which a crop wilts
	WiltThreshold int
	// MinutesPerTick is the game time one tick covers. Growth, recovery and
	// decay all scale with it, so crops keep the same pace in game time.
	MinutesPerTick int
}

// DefaultRules returns the stock tuning
func DefaultRules() Rules {
	return Rules{
		WaterDuration:  domain.HoursToMinutes(DefaultWaterDurationHours),
		DecayPerTick:   DefaultDecayPerTick,
		WiltThreshold:  DefaultWiltThreshold,
		MinutesPerTick: 1,
	}
}

func (r Rules) tickMinutes() int {
	if r.MinutesPerTick < 1 {
		return 1
	}
	return r.MinutesPerTick
}

// UpdateLand applies the plot's own clock rule: watered soil dries out once
// the water duration has elapsed since it was last watered.
func (r Rules) UpdateLand(plot *domain.LandPlot, ts domain.Timestamp) {
	if plot.Status != domain.LandStatusWatered {
		return
	}
	if ts.MinutesSince(plot.LastWatered) >= int64(r.WaterDuration) {
		plot.Status = domain.LandStatusUnwatered
	}
}

// Grow advances a crop by one watered tick. Growth and health both count
// minutes; health recovers up to the species maximum. Returns the state
// before the tick.
func (r Rules) Grow(crop *domain.Crop, sp domain.CropSpecies) domain.CropState {
	before := crop.State
	if crop.IsWilted() {
		return before
	}

	crop.Health = min(crop.Health+r.tickMinutes(), max(crop.Health, sp.MaxHealth()))
	if crop.State == domain.CropStateMature {
		return before
	}

	crop.Growth += r.tickMinutes()
	required := sp.GrowthRequired()
	if crop.State == domain.CropStateSeed && crop.Growth >= required/2 {
		crop.State = domain.CropStateGrowing
	}
	if crop.State == domain.CropStateGrowing && crop.Growth >= required {
		crop.State = domain.CropStateMature
	}
	return before
}

// Wither applies one dry tick of decay. Seeds do not wither. Returns the
// state before the tick.
func (r Rules) Wither(crop *domain.Crop) domain.CropState {
	before := crop.State
	if crop.IsWilted() || crop.State == domain.CropStateSeed {
		return before
	}

	crop.Health -= r.DecayPerTick * r.tickMinutes()
	if crop.Health <= r.WiltThreshold {
		crop.State = domain.CropStateWilted
	}
	return before
}
