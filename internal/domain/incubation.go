package domain

// EggIncubation is an egg sitting in an incubator
type EggIncubation struct {
	IncubatorID      int `json:"incubator_id"`
	MinutesRemaining int `json:"minutes_remaining"`
}

// Hatched reports whether the egg finished incubating
func (e EggIncubation) Hatched() bool {
	return e.MinutesRemaining <= 0
}
