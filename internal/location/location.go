// Package location tracks which scene the player is in.
package location

import (
	"fmt"
	"sync"

	"github.com/osse101/farmstead/internal/domain"
)

// Tracker holds the player's current location
type Tracker struct {
	mu      sync.RWMutex
	current domain.Location
}

// NewTracker creates a tracker starting at start
func NewTracker(start domain.Location) *Tracker {
	if !start.Valid() {
		start = domain.LocationHome
	}
	return &Tracker{current: start}
}

// Current returns the current location
func (t *Tracker) Current() domain.Location {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// IsOnFarm reports whether the player is on the farm scene
func (t *Tracker) IsOnFarm() bool {
	return t.Current() == domain.LocationFarm
}

// MoveTo changes the current location and returns the previous one
func (t *Tracker) MoveTo(loc domain.Location) (domain.Location, error) {
	if !loc.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownLocation, loc)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	prev := t.current
	t.current = loc
	return prev, nil
}
