// Package clock owns the authoritative game time and broadcasts every
// elementary tick to registered trackers.
package clock

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/osse101/farmstead/internal/domain"
	"github.com/osse101/farmstead/internal/logger"
	"github.com/osse101/farmstead/internal/metrics"
	"github.com/osse101/farmstead/internal/worker"
)

// Tracker reacts to time passing. OnTick receives the timestamp the clock
// holds immediately after the tick.
type Tracker interface {
	OnTick(ctx context.Context, ts domain.Timestamp) error
}

// TrackerFunc adapts a function to the Tracker interface
type TrackerFunc func(ctx context.Context, ts domain.Timestamp) error

// OnTick calls f(ctx, ts)
func (f TrackerFunc) OnTick(ctx context.Context, ts domain.Timestamp) error {
	return f(ctx, ts)
}

// Namer is implemented by trackers that want a stable label in logs and metrics
type Namer interface {
	Name() string
}

// Clock holds the current game time. Advances are expected to come from a
// single goroutine (the world's single-writer pool); the lock only makes Now
// safe to call from readers elsewhere.
type Clock struct {
	mu       sync.RWMutex
	now      domain.Timestamp
	step     int
	trackers []Tracker
}

// Option configures a Clock
type Option func(*Clock)

// WithMinutesPerTick sets the elementary advance in minutes. Only steps that
// divide an hour are accepted, so every hour boundary and every midnight is a
// tick; anything else keeps the default.
func WithMinutesPerTick(minutes int) Option {
	return func(c *Clock) {
		if domain.ValidTickSize(minutes) {
			c.step = minutes
		}
	}
}

// New creates a clock starting at start, floored onto the tick grid
func New(start domain.Timestamp, opts ...Option) *Clock {
	c := &Clock{step: DefaultMinutesPerTick}
	for _, opt := range opts {
		opt(c)
	}
	c.now = domain.NewTimestamp(start.Day, start.Hour, start.Minute).FloorToGrid(c.step)
	metrics.GameDay.Set(float64(c.now.Day))
	return c
}

// Now returns the current game time
func (c *Clock) Now() domain.Timestamp {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// MinutesPerTick returns the configured elementary advance
func (c *Clock) MinutesPerTick() int {
	return c.step
}

// Register adds a tracker to the notification list. Registering the same
// tracker twice has no effect.
func (c *Clock) Register(t Tracker) {
	if t == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, existing := range c.trackers {
		if sameTracker(existing, t) {
			return
		}
	}
	c.trackers = append(c.trackers, t)
}

// Trackers returns the number of registered trackers
func (c *Clock) Trackers() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.trackers)
}

// Load replaces the current time without notifying trackers. A time off the
// tick grid (saved under a smaller step) is floored onto it, so the next tick
// still lands on the boundary the save had not reached yet.
func (c *Clock) Load(ts domain.Timestamp) error {
	if !ts.Valid() {
		return fmt.Errorf("%w: timestamp %s out of range", domain.ErrDeserializationMismatch, ts)
	}
	aligned := ts.FloorToGrid(c.step)
	c.mu.Lock()
	c.now = aligned
	c.mu.Unlock()
	metrics.GameDay.Set(float64(aligned.Day))
	if aligned != ts {
		logger.Warn(LogMsgTimeRealigned, "saved", ts.String(), "loaded", aligned.String(), "minutes_per_tick", c.step)
	}
	logger.Debug(LogMsgTimeLoaded, "timestamp", aligned.String())
	return nil
}

// AdvanceOneUnit moves the clock forward by one tick and notifies every
// tracker in registration order. A tracker that fails or panics does not
// stop the others; its error is wrapped in domain.ErrTrackerFailed.
func (c *Clock) AdvanceOneUnit(ctx context.Context) error {
	c.mu.Lock()
	next := c.now.AddMinutes(c.step)
	if !next.After(c.now) {
		now := c.now
		c.mu.Unlock()
		return fmt.Errorf("%w: now %s", domain.ErrClockExhausted, now)
	}
	c.now = next
	ts := c.now
	trackers := make([]Tracker, len(c.trackers))
	copy(trackers, c.trackers)
	c.mu.Unlock()

	var errs []error
	for _, t := range trackers {
		if err := c.notify(ctx, t, ts); err != nil {
			errs = append(errs, err)
		}
	}

	metrics.TicksProcessed.Inc()
	if ts.IsMidnight() {
		metrics.GameDay.Set(float64(ts.Day))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w at %s: %w", domain.ErrTrackerFailed, ts, errors.Join(errs...))
	}
	return nil
}

// Skip advances tick by tick until the clock reaches target, so trackers see
// every intermediate timestamp exactly once and the last one is target. The
// target must lie on the tick grid. Tracker failures are collected and
// returned after the skip completes; they never cut it short. Cancelling ctx
// stops the skip between two ticks and returns the context error.
func (c *Clock) Skip(ctx context.Context, target domain.Timestamp) error {
	start := c.Now()
	if !target.After(start) {
		return fmt.Errorf("%w: target %s, now %s", domain.ErrInvalidSkip, target, start)
	}
	if !target.OnGrid(c.step) {
		return fmt.Errorf("%w: target %s is not a multiple of %d minutes", domain.ErrInvalidSkip, target, c.step)
	}

	log := logger.FromContext(ctx)
	log.Info(LogMsgSkipStarted, "from", start.String(), "to", target.String())

	var errs []error
	ticks := 0
	for c.Now().Before(target) {
		if err := ctx.Err(); err != nil {
			log.Warn(LogMsgSkipInterrupted, "ticks", ticks, "now", c.Now().String(), "error", err)
			metrics.SkipTicks.Observe(float64(ticks))
			return errors.Join(append(errs, fmt.Errorf("skip interrupted at %s: %w", c.Now(), err))...)
		}
		if err := c.AdvanceOneUnit(ctx); err != nil {
			if errors.Is(err, domain.ErrClockExhausted) {
				return errors.Join(append(errs, err)...)
			}
			errs = append(errs, err)
		}
		ticks++
	}

	metrics.SkipTicks.Observe(float64(ticks))
	log.Info(LogMsgSkipCompleted, "ticks", ticks, "now", c.Now().String(), "failed_ticks", len(errs))

	return errors.Join(errs...)
}

// TickJob returns a worker job that advances the clock by one tick
func (c *Clock) TickJob() worker.Job {
	return worker.JobFunc(c.AdvanceOneUnit)
}

func (c *Clock) notify(ctx context.Context, t Tracker, ts domain.Timestamp) (err error) {
	name := trackerName(t)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tracker %s panicked: %v", name, r)
			logger.FromContext(ctx).Error(LogMsgTrackerPanicked, "tracker", name, "panic", r, "timestamp", ts.String())
			metrics.TrackerFailures.WithLabelValues(name).Inc()
		}
	}()

	if err := t.OnTick(ctx, ts); err != nil {
		logger.FromContext(ctx).Error(LogMsgTrackerFailed, "tracker", name, "error", err, "timestamp", ts.String())
		metrics.TrackerFailures.WithLabelValues(name).Inc()
		return fmt.Errorf("tracker %s: %w", name, err)
	}
	return nil
}

func trackerName(t Tracker) string {
	if n, ok := t.(Namer); ok {
		return n.Name()
	}
	return reflect.TypeOf(t).String()
}

// sameTracker compares trackers without panicking on non-comparable
// dynamic types such as TrackerFunc
func sameTracker(a, b Tracker) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
