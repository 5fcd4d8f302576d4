// Package leaktest checks that tests stop the goroutines they start.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// DefaultSettleTimeout is how long stopped goroutines get to exit
const DefaultSettleTimeout = time.Second

// GoroutineChecker records the goroutine count at creation
type GoroutineChecker struct {
	t      testing.TB
	before int
}

// NewGoroutineChecker snapshots the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{t: t, before: runtime.NumGoroutine()}
}

// Check fails the test when, after waiting up to timeout, more than
// tolerance goroutines remain above the snapshot
func (g *GoroutineChecker) Check(tolerance int, timeout time.Duration) {
	g.t.Helper()
	if leaked := settle(g.before+tolerance, timeout) - g.before; leaked > tolerance {
		g.t.Errorf("goroutine leak: before=%d, leaked=%d (tolerance=%d)", g.before, leaked, tolerance)
	}
}

// Goroutines snapshots the goroutine count and checks it again when the
// test finishes. Register it before any cleanup that stops workers, so it
// runs after them.
func Goroutines(t testing.TB, tolerance int) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	t.Cleanup(func() { checker.Check(tolerance, DefaultSettleTimeout) })
}

// settle polls until the goroutine count is at most target or the timeout
// passes, and returns the last count
func settle(target int, timeout time.Duration) int {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target || time.Now().After(deadline) {
			return n
		}
		time.Sleep(10 * time.Millisecond)
	}
}
