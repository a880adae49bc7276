// Package leaktest provides goroutine and allocation leak checks for
// tests of long-lived components (lock manager, event bus).
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// GoroutineChecker helps detect goroutine leaks
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker creates a new checker and records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	// Allow time for background goroutines to stabilize
	runtime.Gosched()
	time.Sleep(10 * time.Millisecond)

	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check verifies that goroutine count hasn't increased significantly
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	// Allow time for goroutines to finish
	runtime.Gosched()
	time.Sleep(50 * time.Millisecond)
	runtime.GC()
	time.Sleep(50 * time.Millisecond)

	after := runtime.NumGoroutine()
	leaked := after - g.before

	if leaked > tolerance {
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, leaked, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and fails the test if it left any
// goroutines behind.
func CheckNoGoroutineLeak(t *testing.T, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// CheckBoundedMemoryGrowth runs fn and fails the test if retained heap
// grew by more than maxGrowthMB. Used to catch unbounded per-key state
// (named locks, cache entries) accumulating across operations.
func CheckBoundedMemoryGrowth(t *testing.T, maxGrowthMB float64, fn func()) {
	t.Helper()

	runtime.GC()
	time.Sleep(10 * time.Millisecond)
	var before runtime.MemStats
	runtime.ReadMemStats(&before)

	fn()

	runtime.GC()
	time.Sleep(50 * time.Millisecond)
	var after runtime.MemStats
	runtime.ReadMemStats(&after)

	growthMB := (float64(after.Alloc) - float64(before.Alloc)) / 1024 / 1024
	if growthMB > maxGrowthMB {
		t.Errorf("Potential memory leak: growth=%.2fMB (max=%.2fMB)", growthMB, maxGrowthMB)
	}
}
