// Package leaktest provides goroutine-leak detection for tests.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// GoroutineChecker records a baseline goroutine count at construction and
// reports a failure if later checks find the count grew past a tolerance.
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker takes the baseline. Call it before starting the work
// under test.
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	// Let background goroutines from other tests settle first.
	runtime.Gosched()
	time.Sleep(10 * time.Millisecond)

	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check fails the test if more than tolerance goroutines outlived the work.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	runtime.Gosched()
	time.Sleep(50 * time.Millisecond)
	runtime.GC()
	time.Sleep(50 * time.Millisecond)

	after := runtime.NumGoroutine()
	if leaked := after - g.before; leaked > tolerance {
		g.t.Errorf("goroutine leak: before=%d after=%d leaked=%d (tolerance=%d)",
			g.before, after, leaked, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and asserts no goroutines leaked.
func CheckNoGoroutineLeak(t *testing.T, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}
