package fetch

import "sync/atomic"

// Guard lets one run of a job proceed at a time. Overlapping calls are
// dropped, not queued.
type Guard struct {
	busy atomic.Bool
}

// TryRun calls fn unless a previous call is still running.
// It reports whether fn ran.
func (g *Guard) TryRun(fn func()) bool {
	if !g.busy.CompareAndSwap(false, true) {
		return false
	}
	defer g.busy.Store(false)
	fn()
	return true
}

// Busy reports whether a run is in progress.
func (g *Guard) Busy() bool {
	return g.busy.Load()
}
