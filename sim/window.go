package sim

import (
	"fmt"
	"math"
)

// ActivationWindow bounds the steps during which a device may emit.
// Outside the window the step engine still advances its schedule cursor
// and current rate, but no emission candidates are produced.
type ActivationWindow struct {
	start int64 // first active step (inclusive)
	stop  int64 // first inactive step (exclusive)
}

// AlwaysActive returns a window that never gates emissions.
func AlwaysActive() ActivationWindow {
	return ActivationWindow{start: 0, stop: math.MaxInt64}
}

// NewActivationWindow builds a window from continuous bounds in ms.
// Bounds are stamped onto the grid (rounded up to the end of their
// containing step). stopMs <= 0 means unbounded.
func NewActivationWindow(g Grid, startMs, stopMs float64) (ActivationWindow, error) {
	if startMs < 0 {
		return ActivationWindow{}, fmt.Errorf("window start %v ms must be non-negative", startMs)
	}
	w := ActivationWindow{
		start: g.Stamp(g.Tics(startMs)),
		stop:  math.MaxInt64,
	}
	if stopMs > 0 {
		w.stop = g.Stamp(g.Tics(stopMs))
		if w.stop <= w.start {
			return ActivationWindow{}, fmt.Errorf("window [%v, %v) ms is empty at this resolution", startMs, stopMs)
		}
	}
	return w, nil
}

// Active reports whether the device may emit at the given step.
func (w ActivationWindow) Active(step int64) bool {
	return step >= w.start && step < w.stop
}
