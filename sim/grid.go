package sim

import (
	"fmt"
	"math"
)

// ticsPerMs is the sub-step time base used for exact grid arithmetic.
// Continuous times are snapped to tics once on entry; all alignment
// checks after that are integer comparisons.
const ticsPerMs = 1000

// Grid is the step-grid time authority for one simulation. It converts
// continuous millisecond instants to discrete step indices and answers
// alignment queries. The resolution is fixed for the Grid's lifetime;
// schedules aligned under one Grid must be rebuilt if the caller switches
// to another.
type Grid struct {
	ticsPerStep int64
}

// NewGrid creates a Grid with the given step resolution in milliseconds.
// The resolution must be a positive multiple of the tic base (0.001 ms).
func NewGrid(resolutionMs float64) (Grid, error) {
	tics := resolutionMs * ticsPerMs
	rounded := math.Round(tics)
	if rounded < 1 || math.Abs(tics-rounded) > 1e-9*math.Abs(tics) {
		return Grid{}, fmt.Errorf("resolution %v ms is not representable at %d tics/ms", resolutionMs, int64(ticsPerMs))
	}
	return Grid{ticsPerStep: int64(rounded)}, nil
}

// StepMs returns the duration of one step in milliseconds.
func (g Grid) StepMs() float64 {
	return float64(g.ticsPerStep) / ticsPerMs
}

// Tics converts a continuous time in ms to tics, rounding to the nearest tic.
func (g Grid) Tics(ms float64) int64 {
	return int64(math.Round(ms * ticsPerMs))
}

// Aligned reports whether a tic count falls exactly on a step boundary.
func (g Grid) Aligned(tics int64) bool {
	return tics%g.ticsPerStep == 0
}

// Step returns the step index containing a grid-aligned tic count.
// Callers must check Aligned first; for off-grid tics use Stamp.
func (g Grid) Step(tics int64) int64 {
	return tics / g.ticsPerStep
}

// Stamp returns the index of the first step boundary at or after tics,
// i.e. it rounds an off-grid instant up to the end of its containing step.
func (g Grid) Stamp(tics int64) int64 {
	if tics <= 0 {
		return 0
	}
	return (tics + g.ticsPerStep - 1) / g.ticsPerStep
}

// Ms returns the continuous time in milliseconds of a step boundary.
func (g Grid) Ms(step int64) float64 {
	return float64(step) * g.StepMs()
}
