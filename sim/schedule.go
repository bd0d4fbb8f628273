package sim

import "fmt"

// RateSchedule stores the ordered breakpoints of a piecewise-constant rate
// function. Times are kept as grid-aligned step indices, rates as the raw
// configured values in events/s. The two slices always have equal length;
// times are strictly increasing post-alignment. Empty is valid (no
// scheduled change).
type RateSchedule struct {
	steps        []int64
	rates        []float64
	allowOffgrid bool
}

// Len returns the number of breakpoints.
func (s *RateSchedule) Len() int {
	return len(s.steps)
}

// StepAt returns the grid-aligned effective step of breakpoint i.
func (s *RateSchedule) StepAt(i int) int64 {
	return s.steps[i]
}

// RateAt returns the raw configured rate (events/s) of breakpoint i.
func (s *RateSchedule) RateAt(i int) float64 {
	return s.rates[i]
}

// AllowOffgrid reports the active alignment policy.
func (s *RateSchedule) AllowOffgrid() bool {
	return s.allowOffgrid
}

// Expand re-expands the schedule to raw (ms, events/s) pairs, the same
// representation the configuration surface accepts. The returned slices
// are always non-nil so they read as "present" when fed back into Set.
func (s *RateSchedule) Expand(g Grid) ([]float64, []float64) {
	times := make([]float64, len(s.steps))
	rates := make([]float64, len(s.rates))
	for i, step := range s.steps {
		times[i] = g.Ms(step)
		rates[i] = s.rates[i]
	}
	return times, rates
}

// validateAndInsert converts one raw time to its grid step under the given
// alignment policy and appends the pair to the build slices. The caller is
// responsible for the subsequent monotonicity check against the previous
// aligned entry.
func validateAndInsert(k *Kernel, offgrid bool, tMs, rate float64, steps *[]int64, rates *[]float64) error {
	if tMs <= k.NowMs() {
		return fmt.Errorf("%w: %v ms is not after the current time %v ms", ErrNotInFuture, tMs, k.NowMs())
	}

	g := k.Grid()
	tics := g.Tics(tMs)
	var step int64
	switch {
	case g.Aligned(tics):
		step = g.Step(tics)
	case offgrid:
		// round up to the end of the step containing tMs
		step = g.Stamp(tics)
	default:
		return fmt.Errorf("%w: time point %v ms", ErrNotGridAligned, tMs)
	}

	*steps = append(*steps, step)
	*rates = append(*rates, rate)
	return nil
}

// Set replaces the schedule wholesale according to cfg. The replacement is
// atomic: a candidate is built and validated in full, and only on success
// does it swap in; any failure leaves the receiver untouched. The returned
// bool reports whether the breakpoint list was replaced (the caller must
// then reset its schedule cursor).
//
// Rules, in order:
//   - AllowOffgridTimes may only change together with new rate times or
//     while the schedule is empty (ErrOffgridFlagLocked).
//   - Supplying times without values or vice versa fails (ErrAsymmetricUpdate).
//   - Neither supplied: no-op. Times supplied but empty: no-op that
//     preserves the existing breakpoints.
//   - Length mismatch fails (ErrSizeMismatch).
//   - Each time must be strictly future and grid-representable under the
//     active policy; aligned times must strictly increase in given order
//     (ErrNonMonotonic); inputs are never sorted on the caller's behalf.
func (s *RateSchedule) Set(k *Kernel, cfg ScheduleConfig) (bool, error) {
	hasTimes := cfg.RateTimes != nil
	hasRates := cfg.RateValues != nil

	offgrid := s.allowOffgrid
	if cfg.AllowOffgridTimes != nil {
		flag := *cfg.AllowOffgridTimes
		if flag != s.allowOffgrid && !hasTimes && len(s.steps) > 0 {
			return false, ErrOffgridFlagLocked
		}
		offgrid = flag
	}

	if hasTimes != hasRates {
		return false, ErrAsymmetricUpdate
	}

	if !hasTimes || len(cfg.RateTimes) == 0 {
		// nothing to rebuild; a permitted flag change still commits
		s.allowOffgrid = offgrid
		return false, nil
	}

	if len(cfg.RateTimes) != len(cfg.RateValues) {
		return false, fmt.Errorf("%w: %d times vs %d values", ErrSizeMismatch, len(cfg.RateTimes), len(cfg.RateValues))
	}

	steps := make([]int64, 0, len(cfg.RateTimes))
	rates := make([]float64, 0, len(cfg.RateValues))
	for i, t := range cfg.RateTimes {
		if err := validateAndInsert(k, offgrid, t, cfg.RateValues[i], &steps, &rates); err != nil {
			return false, err
		}
		// compare the aligned times, must be strictly increasing
		if i > 0 && steps[i-1] >= steps[i] {
			return false, fmt.Errorf("%w: %v ms does not follow %v ms after alignment",
				ErrNonMonotonic, t, cfg.RateTimes[i-1])
		}
	}

	s.steps = steps
	s.rates = rates
	s.allowOffgrid = offgrid
	return true, nil
}
