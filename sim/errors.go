package sim

import "errors"

// Validation errors raised by the configuration surfaces. Every failure is
// reported synchronously at the call site and leaves the generator's prior
// schedule untouched. Callers match with errors.Is.
var (
	// ErrNotInFuture: a rate time is not strictly after the current simulation time.
	ErrNotInFuture = errors.New("rate time must lie strictly in the future")

	// ErrNotGridAligned: a rate time does not fall on the step grid and
	// off-grid times are not allowed.
	ErrNotGridAligned = errors.New("rate time is not representable in the current resolution")

	// ErrNonMonotonic: aligned rate times are not strictly increasing in
	// the order given. Inputs are never sorted on the caller's behalf.
	ErrNonMonotonic = errors.New("rate times must be strictly increasing")

	// ErrSizeMismatch: rate_times and rate_values have different lengths.
	ErrSizeMismatch = errors.New("rate times and values must have the same size")

	// ErrAsymmetricUpdate: one of rate_times/rate_values was supplied
	// without the other.
	ErrAsymmetricUpdate = errors.New("rate times and values must be reset together")

	// ErrOffgridFlagLocked: allow_offgrid_times can only change together
	// with new rate times, or while no rate times are set. Flipping it
	// under an anchored schedule would silently reinterpret the old times.
	ErrOffgridFlagLocked = errors.New("allow_offgrid_times can only be set together with rate times or if no rate times have been set")

	// ErrOddPairCount: a streamed update did not contain an even number of
	// values, i.e. it is not a flat sequence of (time, rate) pairs.
	ErrOddPairCount = errors.New("streamed rate data must hold an even number of values [(time, rate) pairs]")
)
