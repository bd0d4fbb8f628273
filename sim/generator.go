package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// PoissonGenerator emits point events according to an inhomogeneous
// Poisson process with a piecewise-constant rate function. The rate
// schedule is configured through Configure (bulk replace) or
// MergeAndApply (streamed append); the kernel drives the generator
// through Update in contiguous step blocks.
//
// The generator keeps its current rate one step ahead of each
// breakpoint's effective time: delivery downstream lags decisions by one
// step, so the rate must already hold its future value when the decision
// for the preceding step is taken.
//
// Configuration and stepping must never run concurrently on the same
// instance; the kernel's single-goroutine ownership is the contract.
type PoissonGenerator struct {
	id       string
	schedule RateSchedule
	window   ActivationWindow
	receiver Receiver
	sampler  EventSampler

	// runtime buffer, reset whenever the schedule is replaced
	idx  int     // cursor: next breakpoint not yet applied
	rate float64 // current rate in events/ms
}

// NewPoissonGenerator creates a generator with an empty schedule. Events
// that survive resolution are forwarded to recv.
func NewPoissonGenerator(id string, window ActivationWindow, recv Receiver) *PoissonGenerator {
	return &PoissonGenerator{
		id:       id,
		window:   window,
		receiver: recv,
	}
}

// ID returns the generator's identifier.
func (g *PoissonGenerator) ID() string {
	return g.id
}

// CurrentRate returns the rate currently in force, in events/ms. It
// changes only at look-ahead boundaries inside Update.
func (g *PoissonGenerator) CurrentRate() float64 {
	return g.rate
}

// Configure applies a bulk configuration update. The replacement is
// all-or-nothing: on any validation error the prior schedule is untouched.
// A successful breakpoint replacement resets the schedule cursor.
func (g *PoissonGenerator) Configure(k *Kernel, cfg ScheduleConfig) error {
	replaced, err := g.schedule.Set(k, cfg)
	if err != nil {
		return fmt.Errorf("generator %s: %w", g.id, err)
	}
	if replaced {
		g.idx = 0
		logrus.Debugf("generator %s: schedule replaced, %d breakpoints", g.id, g.schedule.Len())
	}
	return nil
}

// Snapshot returns the current configuration: schedule re-expanded to raw
// (ms, events/s) pairs plus the alignment policy flag.
func (g *PoissonGenerator) Snapshot(k *Kernel) ScheduleConfig {
	times, rates := g.schedule.Expand(k.Grid())
	flag := g.schedule.AllowOffgrid()
	return ScheduleConfig{
		RateTimes:         times,
		RateValues:        rates,
		AllowOffgridTimes: &flag,
	}
}

// MergeAndApply appends streamed breakpoints to the schedule. pairs is a
// flat sequence [time, rate, time, rate, ...] in (ms, events/s); an odd
// length fails ErrOddPairCount. The existing schedule is re-expanded to
// raw pairs, the new pairs are concatenated, and the whole candidate goes
// through Configure: either the entire merged schedule validates and
// replaces the old one, or the call fails and nothing changes.
func (g *PoissonGenerator) MergeAndApply(k *Kernel, pairs []float64) error {
	if len(pairs) == 0 {
		return nil
	}
	if len(pairs)%2 != 0 {
		return fmt.Errorf("generator %s: %w: got %d values", g.id, ErrOddPairCount, len(pairs))
	}

	times, rates := g.schedule.Expand(k.Grid())
	for i := 0; i < len(pairs); i += 2 {
		times = append(times, pairs[i])
		rates = append(rates, pairs[i+1])
	}
	return g.Configure(k, ScheduleConfig{RateTimes: times, RateValues: rates})
}

// PreRun caches the step duration on the sampler before stepping begins.
func (g *PoissonGenerator) PreRun(k *Kernel) {
	g.sampler.PreRun(k.Grid())
}

// Update is the step engine for the block [from, to) relative to origin.
// It catches the cursor up past breakpoints at or before the block start,
// applies each breakpoint's rate one step ahead of its effective time,
// and posts an emission candidate for every step where the rate is
// positive and the activation window is open. The cursor never moves
// backwards and every step is visited exactly once across the kernel's
// call sequence.
func (g *PoissonGenerator) Update(k *Kernel, origin, from, to int64) {
	if len(g.schedule.steps) != len(g.schedule.rates) {
		panic(fmt.Sprintf("generator %s: schedule corrupted: %d times vs %d rates",
			g.id, len(g.schedule.steps), len(g.schedule.rates)))
	}

	// Skip any times in the past. Since candidates are posted proactively,
	// the cursor must point to times in the future. This absorbs blocks
	// during which the device was not advanced.
	first := origin + from
	for g.idx < g.schedule.Len() && g.schedule.StepAt(g.idx) <= first {
		g.idx++
	}

	for offs := from; offs < to; offs++ {
		cur := origin + offs

		// Keep the rate up to date one step ahead of its effective time.
		if g.idx < g.schedule.Len() && g.schedule.StepAt(g.idx) == cur+1 {
			g.rate = g.schedule.RateAt(g.idx) / 1000.0 // events/s -> events/ms
			g.idx++
		}

		if cand, ok := g.sampler.Decide(cur, g.rate, g.window.Active(cur)); ok {
			k.Post(&candidateEvent{time: cur, gen: g, cand: cand})
		}
	}
}

// resolve is the phase-2 half of the emission protocol, invoked when the
// kernel dispatches a candidate. A zero multiplicity suppresses the
// candidate; anything else is forwarded to the receiver.
func (g *PoissonGenerator) resolve(k *Kernel, c Candidate) {
	n := g.sampler.Resolve(c, k.RNG().ForSubsystem(SubsystemGenerator(g.id)))
	if n > 0 {
		g.receiver.Handle(SpikeEvent{
			GeneratorID:  g.id,
			Step:         c.Step,
			TimeMs:       k.Grid().Ms(c.Step),
			Multiplicity: n,
		})
	}
}
