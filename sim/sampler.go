package sim

import "gonum.org/v1/gonum/stat/distuv"

// Candidate records a phase-1 emission decision awaiting stochastic
// resolution: "an emission may occur at Step, with the rate in force then".
type Candidate struct {
	Step int64
	Rate float64 // events/ms at decision time
}

// EventSampler implements the two-phase decide/resolve protocol. Decide is
// cheap and deterministic and runs inside the step engine; Resolve draws
// the event multiplicity and runs at delivery time, on the random stream
// owned by the delivering context. Splitting the two keeps draws off the
// hot path for candidates that activation gating filters out, and keeps
// stream ownership with the deliverer.
type EventSampler struct {
	stepMs float64 // step duration h in ms, cached at pre-run
}

// PreRun caches the step duration. Called once before stepping begins.
func (s *EventSampler) PreRun(g Grid) {
	s.stepMs = g.StepMs()
}

// Decide is the deterministic phase. A candidate exists iff the current
// rate is positive and the device is active at the step. No randomness is
// consumed.
func (s *EventSampler) Decide(step int64, ratePerMs float64, active bool) (Candidate, bool) {
	if ratePerMs <= 0 || !active {
		return Candidate{}, false
	}
	return Candidate{Step: step, Rate: ratePerMs}, true
}

// Resolve is the stochastic phase: it draws the multiplicity from a
// Poisson law with mean rate*h on the given stream. A zero draw means the
// candidate is suppressed and nothing must be forwarded.
func (s *EventSampler) Resolve(c Candidate, stream *Stream) int64 {
	dist := distuv.Poisson{Lambda: c.Rate * s.stepMs, Src: stream.Source()}
	return int64(dist.Rand())
}
