package sim

// Event is a unit of work on the kernel's delivery queue.
// Each event has a Timestamp (in steps) and an Execute method invoked when
// the kernel dispatches it.
type Event interface {
	Timestamp() int64
	Execute(k *Kernel)
}

// SpikeEvent is a delivered point-event bundle. Multiplicity is the count
// of coincident events folded into the bundle and is always >= 1; a zero
// draw is suppressed before delivery.
type SpikeEvent struct {
	GeneratorID  string
	Step         int64
	TimeMs       float64
	Multiplicity int64
}

// Receiver consumes delivered spike events.
type Receiver interface {
	Handle(ev SpikeEvent)
}

// candidateEvent carries a phase-1 emission decision to delivery time.
// Execute performs the phase-2 stochastic resolution on the generator.
type candidateEvent struct {
	time int64
	gen  *PoissonGenerator
	cand Candidate
}

func (e *candidateEvent) Timestamp() int64 {
	return e.time
}

func (e *candidateEvent) Execute(k *Kernel) {
	e.gen.resolve(k, e.cand)
}
