package sim

import "testing"

// newTestKernel builds a kernel at 0.1ms resolution with a fixed seed.
func newTestKernel(t *testing.T) *Kernel {
	t.Helper()
	k, err := NewKernel(KernelConfig{ResolutionMs: 0.1, Seed: 42})
	if err != nil {
		t.Fatalf("NewKernel: %v", err)
	}
	return k
}

// collectingReceiver records every delivered spike event.
type collectingReceiver struct {
	events []SpikeEvent
}

func (r *collectingReceiver) Handle(ev SpikeEvent) {
	r.events = append(r.events, ev)
}

func (r *collectingReceiver) totalMultiplicity() int64 {
	var total int64
	for _, ev := range r.events {
		total += ev.Multiplicity
	}
	return total
}

func boolPtr(b bool) *bool { return &b }
