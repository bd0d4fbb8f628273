package sim

import (
	"math"
	"testing"
)

func TestDecide_DeterministicGating(t *testing.T) {
	var s EventSampler

	tests := []struct {
		name   string
		rate   float64
		active bool
		want   bool
	}{
		{"positive rate, active", 0.005, true, true},
		{"positive rate, inactive", 0.005, false, false},
		{"zero rate, active", 0, true, false},
		{"negative rate, active", -1, true, false},
		{"zero rate, inactive", 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand, ok := s.Decide(7, tt.rate, tt.active)
			if ok != tt.want {
				t.Errorf("Decide = %v, want %v", ok, tt.want)
			}
			if ok && (cand.Step != 7 || cand.Rate != tt.rate) {
				t.Errorf("candidate = %+v, want step 7 rate %v", cand, tt.rate)
			}
		})
	}
}

func TestResolve_SuppressionMatchesPoissonZeroMass(t *testing.T) {
	// GIVEN a sampler with h = 0.1ms and a candidate rate of 5 events/ms,
	// so the per-step mean is r*h = 0.5
	g, err := NewGrid(0.1)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	var s EventSampler
	s.PreRun(g)
	stream := NewPartitionedRNG(NewSimulationKey(42)).ForSubsystem(SubsystemGenerator("g0"))
	cand := Candidate{Step: 1, Rate: 5.0}

	// WHEN resolving many candidates
	n := 20000
	zeros := 0
	var sum int64
	for i := 0; i < n; i++ {
		m := s.Resolve(cand, stream)
		if m < 0 {
			t.Fatalf("negative multiplicity %d", m)
		}
		if m == 0 {
			zeros++
		}
		sum += m
	}

	// THEN the suppressed fraction converges to exp(-r*h)
	gotZero := float64(zeros) / float64(n)
	wantZero := math.Exp(-0.5)
	if math.Abs(gotZero-wantZero) > 0.02 {
		t.Errorf("zero fraction = %.4f, want ≈ %.4f (within 0.02)", gotZero, wantZero)
	}

	// and the empirical mean matches r*h
	gotMean := float64(sum) / float64(n)
	if math.Abs(gotMean-0.5)/0.5 > 0.05 {
		t.Errorf("mean multiplicity = %.4f, want ≈ 0.5 (within 5%%)", gotMean)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	g, _ := NewGrid(0.1)
	var s1, s2 EventSampler
	s1.PreRun(g)
	s2.PreRun(g)
	st1 := NewPartitionedRNG(NewSimulationKey(7)).ForSubsystem(SubsystemGenerator("g0"))
	st2 := NewPartitionedRNG(NewSimulationKey(7)).ForSubsystem(SubsystemGenerator("g0"))

	cand := Candidate{Step: 3, Rate: 2.0}
	for i := 0; i < 100; i++ {
		if a, b := s1.Resolve(cand, st1), s2.Resolve(cand, st2); a != b {
			t.Fatalf("draw %d: %d vs %d, want identical", i, a, b)
		}
	}
}
