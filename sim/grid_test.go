package sim

import (
	"math"
	"testing"
)

func TestNewGrid_Resolutions(t *testing.T) {
	tests := []struct {
		name         string
		resolutionMs float64
		wantErr      bool
	}{
		{"standard 0.1ms", 0.1, false},
		{"1ms", 1.0, false},
		{"tic-sized 0.001ms", 0.001, false},
		{"coarse 5ms", 5.0, false},
		{"sub-tic 0.00005ms", 0.00005, true},
		{"zero", 0, true},
		{"negative", -0.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.resolutionMs)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewGrid(%v) error = %v, wantErr %v", tt.resolutionMs, err, tt.wantErr)
			}
		})
	}
}

func TestGrid_Alignment(t *testing.T) {
	// GIVEN a 0.1ms grid (100 tics per step)
	g, err := NewGrid(0.1)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}

	tests := []struct {
		ms       float64
		aligned  bool
		wantStep int64 // step if aligned, stamped step otherwise
	}{
		{100.5, true, 1005}, // 100.5 is grid-aligned at 0.1ms resolution
		{200.0, true, 2000},
		{0.1, true, 1},
		{100.55, false, 1006}, // rounds up to the end of the containing step
		{0.05, false, 1},
		{0.149, false, 2},
	}

	for _, tt := range tests {
		tics := g.Tics(tt.ms)
		if got := g.Aligned(tics); got != tt.aligned {
			t.Errorf("Aligned(%v ms) = %v, want %v", tt.ms, got, tt.aligned)
		}
		var step int64
		if tt.aligned {
			step = g.Step(tics)
		} else {
			step = g.Stamp(tics)
		}
		if step != tt.wantStep {
			t.Errorf("step for %v ms = %d, want %d", tt.ms, step, tt.wantStep)
		}
	}
}

func TestGrid_StampIsSmallestBoundaryAtOrAfter(t *testing.T) {
	g, err := NewGrid(0.1)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}

	// Stamp of an aligned time is the time itself.
	if got := g.Stamp(g.Tics(0.3)); got != 3 {
		t.Errorf("Stamp(0.3ms) = %d, want 3", got)
	}
	// Stamp of an off-grid time is the next boundary, and converting back
	// yields a time >= the original.
	stamped := g.Stamp(g.Tics(0.205))
	if stamped != 3 {
		t.Errorf("Stamp(0.205ms) = %d, want 3", stamped)
	}
	if g.Ms(stamped) < 0.205 {
		t.Errorf("Ms(Stamp(0.205)) = %v, want >= 0.205", g.Ms(stamped))
	}
}

func TestGrid_RoundTrip(t *testing.T) {
	g, err := NewGrid(0.5)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if g.StepMs() != 0.5 {
		t.Errorf("StepMs = %v, want 0.5", g.StepMs())
	}
	for step := int64(0); step < 100; step++ {
		tics := g.Tics(g.Ms(step))
		if !g.Aligned(tics) || g.Step(tics) != step {
			t.Fatalf("round trip failed for step %d (tics %d)", step, tics)
		}
	}
	if math.Abs(g.Ms(7)-3.5) > 1e-12 {
		t.Errorf("Ms(7) = %v, want 3.5", g.Ms(7))
	}
}
