package cmd

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/spikesim/spikesim/sim"
)

// Scenario is the top-level simulation configuration.
// Loaded from YAML via LoadScenario(path).
type Scenario struct {
	ResolutionMs float64         `yaml:"resolution_ms"`
	HorizonMs    float64         `yaml:"horizon_ms"`
	BlockSteps   int64           `yaml:"block_steps,omitempty"`
	Seed         int64           `yaml:"seed"`
	Generators   []GeneratorSpec `yaml:"generators"`
}

// GeneratorSpec defines a single generator instance.
type GeneratorSpec struct {
	ID                string      `yaml:"id"`
	RateTimes         []float64   `yaml:"rate_times"`
	RateValues        []float64   `yaml:"rate_values"`
	AllowOffgridTimes *bool       `yaml:"allow_offgrid_times,omitempty"`
	Window            *WindowSpec `yaml:"window,omitempty"`
	// StreamUpdates is a flat [time, rate, ...] sequence appended after
	// the initial configuration, exercising the streamed-update surface.
	StreamUpdates []float64 `yaml:"stream_updates,omitempty"`
}

// WindowSpec bounds a generator's activation window in ms.
// StopMs <= 0 means unbounded.
type WindowSpec struct {
	StartMs float64 `yaml:"start_ms"`
	StopMs  float64 `yaml:"stop_ms"`
}

// LoadScenario reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &sc, nil
}

// Validate checks the scenario's structural fields. Schedule contents are
// validated by the generators themselves at configuration time.
func (s *Scenario) Validate() error {
	if s.ResolutionMs <= 0 || math.IsNaN(s.ResolutionMs) || math.IsInf(s.ResolutionMs, 0) {
		return fmt.Errorf("resolution_ms must be a positive finite number, got %f", s.ResolutionMs)
	}
	if s.HorizonMs <= 0 || math.IsNaN(s.HorizonMs) || math.IsInf(s.HorizonMs, 0) {
		return fmt.Errorf("horizon_ms must be a positive finite number, got %f", s.HorizonMs)
	}
	if s.BlockSteps < 0 {
		return fmt.Errorf("block_steps must be non-negative, got %d", s.BlockSteps)
	}
	if len(s.Generators) == 0 {
		return fmt.Errorf("at least one generator required")
	}
	seen := make(map[string]bool)
	for i, g := range s.Generators {
		prefix := fmt.Sprintf("generator[%d]", i)
		if g.ID == "" {
			return fmt.Errorf("%s: id must not be empty", prefix)
		}
		if seen[g.ID] {
			return fmt.Errorf("%s: duplicate id %q", prefix, g.ID)
		}
		seen[g.ID] = true
		for _, v := range g.RateValues {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return fmt.Errorf("%s: rate values must be finite and non-negative, got %f", prefix, v)
			}
		}
	}
	return nil
}

// windowFor builds the activation window for a generator spec.
func (g *GeneratorSpec) windowFor(grid sim.Grid) (sim.ActivationWindow, error) {
	if g.Window == nil {
		return sim.AlwaysActive(), nil
	}
	return sim.NewActivationWindow(grid, g.Window.StartMs, g.Window.StopMs)
}
