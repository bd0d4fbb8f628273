package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/spikesim/spikesim/sim"
	"github.com/spikesim/spikesim/sim/trace"
)

var (
	scenarioPath string  // Path to the YAML scenario file
	seed         int64   // Master seed override (0 = use scenario seed)
	logLevel     string  // Log verbosity level
	horizonMs    float64 // Horizon override in ms (0 = use scenario horizon)
	outPath      string  // Optional CSV output path for the spike train
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "spikesim",
	Short: "Discrete-time inhomogeneous Poisson stimulus simulator",
}

// trainReceiver adapts a trace.SpikeTrain to the sim.Receiver interface.
type trainReceiver struct {
	train *trace.SpikeTrain
}

func (r *trainReceiver) Handle(ev sim.SpikeEvent) {
	r.train.Record(trace.SpikeRecord{
		GeneratorID:  ev.GeneratorID,
		Step:         ev.Step,
		TimeMs:       ev.TimeMs,
		Multiplicity: ev.Multiplicity,
	})
}

// runCmd executes a simulation described by a scenario file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a stimulus generation scenario",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if scenarioPath == "" {
			logrus.Fatalf("Scenario file not provided. Exiting simulation.")
		}

		scenario, err := LoadScenario(scenarioPath)
		if err != nil {
			logrus.Fatalf("Unable to load scenario: %v", err)
		}
		if err := scenario.Validate(); err != nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}
		if seed != 0 {
			scenario.Seed = seed
		}
		if horizonMs != 0 {
			scenario.HorizonMs = horizonMs
		}

		train, summary, err := runScenario(scenario)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		logrus.Infof("Delivered %d bundles carrying %d events across %d generators (mean %.2f events/s)",
			summary.TotalBundles, summary.TotalEvents, summary.UniqueGenerators, summary.MeanRatePerSecond)
		for id, count := range summary.PerGenerator {
			logrus.Infof("  %s: %d events", id, count)
		}

		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				logrus.Fatalf("Unable to create output file: %v", err)
			}
			defer f.Close() //nolint:errcheck // flushed by WriteCSV; close error is not actionable
			if err := train.WriteCSV(f); err != nil {
				logrus.Fatalf("Unable to write spike train: %v", err)
			}
			logrus.Infof("Spike train written to %s", outPath)
		}
	},
}

// runScenario builds the kernel and generators from a validated scenario,
// runs it to its horizon, and returns the recorded train with its summary.
func runScenario(scenario *Scenario) (*trace.SpikeTrain, *trace.TrainSummary, error) {
	kernel, err := sim.NewKernel(sim.KernelConfig{
		ResolutionMs: scenario.ResolutionMs,
		Seed:         scenario.Seed,
		BlockSteps:   scenario.BlockSteps,
	})
	if err != nil {
		return nil, nil, err
	}

	train := trace.NewSpikeTrain()
	recv := &trainReceiver{train: train}

	for i := range scenario.Generators {
		gspec := &scenario.Generators[i]
		window, err := gspec.windowFor(kernel.Grid())
		if err != nil {
			return nil, nil, err
		}
		gen := sim.NewPoissonGenerator(gspec.ID, window, recv)
		cfg := sim.ScheduleConfig{
			RateTimes:         gspec.RateTimes,
			RateValues:        gspec.RateValues,
			AllowOffgridTimes: gspec.AllowOffgridTimes,
		}
		if err := gen.Configure(kernel, cfg); err != nil {
			return nil, nil, err
		}
		if err := gen.MergeAndApply(kernel, gspec.StreamUpdates); err != nil {
			return nil, nil, err
		}
		kernel.Register(gen)
	}

	horizonSteps := kernel.Grid().Stamp(kernel.Grid().Tics(scenario.HorizonMs))
	logrus.Infof("Starting simulation: resolution=%.3fms horizon=%d steps seed=%d generators=%d",
		scenario.ResolutionMs, horizonSteps, scenario.Seed, len(scenario.Generators))

	startTime := time.Now()
	kernel.Run(horizonSteps)
	logrus.Infof("Simulation wall time: %v", time.Since(startTime))

	return train, trace.Summarize(train, kernel.NowMs()), nil
}

func init() {
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to the YAML scenario file")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Master seed override (0 keeps the scenario seed)")
	runCmd.Flags().StringVar(&logLevel, "loglevel", "info", "Log level: debug, info, warn, error")
	runCmd.Flags().Float64Var(&horizonMs, "horizon-ms", 0, "Horizon override in ms (0 keeps the scenario horizon)")
	runCmd.Flags().StringVar(&outPath, "out", "", "Write the delivered spike train to this CSV file")
	rootCmd.AddCommand(runCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
