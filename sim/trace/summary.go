package trace

// TrainSummary aggregates statistics from a SpikeTrain.
type TrainSummary struct {
	TotalBundles      int              // delivered event records
	TotalEvents       int64            // summed multiplicities
	PerGenerator      map[string]int64 // generator ID -> summed multiplicity
	UniqueGenerators  int
	MeanRatePerSecond float64 // TotalEvents over the observed span
}

// Summarize computes aggregate statistics from a SpikeTrain over a span of
// spanMs milliseconds. Safe for nil or empty trains (returns zero-value
// fields).
func Summarize(st *SpikeTrain, spanMs float64) *TrainSummary {
	summary := &TrainSummary{
		PerGenerator: make(map[string]int64),
	}
	if st == nil {
		return summary
	}

	summary.TotalBundles = len(st.Records)
	for _, r := range st.Records {
		summary.TotalEvents += r.Multiplicity
		summary.PerGenerator[r.GeneratorID] += r.Multiplicity
	}
	summary.UniqueGenerators = len(summary.PerGenerator)

	if spanMs > 0 {
		summary.MeanRatePerSecond = float64(summary.TotalEvents) / spanMs * 1000.0
	}

	return summary
}
