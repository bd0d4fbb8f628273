// Package trace provides spike-train recording for generator output
// analysis. This package has no dependencies on sim/; it stores pure
// data types.
package trace

// SpikeRecord captures one delivered event bundle.
type SpikeRecord struct {
	GeneratorID  string
	Step         int64
	TimeMs       float64
	Multiplicity int64
}
