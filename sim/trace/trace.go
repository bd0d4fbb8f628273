package trace

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// SpikeTrain collects delivered spike records during a simulation run.
type SpikeTrain struct {
	Records []SpikeRecord
}

// NewSpikeTrain creates a SpikeTrain ready for recording.
func NewSpikeTrain() *SpikeTrain {
	return &SpikeTrain{
		Records: make([]SpikeRecord, 0),
	}
}

// Record appends a spike record.
func (st *SpikeTrain) Record(r SpikeRecord) {
	st.Records = append(st.Records, r)
}

// WriteCSV writes the train as CSV with a header row, one record per line.
func (st *SpikeTrain) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"generator_id", "step", "time_ms", "multiplicity"}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for i, r := range st.Records {
		row := []string{
			r.GeneratorID,
			strconv.FormatInt(r.Step, 10),
			strconv.FormatFloat(r.TimeMs, 'f', -1, 64),
			strconv.FormatInt(r.Multiplicity, 10),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
