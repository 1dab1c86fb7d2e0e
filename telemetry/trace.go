// Package telemetry writes per-tick simulation traces to CSV and
// tracks rolling statistics over a configurable window, adapted from
// the teacher's OutputManager/WindowStats CSV pattern for the fluid
// simulator's much smaller per-tick record.
package telemetry

// TickRecord is one row of the per-tick trace: the pressure-accounting
// and convergence signals a reader would want for offline analysis.
type TickRecord struct {
	Tick          int     `csv:"tick"`
	TotalDeltaP   float64 `csv:"total_delta_p"`
	Sweeps        int     `csv:"sweeps"`
	MigratedCells int     `csv:"migrated_cells"`
	Moved         bool    `csv:"moved"`
}
