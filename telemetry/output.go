package telemetry

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// OutputManager owns the telemetry.csv file for one run. A nil
// *OutputManager is valid and makes every method a no-op, matching
// the teacher's "output disabled when dir is empty" convention.
type OutputManager struct {
	dir           string
	traceFile     *os.File
	writer        *bufio.Writer
	headerWritten bool
	flushEvery    int
	pending       int
}

// NewOutputManager creates the output directory and opens telemetry.csv.
// Returns (nil, nil) if dir is empty, meaning telemetry is disabled.
// flushEvery controls how many WriteTick calls accumulate in the
// buffer before it is flushed to disk; a non-positive value flushes
// on every call.
func NewOutputManager(dir string, flushEvery int) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if flushEvery < 1 {
		flushEvery = 1
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("telemetry: creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating telemetry.csv: %w", err)
	}

	return &OutputManager{dir: dir, traceFile: f, writer: bufio.NewWriter(f), flushEvery: flushEvery}, nil
}

// WriteTick appends one tick's record to telemetry.csv, writing the
// CSV header only on the first call. The underlying buffer is flushed
// every flushEvery calls, matching the config's trace_flush_every.
func (om *OutputManager) WriteTick(rec TickRecord) error {
	if om == nil {
		return nil
	}
	records := []TickRecord{rec}
	if !om.headerWritten {
		if err := gocsv.Marshal(records, om.writer); err != nil {
			return fmt.Errorf("telemetry: writing tick record: %w", err)
		}
		om.headerWritten = true
	} else if err := gocsv.MarshalWithoutHeaders(records, om.writer); err != nil {
		return fmt.Errorf("telemetry: writing tick record: %w", err)
	}

	om.pending++
	if om.pending >= om.flushEvery {
		om.pending = 0
		if err := om.writer.Flush(); err != nil {
			return fmt.Errorf("telemetry: flushing telemetry.csv: %w", err)
		}
	}
	return nil
}

// Dir returns the output directory, or "" if telemetry is disabled.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes telemetry.csv.
func (om *OutputManager) Close() error {
	if om == nil || om.traceFile == nil {
		return nil
	}
	if err := om.writer.Flush(); err != nil {
		om.traceFile.Close()
		return fmt.Errorf("telemetry: flushing telemetry.csv: %w", err)
	}
	return om.traceFile.Close()
}
