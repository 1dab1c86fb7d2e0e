package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewOutputManagerDisabledWhenDirEmpty(t *testing.T) {
	om, err := NewOutputManager("", 1)
	if err != nil {
		t.Fatalf("NewOutputManager(\"\"): %v", err)
	}
	if om != nil {
		t.Fatal("expected nil OutputManager when dir is empty")
	}
	if err := om.WriteTick(TickRecord{Tick: 1}); err != nil {
		t.Errorf("WriteTick on nil OutputManager should be a no-op, got error: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil OutputManager should be a no-op, got error: %v", err)
	}
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir, 1)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	for i := 1; i <= 3; i++ {
		if err := om.WriteTick(TickRecord{Tick: i, TotalDeltaP: float64(i) * 0.1}); err != nil {
			t.Fatalf("WriteTick: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("reading telemetry.csv: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 1 header + 3 rows = 4 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "tick") {
		t.Errorf("expected header row to contain \"tick\", got %q", lines[0])
	}
}

func TestOutputManagerFlushesEveryN(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir, 3)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	path := filepath.Join(dir, "telemetry.csv")

	if err := om.WriteTick(TickRecord{Tick: 1}); err != nil {
		t.Fatalf("WriteTick: %v", err)
	}
	if err := om.WriteTick(TickRecord{Tick: 2}); err != nil {
		t.Fatalf("WriteTick: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading telemetry.csv before flush: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected no bytes on disk before the 3rd write, got %d", len(data))
	}

	if err := om.WriteTick(TickRecord{Tick: 3}); err != nil {
		t.Fatalf("WriteTick: %v", err)
	}
	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading telemetry.csv after flush: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 1 header + 3 rows = 4 lines after flush, got %d", len(lines))
	}

	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestRollingWindowMeanStdDev(t *testing.T) {
	w := NewRollingWindow(3)
	for _, v := range []float64{1, 2, 3} {
		w.Add(v)
	}
	mean, std := w.MeanStdDev()
	if mean != 2 {
		t.Errorf("mean = %v, want 2", mean)
	}
	if std == 0 {
		t.Error("expected nonzero stddev for [1,2,3]")
	}
}

func TestRollingWindowEvictsOldest(t *testing.T) {
	w := NewRollingWindow(2)
	w.Add(10)
	w.Add(20)
	w.Add(30) // evicts 10
	mean, _ := w.MeanStdDev()
	if mean != 25 {
		t.Errorf("mean = %v, want 25 (mean of 20,30)", mean)
	}
}

func TestRollingWindowEmpty(t *testing.T) {
	w := NewRollingWindow(5)
	mean, std := w.MeanStdDev()
	if mean != 0 || std != 0 {
		t.Errorf("expected (0,0) for empty window, got (%v,%v)", mean, std)
	}
	if math.IsNaN(mean) {
		t.Error("mean should not be NaN when empty")
	}
}
