package telemetry

import "gonum.org/v1/gonum/stat"

// RollingWindow tracks the last N total_delta_p samples and reports
// their mean/stddev on demand, the numeric analogue of the teacher's
// window-flush collector but driven directly off gonum/stat rather
// than a hand-rolled accumulator.
type RollingWindow struct {
	size    int
	samples []float64
	next    int
	filled  bool
}

// NewRollingWindow creates a window holding up to size samples. A
// non-positive size is treated as 1.
func NewRollingWindow(size int) *RollingWindow {
	if size < 1 {
		size = 1
	}
	return &RollingWindow{size: size, samples: make([]float64, size)}
}

// Add records one sample, overwriting the oldest once the window is full.
func (w *RollingWindow) Add(v float64) {
	w.samples[w.next] = v
	w.next = (w.next + 1) % w.size
	if w.next == 0 {
		w.filled = true
	}
}

// Len returns how many samples are currently held (<= size).
func (w *RollingWindow) Len() int {
	if w.filled {
		return w.size
	}
	return w.next
}

// MeanStdDev returns the mean and sample standard deviation (n-1
// denominator, as gonum's stat.MeanStdDev computes it) of the samples
// currently held. Returns (0, 0) if empty.
func (w *RollingWindow) MeanStdDev() (mean, stddev float64) {
	n := w.Len()
	if n == 0 {
		return 0, 0
	}
	data := w.samples[:n]
	mean, std := stat.MeanStdDev(data, nil)
	return mean, std
}
