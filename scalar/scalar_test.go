package scalar

import (
	"math/rand"
	"testing"
)

func TestFixedArithmetic(t *testing.T) {
	a := FixedTraits.FromFloat64(1.5)
	b := FixedTraits.FromFloat64(0.25)

	if got := a.Add(b).Float64(); got != 1.75 {
		t.Errorf("Add: got %v, want 1.75", got)
	}
	if got := a.Sub(b).Float64(); got != 1.25 {
		t.Errorf("Sub: got %v, want 1.25", got)
	}
	if got := a.Mul(b).Float64(); got != 0.375 {
		t.Errorf("Mul: got %v, want 0.375", got)
	}
	if got := a.Div(FixedTraits.FromFloat64(2)).Float64(); got != 0.75 {
		t.Errorf("Div: got %v, want 0.75", got)
	}
}

func TestFixedFastFixedBitIdentical(t *testing.T) {
	inputs := []float64{0, 1, -1, 3.5, -3.5, 0.1, 100.25, -100.25}
	for _, x := range inputs {
		for _, y := range inputs {
			if y == 0 {
				continue
			}
			fx, fy := FixedTraits.FromFloat64(x), FixedTraits.FromFloat64(y)
			gx, gy := FastFixedTraits.FromFloat64(x), FastFixedTraits.FromFloat64(y)

			if fx.Add(fy).Raw() != gx.Add(gy).Raw() {
				t.Errorf("Add(%v,%v) diverged between Fixed and FastFixed", x, y)
			}
			if fx.Mul(fy).Raw() != gx.Mul(gy).Raw() {
				t.Errorf("Mul(%v,%v) diverged between Fixed and FastFixed", x, y)
			}
			if fx.Div(fy).Raw() != gx.Div(gy).Raw() {
				t.Errorf("Div(%v,%v) diverged between Fixed and FastFixed", x, y)
			}
		}
	}
}

func TestFixedRandom01Range(t *testing.T) {
	rng := rand.New(rand.NewSource(1337))
	for i := 0; i < 1000; i++ {
		v := FixedTraits.Random01(rng).Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Random01 out of [0,1): %v", v)
		}
	}
}

func TestFloat32Comparisons(t *testing.T) {
	a := Float32Traits.FromFloat64(1.0)
	b := Float32Traits.FromFloat64(2.0)
	if !Less(a, b) {
		t.Error("expected 1.0 < 2.0")
	}
	if !Greater(b, a) {
		t.Error("expected 2.0 > 1.0")
	}
	if !Equal(a, a) {
		t.Error("expected 1.0 == 1.0")
	}
}

func TestMinPicksLower(t *testing.T) {
	a := Float64Traits.FromFloat64(3.0)
	b := Float64Traits.FromFloat64(1.0)
	if got := Min(a, b); got != b {
		t.Errorf("Min: got %v, want %v", got, b)
	}
}
