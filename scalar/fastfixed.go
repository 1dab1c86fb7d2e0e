package scalar

import "math/rand"

// FastFixed is the "fast" Q16.16 variant: identical semantics to Fixed,
// but carrying its raw value in a native int64 so the multiply/divide
// promotion never needs an explicit widen. Every operation still folds
// the result back to 32-bit width so FastFixed stays bit-identical to
// Fixed for the same (N,K) — the spec requires this, and it's the only
// reason the truncate32 calls below aren't dead weight.
type FastFixed struct{ raw int64 }

func FastFixedFromRaw(raw int32) FastFixed { return FastFixed{raw: int64(raw)} }

func (a FastFixed) Raw() int32 { return int32(a.raw) }

func (a FastFixed) Add(b FastFixed) FastFixed {
	return FastFixed{raw: int64(truncate32(a.raw + b.raw))}
}

func (a FastFixed) Sub(b FastFixed) FastFixed {
	return FastFixed{raw: int64(truncate32(a.raw - b.raw))}
}

func (a FastFixed) Mul(b FastFixed) FastFixed {
	return FastFixed{raw: int64(truncate32((a.raw * b.raw) >> fixedK))}
}

func (a FastFixed) Div(b FastFixed) FastFixed {
	return FastFixed{raw: int64(truncate32((a.raw << fixedK) / b.raw))}
}

func (a FastFixed) Neg() FastFixed { return FastFixed{raw: int64(truncate32(-a.raw))} }

func (a FastFixed) Cmp(b FastFixed) int {
	switch {
	case a.raw < b.raw:
		return -1
	case a.raw > b.raw:
		return 1
	default:
		return 0
	}
}

func (a FastFixed) Float64() float64 { return float64(a.raw) / float64(int64(1)<<fixedK) }

// FastFixedTraits is the constructor dictionary for FastFixed.
var FastFixedTraits = Traits[FastFixed]{
	Name:        "FAST_FIXED(32, 16)",
	FromInt:     func(v int) FastFixed { return FastFixed{raw: int64(v) << fixedK} },
	FromFloat64: func(v float64) FastFixed { return FastFixed{raw: int64(int32(v * float64(int64(1)<<fixedK)))} },
	FromRaw:     FastFixedFromRaw,
	Random01: func(rng *rand.Rand) FastFixed {
		r := rng.Uint32()
		return FastFixed{raw: int64(r & (1<<fixedK - 1))}
	},
}
