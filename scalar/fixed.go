package scalar

import "math/rand"

// fixedK is the number of fractional bits for the Q16.16 representation
// required by spec (N=32, K=16). Only this one (N,K) pair is wired up;
// a generic Fixed[N,K] would need integer type parameters Go does not
// support, so N,K are fixed constants here rather than type parameters.
const fixedK = 16

func truncate32(x int64) int32 { return int32(x) }

// Fixed is the Q16.16 fixed-point scalar: a signed 32-bit raw integer
// representing raw/2^16.
type Fixed struct{ raw int32 }

func FixedFromRaw(raw int32) Fixed { return Fixed{raw: raw} }

func (a Fixed) Raw() int32 { return a.raw }

func (a Fixed) Add(b Fixed) Fixed { return Fixed{raw: a.raw + b.raw} }
func (a Fixed) Sub(b Fixed) Fixed { return Fixed{raw: a.raw - b.raw} }

// Mul promotes to a 64-bit intermediate, multiplies, and shifts right by
// K fractional bits, matching the spec's "at least 2N bits wide" rule.
func (a Fixed) Mul(b Fixed) Fixed {
	return Fixed{raw: truncate32((int64(a.raw) * int64(b.raw)) >> fixedK)}
}

// Div promotes a left by K bits in a 64-bit intermediate before dividing
// by b's raw integer.
func (a Fixed) Div(b Fixed) Fixed {
	return Fixed{raw: truncate32((int64(a.raw) << fixedK) / int64(b.raw))}
}

func (a Fixed) Neg() Fixed { return Fixed{raw: -a.raw} }

func (a Fixed) Cmp(b Fixed) int {
	switch {
	case a.raw < b.raw:
		return -1
	case a.raw > b.raw:
		return 1
	default:
		return 0
	}
}

func (a Fixed) Float64() float64 { return float64(a.raw) / float64(int64(1)<<fixedK) }

// FixedTraits is the constructor dictionary for Fixed.
var FixedTraits = Traits[Fixed]{
	Name:    "FIXED(32, 16)",
	FromInt: func(v int) Fixed { return Fixed{raw: int32(v) << fixedK} },
	// round-toward-zero(x * 2^K), matching Go's truncating float->int conversion.
	FromFloat64: func(v float64) Fixed { return Fixed{raw: int32(v * float64(int64(1)<<fixedK))} },
	FromRaw:     FixedFromRaw,
	Random01: func(rng *rand.Rand) Fixed {
		r := rng.Uint32()
		return Fixed{raw: int32(r & (1<<fixedK - 1))}
	},
}
