package scalar

import "math/rand"

// Float64 is the IEEE double-precision scalar representation.
type Float64 float64

func (a Float64) Add(b Float64) Float64 { return a + b }
func (a Float64) Sub(b Float64) Float64 { return a - b }
func (a Float64) Mul(b Float64) Float64 { return a * b }
func (a Float64) Div(b Float64) Float64 { return a / b }
func (a Float64) Neg() Float64          { return -a }

func (a Float64) Cmp(b Float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (a Float64) Float64() float64 { return float64(a) }

// Float64Traits is the constructor dictionary for Float64.
var Float64Traits = Traits[Float64]{
	Name:        "DOUBLE",
	FromInt:     func(v int) Float64 { return Float64(v) },
	FromFloat64: func(v float64) Float64 { return Float64(v) },
	FromRaw:     func(v int32) Float64 { return Float64(v) },
	Random01: func(rng *rand.Rand) Float64 {
		return Float64(rng.Uint64()) / Float64(1<<64-1)
	},
}
