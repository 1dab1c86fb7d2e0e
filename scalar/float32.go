package scalar

import "math/rand"

// Float32 is the IEEE single-precision scalar representation.
type Float32 float32

func (a Float32) Add(b Float32) Float32 { return a + b }
func (a Float32) Sub(b Float32) Float32 { return a - b }
func (a Float32) Mul(b Float32) Float32 { return a * b }
func (a Float32) Div(b Float32) Float32 { return a / b }
func (a Float32) Neg() Float32          { return -a }

func (a Float32) Cmp(b Float32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (a Float32) Float64() float64 { return float64(a) }

// Float32Traits is the constructor dictionary for Float32.
var Float32Traits = Traits[Float32]{
	Name:        "FLOAT",
	FromInt:     func(v int) Float32 { return Float32(v) },
	FromFloat64: func(v float64) Float32 { return Float32(v) },
	FromRaw:     func(v int32) Float32 { return Float32(v) },
	Random01: func(rng *rand.Rand) Float32 {
		return Float32(rng.Uint32()) / Float32(1<<32-1)
	},
}
