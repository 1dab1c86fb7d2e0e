// Package scalar provides the arithmetic surface the simulation core is
// generic over: float32, float64, and Q16.16 fixed-point, all satisfying
// the same Value constraint so the tick driver never special-cases a
// representation.
package scalar

import "math/rand"

// Value is the arithmetic capability set every scalar representation must
// provide: construction is left to each type's Traits (Go generics cannot
// express "build a new T" from inside a generic function), but once built,
// every T supports the full ordered ring of operations plus lossy float64
// conversion.
type Value[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T
	Neg() T
	Cmp(T) int // -1, 0, 1
	Float64() float64
}

// Traits is the dictionary-passing companion to Value[T]: the
// constructors a concrete scalar type cannot expose through the Value
// interface itself.
type Traits[T any] struct {
	FromInt     func(int) T
	FromFloat64 func(float64) T
	FromRaw     func(int32) T
	Random01    func(*rand.Rand) T
	Name        string
}

// Less reports whether a < b for any Value.
func Less[T Value[T]](a, b T) bool { return a.Cmp(b) < 0 }

// Greater reports whether a > b for any Value.
func Greater[T Value[T]](a, b T) bool { return a.Cmp(b) > 0 }

// Equal reports whether a == b for any Value.
func Equal[T Value[T]](a, b T) bool { return a.Cmp(b) == 0 }

// Min returns whichever of a, b compares lower.
func Min[T Value[T]](a, b T) T {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Convert maps a value of one scalar representation to another by
// bridging through float64. Exact within a representation, lossy across
// representations, matching spec's "lossy conversion... to every other
// scalar type in the set".
func Convert[To any](traits Traits[To], from interface{ Float64() float64 }) To {
	return traits.FromFloat64(from.Float64())
}
