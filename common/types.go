// package common contains small generic helpers shared by the loader, the model and the CLI. They are not interface-wrapped,
// just plain functions and constraints over numeric data.
package common

import "golang.org/x/exp/constraints"

// Number is the set of element types an output geometry array may use.
// Every member is constructible from each of the six glTF component representations
// through the conversion helpers in math.go.
type Number interface {
	constraints.Integer | constraints.Float
}

// Kind describes the representation class of a Number type parameter.
type Kind int

const (
	// KindSigned is any of int, int8, int16, int32, int64 (and named types over them).
	KindSigned Kind = iota
	// KindUnsigned is any of uint, uint8, uint16, uint32, uint64, uintptr.
	KindUnsigned
	// KindFloat is float32 or float64.
	KindFloat
)

// KindOf reports the representation class of T.
// Named numeric types classify by their underlying type.
//
// Returns:
//   - Kind: the representation class of T
func KindOf[T Number]() Kind {
	var half T = 1
	half /= 2
	if half != 0 {
		return KindFloat
	}
	var zero T
	if zero-1 > 0 {
		return KindUnsigned
	}
	return KindSigned
}
