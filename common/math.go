package common

import (
	"math"
	"unsafe"
)

// Conversion rules applied when decoded glTF components are stored into a caller-chosen Number type.
//
//	source            target int*           target uint*          target float*
//	int8/int16        sign-extend, wrap     sign-extend, wrap     exact
//	uint8/16/32       zero-extend, wrap     zero-extend, wrap     nearest
//	float32           trunc, saturate       trunc, saturate       exact / widen
//
// "wrap" is Go's two's-complement truncation on narrowing. "saturate" clamps to the
// target's range after truncating toward zero; NaN converts to 0.

// FromInt converts a signed integer component into T.
//
// Parameters:
//   - v: the sign-extended component value
//
// Returns:
//   - T: v converted by Go's integer conversion rules
func FromInt[T Number](v int64) T {
	return T(v)
}

// FromUint converts an unsigned integer component into T.
//
// Parameters:
//   - v: the zero-extended component value
//
// Returns:
//   - T: v converted by Go's integer conversion rules
func FromUint[T Number](v uint64) T {
	return T(v)
}

// FromFloat converts a floating-point component into T.
// Integer targets truncate toward zero and saturate at their range; NaN becomes 0.
//
// Parameters:
//   - f: the component value
//
// Returns:
//   - T: the converted value
func FromFloat[T Number](f float64) T {
	kind := KindOf[T]()
	if kind == KindFloat {
		return T(f)
	}
	if math.IsNaN(f) {
		return 0
	}

	t := math.Trunc(f)
	var zero T
	bits := int(unsafe.Sizeof(zero)) * 8

	if kind == KindUnsigned {
		if t <= 0 {
			return 0
		}
		if t >= math.Ldexp(1, bits) {
			return zero - 1
		}
		return T(uint64(t))
	}

	maxS := int64(uint64(1)<<(bits-1) - 1)
	minS := -maxS - 1
	if t >= math.Ldexp(1, bits-1) {
		return T(maxS)
	}
	if t < -math.Ldexp(1, bits-1) {
		return T(minS)
	}
	return T(int64(t))
}
