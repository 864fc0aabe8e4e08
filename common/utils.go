package common

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// MinMax3 folds a flat xyz sequence into its per-axis minimum and maximum.
// Trailing values that do not complete a triple are ignored.
//
// Parameters:
//   - flat: x, y, z values laid out consecutively
//
// Returns:
//   - [3]T: the per-axis minimum
//   - [3]T: the per-axis maximum
//   - bool: false when flat holds no complete triple
func MinMax3[T Number](flat []T) ([3]T, [3]T, bool) {
	var lo, hi [3]T
	if len(flat) < 3 {
		return lo, hi, false
	}
	copy(lo[:], flat[:3])
	copy(hi[:], flat[:3])
	for i := 3; i+3 <= len(flat); i += 3 {
		for axis := 0; axis < 3; axis++ {
			v := flat[i+axis]
			if v < lo[axis] {
				lo[axis] = v
			}
			if v > hi[axis] {
				hi[axis] = v
			}
		}
	}
	return lo, hi, true
}
