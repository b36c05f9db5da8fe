package common

import "cmp"

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

// FirstPositive returns the first strictly positive value, or the zero value if none is.
// Config loaders use it to fall back to defaults for unset or nonsensical tunables.
//
// Parameters:
//   - values: candidate values in priority order
//
// Returns:
//   - T: the first value greater than zero
func FirstPositive[T cmp.Ordered](values ...T) T {
	var zero T
	for _, v := range values {
		if v > zero {
			return v
		}
	}
	return zero
}
