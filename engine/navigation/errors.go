package navigation

import "errors"

var (
	// ErrTooFewPOIs is returned when a tour is built from fewer than two points of interest.
	ErrTooFewPOIs = errors.New("navigation: a tour needs at least 2 points of interest")

	// ErrDuplicatePOI is returned when two points of interest share an ID.
	ErrDuplicatePOI = errors.New("navigation: duplicate point of interest id")

	// ErrInvalidPOI is returned when a point of interest has a non-finite position.
	ErrInvalidPOI = errors.New("navigation: invalid point of interest")

	// ErrNavigatorDisposed is returned by operations that cannot run after Dispose.
	ErrNavigatorDisposed = errors.New("navigation: navigator disposed")
)
