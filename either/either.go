// Package either provides a two-case sum type used to carry a domain failure
// or a success value in-band.
package either

import "fmt"

// Either holds exactly one of a Left value (by convention a failure) or a
// Right value (a success). The zero value is a Left holding the zero L.
type Either[L, R any] struct {
	left  L
	right R
	isR   bool
}

// Left constructs a failure-side value.
func Left[L, R any](l L) Either[L, R] {
	return Either[L, R]{left: l}
}

// Right constructs a success-side value.
func Right[L, R any](r R) Either[L, R] {
	return Either[L, R]{right: r, isR: true}
}

// IsLeft reports whether e holds a Left value.
func (e Either[L, R]) IsLeft() bool { return !e.isR }

// IsRight reports whether e holds a Right value.
func (e Either[L, R]) IsRight() bool { return e.isR }

// GetLeft returns the Left value and true, or the zero L and false.
func (e Either[L, R]) GetLeft() (L, bool) {
	if e.isR {
		var zero L
		return zero, false
	}
	return e.left, true
}

// GetRight returns the Right value and true, or the zero R and false.
func (e Either[L, R]) GetRight() (R, bool) {
	if !e.isR {
		var zero R
		return zero, false
	}
	return e.right, true
}

// Swap exchanges the two sides.
func (e Either[L, R]) Swap() Either[R, L] {
	if e.isR {
		return Left[R, L](e.right)
	}
	return Right[R](e.left)
}

func (e Either[L, R]) String() string {
	if e.isR {
		return fmt.Sprintf("Right(%v)", e.right)
	}
	return fmt.Sprintf("Left(%v)", e.left)
}

// Fold eliminates e by applying exactly one of the two handlers.
func Fold[L, R, T any](e Either[L, R], onLeft func(L) T, onRight func(R) T) T {
	if e.isR {
		return onRight(e.right)
	}
	return onLeft(e.left)
}

// Map transforms the Right value.
func Map[L, R, R2 any](e Either[L, R], f func(R) R2) Either[L, R2] {
	if e.isR {
		return Right[L](f(e.right))
	}
	return Left[L, R2](e.left)
}

// MapLeft transforms the Left value.
func MapLeft[L, R, L2 any](e Either[L, R], f func(L) L2) Either[L2, R] {
	if e.isR {
		return Right[L2](e.right)
	}
	return Left[L2, R](f(e.left))
}

// FlatMap sequences a Right value into f; a Left short-circuits.
func FlatMap[L, R, R2 any](e Either[L, R], f func(R) Either[L, R2]) Either[L, R2] {
	if e.isR {
		return f(e.right)
	}
	return Left[L, R2](e.left)
}
