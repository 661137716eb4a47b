package script

import (
	"github.com/mgomes/scriptfx/effect"
	"github.com/mgomes/scriptfx/either"
)

// Map transforms the success value. Failures pass through untouched.
func Map[D, E, A, B any](s Script[D, E, A], f func(A) B) Script[D, E, B] {
	return New(func(engine effect.Engine, deps D) effect.Effect[either.Either[E, B]] {
		return effect.Map(s.eval(engine, deps), func(r either.Either[E, A]) either.Either[E, B] {
			return either.Map(r, f)
		})
	})
}

// FlatMap runs s and, when it succeeds, the Script f builds from its value,
// with the same dependency value. A failure of s is returned unchanged and f is
// never called.
func FlatMap[D, E, A, B any](s Script[D, E, A], f func(A) Script[D, E, B]) Script[D, E, B] {
	return New(func(engine effect.Engine, deps D) effect.Effect[either.Either[E, B]] {
		return effect.FlatMap(s.eval(engine, deps), func(r either.Either[E, A]) effect.Effect[either.Either[E, B]] {
			a, ok := r.GetRight()
			if !ok {
				e, _ := r.GetLeft()
				return effect.Pure(engine, either.Left[E, B](e))
			}
			return f(a).eval(engine, deps)
		})
	})
}

// Then runs s and then next, keeping the value of next.
func Then[D, E, A, B any](s Script[D, E, A], next Script[D, E, B]) Script[D, E, B] {
	return FlatMap(s, func(A) Script[D, E, B] { return next })
}

// MapFailure transforms the domain failure. Success values pass through.
// It is also how a failure type is widened before composing with a Script
// that declares a broader one.
func MapFailure[D, E, A, E2 any](s Script[D, E, A], f func(E) E2) Script[D, E2, A] {
	return New(func(engine effect.Engine, deps D) effect.Effect[either.Either[E2, A]] {
		return effect.Map(s.eval(engine, deps), func(r either.Either[E, A]) either.Either[E2, A] {
			return either.MapLeft(r, f)
		})
	})
}

// LeftMap is MapFailure.
func LeftMap[D, E, A, E2 any](s Script[D, E, A], f func(E) E2) Script[D, E2, A] {
	return MapFailure(s, f)
}

// Bimap transforms whichever channel s ends on.
func Bimap[D, E, A, E2, B any](s Script[D, E, A], onFailure func(E) E2, onSuccess func(A) B) Script[D, E2, B] {
	return Map(MapFailure(s, onFailure), onSuccess)
}

// RecoverFailure runs h with the domain failure of s. The Script h returns may
// succeed or fail with a new failure type. Successes of s pass through and h is
// not called.
func RecoverFailure[D, E, A, E2 any](s Script[D, E, A], h func(E) Script[D, E2, A]) Script[D, E2, A] {
	return New(func(engine effect.Engine, deps D) effect.Effect[either.Either[E2, A]] {
		return effect.FlatMap(s.eval(engine, deps), func(r either.Either[E, A]) effect.Effect[either.Either[E2, A]] {
			e, failed := r.GetLeft()
			if !failed {
				a, _ := r.GetRight()
				return effect.Pure(engine, either.Right[E2](a))
			}
			return h(e).eval(engine, deps)
		})
	})
}

// RecoverError replaces an effect error raised while running s with the
// Script h returns. Domain failures are not errors and pass through.
func (s Script[D, E, A]) RecoverError(h func(error) Script[D, E, A]) Script[D, E, A] {
	return New(func(engine effect.Engine, deps D) effect.Effect[either.Either[E, A]] {
		return effect.HandleErrorWith(s.eval(engine, deps), func(err error) effect.Effect[either.Either[E, A]] {
			return h(err).eval(engine, deps)
		})
	})
}

// Inject adapts s to run against a larger dependency type D2 by projecting
// the part it needs. proj must be total and free of side effects.
func Inject[D2, D, E, A any](s Script[D, E, A], proj func(D2) D) Script[D2, E, A] {
	return New(func(engine effect.Engine, deps D2) effect.Effect[either.Either[E, A]] {
		return s.eval(engine, proj(deps))
	})
}

// Contramap is Inject.
func Contramap[D2, D, E, A any](s Script[D, E, A], proj func(D2) D) Script[D2, E, A] {
	return Inject(s, proj)
}
