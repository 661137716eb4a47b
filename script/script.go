package script

import (
	"context"
	"errors"

	"github.com/mgomes/scriptfx/effect"
	"github.com/mgomes/scriptfx/either"
)

// ErrZeroScript is raised by discharging a Script that was never constructed.
var ErrZeroScript = errors.New("script: zero Script has no definition")

// Script is an immutable description of work needing D that fails with E or
// succeeds with A. A Script may be discharged any number of times.
type Script[D, E, A any] struct {
	definition func(engine effect.Engine, deps D) effect.Effect[either.Either[E, A]]
}

// New builds a Script from its definition. The definition must only describe
// effects on engine; it must not perform them.
func New[D, E, A any](def func(engine effect.Engine, deps D) effect.Effect[either.Either[E, A]]) Script[D, E, A] {
	return Script[D, E, A]{definition: def}
}

func (s Script[D, E, A]) eval(engine effect.Engine, deps D) effect.Effect[either.Either[E, A]] {
	if s.definition == nil {
		return effect.Fail[either.Either[E, A]](engine, ErrZeroScript)
	}
	return s.definition(engine, deps)
}

// Pure succeeds with a.
func Pure[D, E, A any](a A) Script[D, E, A] {
	return New(func(engine effect.Engine, _ D) effect.Effect[either.Either[E, A]] {
		return effect.Pure(engine, either.Right[E](a))
	})
}

// Fail fails with the domain failure e.
func Fail[D, A, E any](e E) Script[D, E, A] {
	return New(func(engine effect.Engine, _ D) effect.Effect[either.Either[E, A]] {
		return effect.Pure(engine, either.Left[E, A](e))
	})
}

// Dependencies yields the dependency value itself.
func Dependencies[D, E any]() Script[D, E, D] {
	return New(func(engine effect.Engine, deps D) effect.Effect[either.Either[E, D]] {
		return effect.Pure(engine, either.Right[E](deps))
	})
}

// Asks yields a projection of the dependency value.
func Asks[D, E, A any](f func(D) A) Script[D, E, A] {
	return Map(Dependencies[D, E](), f)
}

// LiftEffect wraps an effect that has no domain failure. Errors raised by fa
// stay effect errors.
func LiftEffect[D, E, A any](fa effect.Effect[A]) Script[D, E, A] {
	return New(func(engine effect.Engine, _ D) effect.Effect[either.Either[E, A]] {
		return effect.Map(effect.Adopt(engine, fa), either.Right[E, A])
	})
}

// LiftEffectEither wraps an effect that already yields a domain result.
func LiftEffectEither[D, E, A any](fa effect.Effect[either.Either[E, A]]) Script[D, E, A] {
	return New(func(engine effect.Engine, _ D) effect.Effect[either.Either[E, A]] {
		return effect.Adopt(engine, fa)
	})
}

// FromOption succeeds with value when ok is true and fails with onEmpty otherwise.
func FromOption[D, A, E any](value A, ok bool, onEmpty E) Script[D, E, A] {
	if !ok {
		return Fail[D, A](onEmpty)
	}
	return Pure[D, E](value)
}

// FromEither lifts an already computed domain result.
func FromEither[D, E, A any](result either.Either[E, A]) Script[D, E, A] {
	return New(func(engine effect.Engine, _ D) effect.Effect[either.Either[E, A]] {
		return effect.Pure(engine, result)
	})
}

// Suspend lifts a side-effecting function. fn runs on the discharge engine
// each time the folded effect runs; an error it returns is an effect error.
func Suspend[D, E, A any](fn func(ctx context.Context, deps D) (A, error)) Script[D, E, A] {
	return New(func(engine effect.Engine, deps D) effect.Effect[either.Either[E, A]] {
		return effect.Delay(engine, func(ctx context.Context) (either.Either[E, A], error) {
			a, err := fn(ctx, deps)
			if err != nil {
				return either.Either[E, A]{}, err
			}
			return either.Right[E](a), nil
		})
	})
}

// SuspendEither is Suspend for functions that can also report a domain failure.
func SuspendEither[D, E, A any](fn func(ctx context.Context, deps D) (either.Either[E, A], error)) Script[D, E, A] {
	return New(func(engine effect.Engine, deps D) effect.Effect[either.Either[E, A]] {
		return effect.Delay(engine, func(ctx context.Context) (either.Either[E, A], error) {
			return fn(ctx, deps)
		})
	})
}
