package script

import (
	"context"

	"github.com/mgomes/scriptfx/effect"
	"github.com/mgomes/scriptfx/either"
)

// Fold discharges s on engine with deps and maps the outcome with exactly one
// of the two handlers. Effect errors are not caught; they surface when the
// returned effect runs.
func Fold[D, E, A, B any](s Script[D, E, A], engine effect.Engine, deps D, onFailure func(E) B, onSuccess func(A) B) effect.Effect[B] {
	return effect.Map(s.eval(engine, deps), func(r either.Either[E, A]) B {
		return either.Fold(r, onFailure, onSuccess)
	})
}

// FoldF is Fold with effectful handlers, whose effects are sequenced after s.
func FoldF[D, E, A, B any](s Script[D, E, A], engine effect.Engine, deps D, onFailure func(E) effect.Effect[B], onSuccess func(A) effect.Effect[B]) effect.Effect[B] {
	return effect.FlatMap(s.eval(engine, deps), func(r either.Either[E, A]) effect.Effect[B] {
		return either.Fold(r, onFailure, onSuccess)
	})
}

// Run is Fold.
func Run[D, E, A, B any](s Script[D, E, A], engine effect.Engine, deps D, onFailure func(E) B, onSuccess func(A) B) effect.Effect[B] {
	return Fold(s, engine, deps, onFailure, onSuccess)
}

// RunF is FoldF.
func RunF[D, E, A, B any](s Script[D, E, A], engine effect.Engine, deps D, onFailure func(E) effect.Effect[B], onSuccess func(A) effect.Effect[B]) effect.Effect[B] {
	return FoldF(s, engine, deps, onFailure, onSuccess)
}

// Result discharges s without eliminating the failure channel.
func Result[D, E, A any](s Script[D, E, A], engine effect.Engine, deps D) effect.Effect[either.Either[E, A]] {
	return s.eval(engine, deps)
}

// Exec discharges s on engine and runs the resulting effect. The returned
// error is an effect error; domain failures are in the Either.
func Exec[D, E, A any](ctx context.Context, engine effect.Engine, s Script[D, E, A], deps D) (either.Either[E, A], error) {
	return effect.Run(ctx, Result(s, engine, deps))
}
