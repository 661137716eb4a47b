package effect

import "context"

// Effect is a typed effect value yielding A. It remembers the engine that
// built it. The zero Effect runs to ErrZeroEffect.
type Effect[A any] struct {
	engine Engine
	raw    Raw
}

// Wrap types a raw value built by engine. The raw value must yield an A.
func Wrap[A any](engine Engine, raw Raw) Effect[A] {
	return Effect[A]{engine: engine, raw: raw}
}

// Engine returns the engine that built fa, or nil for the zero Effect.
func (fa Effect[A]) Engine() Engine { return fa.engine }

// Raw returns the engine-specific description of fa.
func (fa Effect[A]) Raw() Raw { return fa.raw }

// Pure returns an effect that yields a.
func Pure[A any](engine Engine, a A) Effect[A] {
	if engine == nil {
		return Effect[A]{}
	}
	return Effect[A]{engine: engine, raw: engine.Pure(a)}
}

// Fail returns an effect that fails with err.
func Fail[A any](engine Engine, err error) Effect[A] {
	if engine == nil {
		return Effect[A]{}
	}
	return Effect[A]{engine: engine, raw: engine.Raise(err)}
}

// Delay suspends fn on engine. fn runs each time the effect runs.
func Delay[A any](engine Engine, fn func(ctx context.Context) (A, error)) Effect[A] {
	if engine == nil {
		return Effect[A]{}
	}
	return Effect[A]{engine: engine, raw: engine.Delay(func(ctx context.Context) (Erased, error) {
		return fn(ctx)
	})}
}

// Detach suspends fn on engine like [Delay], except that fn also runs when the
// run's context is already done. fn sees a context without cancellation.
func Detach[A any](engine Engine, fn func(ctx context.Context) (A, error)) Effect[A] {
	if engine == nil {
		return Effect[A]{}
	}
	return Effect[A]{engine: engine, raw: engine.Detach(func(ctx context.Context) (Erased, error) {
		return fn(ctx)
	})}
}

// Map transforms the value of fa.
func Map[A, B any](fa Effect[A], f func(A) B) Effect[B] {
	if fa.engine == nil {
		return Effect[B]{}
	}
	return Effect[B]{engine: fa.engine, raw: fa.engine.Map(fa.raw, func(v Erased) Erased {
		return f(cast[A](v))
	})}
}

// As replaces the value of fa with b.
func As[A, B any](fa Effect[A], b B) Effect[B] {
	return Map(fa, func(A) B { return b })
}

// Void discards the value of fa.
func Void[A any](fa Effect[A]) Effect[Unit] {
	return As(fa, Unit{})
}

// FlatMap runs fa and then the effect f builds from its value. An effect built
// by a different engine is bridged by running it inside fa's engine.
func FlatMap[A, B any](fa Effect[A], f func(A) Effect[B]) Effect[B] {
	if fa.engine == nil {
		return Effect[B]{}
	}
	engine := fa.engine
	return Effect[B]{engine: engine, raw: engine.FlatMap(fa.raw, func(v Erased) Raw {
		return adopt(engine, f(cast[A](v)))
	})}
}

// Attempt captures any error raised by fa, including recovered panics.
// The returned effect does not fail.
func Attempt[A any](fa Effect[A]) Effect[Outcome[A]] {
	if fa.engine == nil {
		return Effect[Outcome[A]]{}
	}
	attempted := Effect[Outcome[Erased]]{engine: fa.engine, raw: fa.engine.Attempt(fa.raw)}
	return Map(attempted, func(o Outcome[Erased]) Outcome[A] {
		return Outcome[A]{Value: cast[A](o.Value), Err: o.Err}
	})
}

// HandleErrorWith replaces a failure of fa with the effect built by h.
func HandleErrorWith[A any](fa Effect[A], h func(error) Effect[A]) Effect[A] {
	engine := fa.engine
	return FlatMap(Attempt(fa), func(o Outcome[A]) Effect[A] {
		if o.Err != nil {
			return h(o.Err)
		}
		return Pure(engine, o.Value)
	})
}

// TailRecM runs step from seed until it yields a done Step. Iteration is driven
// by the engine's loop so the call stack stays flat for any iteration count.
func TailRecM[S, A any](engine Engine, seed S, step func(S) Effect[Step[S, A]]) Effect[A] {
	if engine == nil {
		return Effect[A]{}
	}
	return Effect[A]{engine: engine, raw: engine.Loop(seed, func(s Erased) Raw {
		erased := Map(step(cast[S](s)), Step[S, A].Erase)
		return adopt(engine, erased)
	})}
}

// Run executes fa.
func Run[A any](ctx context.Context, fa Effect[A]) (A, error) {
	if fa.engine == nil {
		var zero A
		return zero, ErrZeroEffect
	}
	v, err := fa.engine.Run(ctx, fa.raw)
	if err != nil {
		var zero A
		return zero, err
	}
	return cast[A](v), nil
}

func adopt[A any](engine Engine, next Effect[A]) Raw {
	switch next.engine {
	case engine:
		return next.raw
	case nil:
		return engine.Raise(ErrZeroEffect)
	}
	return engine.Delay(func(ctx context.Context) (Erased, error) {
		return next.engine.Run(ctx, next.raw)
	})
}

// Adopt moves fa onto engine. An effect already built by engine is returned
// unchanged; any other effect is run inside a thunk suspended on engine.
func Adopt[A any](engine Engine, fa Effect[A]) Effect[A] {
	if engine == nil {
		return Effect[A]{}
	}
	return Effect[A]{engine: engine, raw: adopt(engine, fa)}
}
