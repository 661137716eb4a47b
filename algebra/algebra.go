// Package algebra describes sequencing capabilities over type-erased programs
// and derives generic operations from them.
//
// Go has no higher-kinded generics, so a program type M (for example
// effect.Effect[any] or script.Script[D, E, any]) is paired with an instance
// value implementing these interfaces. Values flowing through M are erased to
// any; TailRecM steps yield effect.Step[any, any].
package algebra

import (
	"github.com/mgomes/scriptfx/effect"
	"github.com/mgomes/scriptfx/either"
)

// Functor maps the value produced by a program.
type Functor[M any] interface {
	Map(m M, f func(any) any) M
}

// Monad sequences programs. TailRecM must not grow the call stack with the
// number of iterations.
type Monad[M any] interface {
	Functor[M]
	Pure(a any) M
	FlatMap(m M, f func(any) M) M
	TailRecM(seed any, step func(any) M) M
}

// MonadError adds raising and handling of errors of type E.
type MonadError[M, E any] interface {
	Monad[M]
	RaiseError(e E) M
	HandleErrorWith(m M, h func(E) M) M
}

type traverseState struct {
	index int
	acc   []any
}

// Traverse applies f to each item in order and collects the results. It runs
// through TailRecM, so long inputs are safe.
func Traverse[M any](m Monad[M], items []any, f func(any) M) M {
	return m.TailRecM(traverseState{}, func(s any) M {
		st := s.(traverseState)
		if st.index >= len(items) {
			return m.Pure(effect.Done[any, any](st.acc))
		}
		return m.Map(f(items[st.index]), func(v any) any {
			return effect.Continue[any, any](traverseState{index: st.index + 1, acc: append(st.acc, v)})
		})
	})
}

// Replicate runs action n times in sequence and collects the results. A
// non-positive n yields an empty slice without running action.
func Replicate[M any](m Monad[M], n int, action M) M {
	items := make([]any, max(n, 0))
	return Traverse(m, items, func(any) M { return action })
}

// IterateUntil feeds the value of each run of f back into f, starting from
// seed, until done reports true for a produced value.
func IterateUntil[M any](m Monad[M], seed any, f func(any) M, done func(any) bool) M {
	return m.TailRecM(seed, func(s any) M {
		return m.Map(f(s), func(v any) any {
			if done(v) {
				return effect.Done[any, any](v)
			}
			return effect.Continue[any, any](v)
		})
	})
}

// AttemptE exposes a raised error of m as a Left value; the result never raises.
func AttemptE[M, E any](me MonadError[M, E], m M) M {
	attempted := me.Map(m, func(v any) any { return either.Right[E](v) })
	return me.HandleErrorWith(attempted, func(e E) M {
		return me.Pure(either.Left[E, any](e))
	})
}
