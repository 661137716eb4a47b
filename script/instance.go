package script

import (
	"github.com/mgomes/scriptfx/effect"
	"github.com/mgomes/scriptfx/either"
)

// TailRecM runs step from seed until it yields a done effect.Step, stopping
// early on a domain failure. Iteration is driven by the engine's loop, so the
// call stack does not grow with the number of iterations.
func TailRecM[D, E, S, A any](seed S, step func(S) Script[D, E, effect.Step[S, A]]) Script[D, E, A] {
	return New(func(engine effect.Engine, deps D) effect.Effect[either.Either[E, A]] {
		return effect.TailRecM(engine, seed, func(s S) effect.Effect[effect.Step[S, either.Either[E, A]]] {
			return effect.Map(step(s).eval(engine, deps), func(r either.Either[E, effect.Step[S, A]]) effect.Step[S, either.Either[E, A]] {
				st, ok := r.GetRight()
				if !ok {
					e, _ := r.GetLeft()
					return effect.Done[S](either.Left[E, A](e))
				}
				if st.IsDone() {
					return effect.Done[S](either.Right[E](st.Value()))
				}
				return effect.Continue[S, either.Either[E, A]](st.Seed())
			})
		})
	})
}

type traverseState[B any] struct {
	index int
	acc   []B
}

// Traverse applies f to each item in order and collects the results, stopping
// at the first domain failure.
func Traverse[D, E, A, B any](items []A, f func(A) Script[D, E, B]) Script[D, E, []B] {
	return TailRecM(traverseState[B]{}, func(st traverseState[B]) Script[D, E, effect.Step[traverseState[B], []B]] {
		if st.index >= len(items) {
			return Pure[D, E](effect.Done[traverseState[B]](st.acc))
		}
		return Map(f(items[st.index]), func(b B) effect.Step[traverseState[B], []B] {
			return effect.Continue[traverseState[B], []B](traverseState[B]{index: st.index + 1, acc: append(st.acc, b)})
		})
	})
}

// Erase forgets the success type of s, for use with Instance.
func Erase[D, E, A any](s Script[D, E, A]) Script[D, E, any] {
	return Map(s, func(a A) any { return a })
}

// Instance exposes Script[D, E, any] through the capability interfaces of
// package algebra, with E as the raised type.
type Instance[D, E any] struct{}

// NewInstance returns the capability instance for Scripts needing D and failing with E.
func NewInstance[D, E any]() Instance[D, E] {
	return Instance[D, E]{}
}

func (Instance[D, E]) Pure(a any) Script[D, E, any] {
	return Pure[D, E](a)
}

func (Instance[D, E]) Map(m Script[D, E, any], f func(any) any) Script[D, E, any] {
	return Map(m, f)
}

func (Instance[D, E]) FlatMap(m Script[D, E, any], f func(any) Script[D, E, any]) Script[D, E, any] {
	return FlatMap(m, f)
}

// TailRecM loops while step yields a continuing effect.Step[any, any].
func (Instance[D, E]) TailRecM(seed any, step func(any) Script[D, E, any]) Script[D, E, any] {
	return TailRecM(seed, func(s any) Script[D, E, effect.Step[any, any]] {
		return Map(step(s), func(v any) effect.Step[any, any] { return v.(effect.Step[any, any]) })
	})
}

func (Instance[D, E]) RaiseError(e E) Script[D, E, any] {
	return Fail[D, any](e)
}

func (Instance[D, E]) HandleErrorWith(m Script[D, E, any], h func(E) Script[D, E, any]) Script[D, E, any] {
	return RecoverFailure(m, h)
}
