// Package effect defines the capability contract a script needs from an
// execution engine and ships two engines that satisfy it.
//
// An [Engine] works on type-erased effect descriptions ([Raw]). Callers use the
// typed [Effect] wrapper and the generic functions in this package ([Pure],
// [Delay], [Map], [FlatMap], [Attempt], [TailRecM], [Run]), which check the
// value types at the erasure boundary.
//
// Building an effect never performs work. Work happens only inside [Run], on
// whatever goroutines the engine chooses.
package effect

import (
	"context"
	"errors"
	"fmt"
)

// Erased marks a type-erased intermediate value crossing the engine boundary.
type Erased = any

// Raw is an engine-specific effect description. Only the engine that built a
// Raw value can interpret it.
type Raw any

// Thunk is a suspended computation handed to [Engine.Delay].
type Thunk func(ctx context.Context) (Erased, error)

// Unit is the value of effects run only for their side effect.
type Unit = struct{}

var (
	// ErrZeroEffect is returned when running an Effect that was never built by an engine.
	ErrZeroEffect = errors.New("effect: zero Effect has no engine")
	// ErrForeignRaw is returned when an engine is asked to run a Raw value it did not build.
	ErrForeignRaw = errors.New("effect: raw value built by another engine")
)

// Engine is the capability contract. Implementations must be comparable with
// == so that effects built by different engines can be detected and bridged.
type Engine interface {
	// Pure describes an effect that yields v.
	Pure(v Erased) Raw
	// Raise describes an effect that fails with err.
	Raise(err error) Raw
	// Delay suspends fn until the effect runs.
	Delay(fn Thunk) Raw
	// Detach suspends fn like Delay, but fn runs even after the run's context
	// is done and receives a context that is never cancelled.
	Detach(fn Thunk) Raw
	// Map transforms the value yielded by fa.
	Map(fa Raw, f func(Erased) Erased) Raw
	// FlatMap runs fa and then the effect returned by f.
	FlatMap(fa Raw, f func(Erased) Raw) Raw
	// Attempt describes an effect that never fails: it yields Outcome[Erased]
	// holding either the value of fa or the error (or recovered panic) it raised.
	Attempt(fa Raw) Raw
	// Loop repeatedly runs step, starting from seed, until the Step[Erased, Erased]
	// it yields is done. Iteration must not grow the call stack.
	Loop(seed Erased, step func(Erased) Raw) Raw
	// Run executes fa and returns its value or error.
	Run(ctx context.Context, fa Raw) (Erased, error)
}

// Outcome is the result of [Attempt]: Err is nil when Value is valid.
type Outcome[A any] struct {
	Value A
	Err   error
}

// Failed reports whether the attempted effect raised an error.
func (o Outcome[A]) Failed() bool { return o.Err != nil }

// Step is the signal a loop body yields: continue with a new seed, or finish
// with a value.
type Step[S, A any] struct {
	done  bool
	seed  S
	value A
}

// Continue signals another iteration starting from seed.
func Continue[S, A any](seed S) Step[S, A] {
	return Step[S, A]{seed: seed}
}

// Done signals the end of the loop with value.
func Done[S, A any](value A) Step[S, A] {
	return Step[S, A]{done: true, value: value}
}

// IsDone reports whether the loop should stop.
func (s Step[S, A]) IsDone() bool { return s.done }

// Seed returns the next seed of a continuing step.
func (s Step[S, A]) Seed() S { return s.seed }

// Value returns the final value of a done step.
func (s Step[S, A]) Value() A { return s.value }

// Erase converts s to the form engines consume in [Engine.Loop].
func (s Step[S, A]) Erase() Step[Erased, Erased] {
	if s.done {
		return Done[Erased, Erased](s.value)
	}
	return Continue[Erased, Erased](s.seed)
}

// PanicError wraps a panic recovered while running an effect.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("effect: panic: %v", e.Value)
}

// Unwrap exposes a panicked error value to errors.Is and errors.As.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func cast[A any](v Erased) A {
	if v == nil {
		var zero A
		return zero
	}
	return v.(A)
}
