// Package script implements Script, a deferred computation that needs a
// dependency value of type D and ends either with a domain failure of type E
// or a success value of type A.
//
// A Script separates two kinds of failure:
//   - Domain failures (E) are expected outcomes such as rejected credentials.
//     They travel in-band as either.Left and short-circuit FlatMap chains.
//   - Effect errors are Go error values (and recovered panics) raised by the
//     execution engine. They bypass E entirely and are only seen by
//     RecoverError and LogError.
//
// Scripts are built from constructors ([Pure], [Fail], [Dependencies],
// [LiftEffect], [LiftEffectEither], [FromOption], [Suspend]) and combinators
// ([Map], [FlatMap], [MapFailure], [RecoverFailure], [Script.RecoverError],
// [Inject], [LogFailure], [LogError]). Nothing runs until a Script is
// discharged with [Fold] or [FoldF] and the resulting effect.Effect is run:
//
//	prog := script.FlatMap(script.Dependencies[Config, Failure](), lookup)
//	eff := script.Fold(prog, effect.Sync{}, cfg, describeFailure, describeUser)
//	msg, err := effect.Run(ctx, eff)
//
// The execution engine is chosen at discharge time, so the same Script value
// runs unchanged on effect.Sync, an effect.Pool, or any other effect.Engine.
//
// Go has no variance annotations. A Script that needs less configuration is
// embedded into a larger one with [Inject]; a narrower failure type is widened
// with [MapFailure].
//
// Long or unbounded loops are written with [TailRecM], which is driven by the
// engine's iterative loop rather than nested FlatMap calls. [Instance] exposes
// Script to code written against package algebra.
package script
