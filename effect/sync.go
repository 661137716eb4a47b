package effect

import "context"

// Sync runs effects on the calling goroutine.
type Sync struct{}

var _ Engine = Sync{}

func (Sync) Pure(v Erased) Raw { return thunkPure(v) }

func (Sync) Raise(err error) Raw { return thunkRaise(err) }

func (Sync) Delay(fn Thunk) Raw {
	return Thunk(func(ctx context.Context) (Erased, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return fn(ctx)
	})
}

func (Sync) Detach(fn Thunk) Raw { return thunkDetach(fn) }

func (Sync) Map(fa Raw, f func(Erased) Erased) Raw { return thunkMap(fa, f) }

func (Sync) FlatMap(fa Raw, f func(Erased) Raw) Raw { return thunkFlatMap(fa, f) }

func (Sync) Attempt(fa Raw) Raw { return thunkAttempt(fa) }

func (Sync) Loop(seed Erased, step func(Erased) Raw) Raw { return thunkLoop(seed, step) }

func (Sync) Run(ctx context.Context, fa Raw) (Erased, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return invoke(ctx, fa)
}
