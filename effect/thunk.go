package effect

import (
	"context"
	"fmt"
)

// Helpers shared by the engines whose Raw representation is a Thunk.

func thunkOf(raw Raw) (Thunk, error) {
	th, ok := raw.(Thunk)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrForeignRaw, raw)
	}
	return th, nil
}

// invoke runs raw, turning a panic into a *PanicError.
func invoke(ctx context.Context, raw Raw) (v Erased, err error) {
	th, err := thunkOf(raw)
	if err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, &PanicError{Value: r}
		}
	}()
	return th(ctx)
}

func thunkPure(v Erased) Raw {
	return Thunk(func(context.Context) (Erased, error) { return v, nil })
}

func thunkRaise(err error) Raw {
	return Thunk(func(context.Context) (Erased, error) { return nil, err })
}

// thunkDetach runs fn even when ctx is done, under a context that ignores
// ctx's cancellation but keeps its values.
func thunkDetach(fn Thunk) Raw {
	return Thunk(func(ctx context.Context) (Erased, error) {
		return invoke(context.WithoutCancel(ctx), fn)
	})
}

func thunkMap(fa Raw, f func(Erased) Erased) Raw {
	return Thunk(func(ctx context.Context) (Erased, error) {
		v, err := invoke(ctx, fa)
		if err != nil {
			return nil, err
		}
		return f(v), nil
	})
}

func thunkFlatMap(fa Raw, f func(Erased) Raw) Raw {
	return Thunk(func(ctx context.Context) (Erased, error) {
		v, err := invoke(ctx, fa)
		if err != nil {
			return nil, err
		}
		return invoke(ctx, f(v))
	})
}

func thunkAttempt(fa Raw) Raw {
	return Thunk(func(ctx context.Context) (Erased, error) {
		v, err := invoke(ctx, fa)
		return Outcome[Erased]{Value: v, Err: err}, nil
	})
}

func thunkLoop(seed Erased, step func(Erased) Raw) Raw {
	return Thunk(func(ctx context.Context) (Erased, error) {
		cur := seed
		for {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			v, err := invoke(ctx, step(cur))
			if err != nil {
				return nil, err
			}
			st, ok := v.(Step[Erased, Erased])
			if !ok {
				return nil, fmt.Errorf("effect: loop step yielded %T, want Step", v)
			}
			if st.IsDone() {
				return st.Value(), nil
			}
			cur = st.Seed()
		}
	})
}
