package effect

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// PoolConfig controls the worker bound of a Pool engine.
type PoolConfig struct {
	// Workers is the maximum number of suspended thunks running at once.
	// Zero means runtime.GOMAXPROCS(0).
	Workers int
}

// Pool runs suspended thunks on goroutines, at most Workers at a time. The
// goroutine calling Run blocks until each thunk completes or ctx is done.
// Composition (Map, FlatMap, Loop) runs on the calling goroutine. A thunk
// suspended while already running on one of the pool's workers runs inline on
// that worker, so effects bridged into the pool never wait on their own slot.
type Pool struct {
	sem     *semaphore.Weighted
	workers int
}

var _ Engine = (*Pool)(nil)

// NewPool constructs a Pool engine.
func NewPool(cfg PoolConfig) (*Pool, error) {
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("effect: pool workers must be non-negative, got %d", cfg.Workers)
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{
		sem:     semaphore.NewWeighted(int64(cfg.Workers)),
		workers: cfg.Workers,
	}, nil
}

// MustNewPool constructs a Pool or panics on an invalid config.
func MustNewPool(cfg PoolConfig) *Pool {
	pool, err := NewPool(cfg)
	if err != nil {
		panic(err)
	}
	return pool
}

// Workers reports the configured worker bound.
func (p *Pool) Workers() int { return p.workers }

func (p *Pool) Pure(v Erased) Raw { return thunkPure(v) }

func (p *Pool) Raise(err error) Raw { return thunkRaise(err) }

// workerKey marks a context passed to a thunk running on a worker of pool.
type workerKey struct{ pool *Pool }

func (p *Pool) onWorker(ctx context.Context) bool {
	marked, _ := ctx.Value(workerKey{pool: p}).(bool)
	return marked
}

type poolResult struct {
	value Erased
	err   error
}

func (p *Pool) Delay(fn Thunk) Raw {
	return Thunk(func(ctx context.Context) (Erased, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p.onWorker(ctx) {
			return invoke(ctx, fn)
		}
		if err := p.sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		workerCtx := context.WithValue(ctx, workerKey{pool: p}, true)
		done := make(chan poolResult, 1)
		go func() {
			defer p.sem.Release(1)
			v, err := invoke(workerCtx, fn)
			done <- poolResult{value: v, err: err}
		}()
		select {
		case res := <-done:
			return res.value, res.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})
}

// Detach runs fn on the calling goroutine without taking a worker slot.
func (p *Pool) Detach(fn Thunk) Raw { return thunkDetach(fn) }

func (p *Pool) Map(fa Raw, f func(Erased) Erased) Raw { return thunkMap(fa, f) }

func (p *Pool) FlatMap(fa Raw, f func(Erased) Raw) Raw { return thunkFlatMap(fa, f) }

func (p *Pool) Attempt(fa Raw) Raw { return thunkAttempt(fa) }

func (p *Pool) Loop(seed Erased, step func(Erased) Raw) Raw { return thunkLoop(seed, step) }

func (p *Pool) Run(ctx context.Context, fa Raw) (Erased, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return invoke(ctx, fa)
}
