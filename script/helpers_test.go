package script

import (
	"context"
	"testing"

	"github.com/mgomes/scriptfx/effect"
	"github.com/mgomes/scriptfx/either"
	"github.com/mgomes/scriptfx/logging"
)

type appDeps struct {
	URL string
	log *logging.Recorder
}

func (d appDeps) Logger() logging.Logger { return d.log }

func newAppDeps() appDeps {
	return appDeps{URL: "auth.service/auth", log: &logging.Recorder{}}
}

func testEngines(t testing.TB) map[string]effect.Engine {
	t.Helper()
	return map[string]effect.Engine{
		"sync": effect.Sync{},
		"pool": effect.MustNewPool(effect.PoolConfig{Workers: 2}),
	}
}

func exec[D, E, A any](t testing.TB, engine effect.Engine, s Script[D, E, A], deps D) either.Either[E, A] {
	t.Helper()
	out, err := Exec(context.Background(), engine, s, deps)
	if err != nil {
		t.Fatalf("exec failed: %v", err)
	}
	return out
}

func sameResult[E, A comparable](a, b either.Either[E, A]) bool {
	if a.IsRight() != b.IsRight() {
		return false
	}
	if a.IsRight() {
		x, _ := a.GetRight()
		y, _ := b.GetRight()
		return x == y
	}
	x, _ := a.GetLeft()
	y, _ := b.GetLeft()
	return x == y
}

// sample succeeds with n, or fails with "fail" when fail is set.
func sample(n int, fail bool) Script[appDeps, string, int] {
	if fail {
		return Fail[appDeps, int]("fail")
	}
	return Pure[appDeps, string](n)
}
