package script

import (
	"strconv"
	"testing"

	"github.com/mgomes/scriptfx/effect"
)

func addLawSeeds(f *testing.F) {
	f.Add(0, false)
	f.Add(7, false)
	f.Add(-3, true)
	f.Add(1<<20, true)
}

func FuzzFunctorLaws(f *testing.F) {
	addLawSeeds(f)
	engine := effect.Sync{}
	deps := newAppDeps()
	f.Fuzz(func(t *testing.T, n int, fail bool) {
		s := sample(n, fail)
		identity := Map(s, func(a int) int { return a })
		if !sameResult(exec(t, engine, identity, deps), exec(t, engine, s, deps)) {
			t.Fatalf("map(id) changed the result")
		}

		double := func(a int) int { return a * 2 }
		show := func(a int) string { return strconv.Itoa(a) }
		chained := Map(Map(s, double), show)
		composed := Map(s, func(a int) string { return show(double(a)) })
		if !sameResult(exec(t, engine, chained, deps), exec(t, engine, composed, deps)) {
			t.Fatalf("map(f).map(g) != map(g . f)")
		}
	})
}

func FuzzMonadLaws(f *testing.F) {
	addLawSeeds(f)
	engine := effect.Sync{}
	deps := newAppDeps()
	k := func(a int) Script[appDeps, string, int] {
		if a%3 == 0 {
			return Fail[appDeps, int]("div3:" + strconv.Itoa(a))
		}
		return Pure[appDeps, string](a + 1)
	}
	h := func(a int) Script[appDeps, string, int] { return Pure[appDeps, string](a * 5) }

	f.Fuzz(func(t *testing.T, n int, fail bool) {
		leftID := FlatMap(Pure[appDeps, string](n), k)
		if !sameResult(exec(t, engine, leftID, deps), exec(t, engine, k(n), deps)) {
			t.Fatalf("left identity violated for %d", n)
		}

		s := sample(n, fail)
		rightID := FlatMap(s, func(a int) Script[appDeps, string, int] { return Pure[appDeps, string](a) })
		if !sameResult(exec(t, engine, rightID, deps), exec(t, engine, s, deps)) {
			t.Fatalf("right identity violated")
		}

		leftAssoc := FlatMap(FlatMap(s, k), h)
		rightAssoc := FlatMap(s, func(a int) Script[appDeps, string, int] { return FlatMap(k(a), h) })
		if !sameResult(exec(t, engine, leftAssoc, deps), exec(t, engine, rightAssoc, deps)) {
			t.Fatalf("associativity violated")
		}
	})
}

func FuzzMapFailureLaws(f *testing.F) {
	addLawSeeds(f)
	engine := effect.Sync{}
	deps := newAppDeps()
	f.Fuzz(func(t *testing.T, n int, fail bool) {
		s := sample(n, fail)
		identity := MapFailure(s, func(e string) string { return e })
		if !sameResult(exec(t, engine, identity, deps), exec(t, engine, s, deps)) {
			t.Fatalf("mapFailure(id) changed the result")
		}

		tag := func(e string) string { return "tag:" + e }
		size := func(e string) int { return len(e) }
		chained := MapFailure(MapFailure(s, tag), size)
		composed := MapFailure(s, func(e string) int { return size(tag(e)) })
		if !sameResult(exec(t, engine, chained, deps), exec(t, engine, composed, deps)) {
			t.Fatalf("mapFailure composition violated")
		}
	})
}

func FuzzInjectLaw(f *testing.F) {
	f.Add("auth.service/auth", 3)
	f.Add("", 0)
	engine := effect.Sync{}

	type inner struct{ url string }
	type middle struct {
		in   inner
		port int
	}
	type outer struct {
		mid  middle
		name string
	}

	f.Fuzz(func(t *testing.T, url string, port int) {
		s := Asks[inner, string](func(d inner) string { return d.url })
		proj1 := func(m middle) inner { return m.in }
		proj2 := func(o outer) middle { return o.mid }
		deps := outer{mid: middle{in: inner{url: url}, port: port}, name: "x"}

		stepwise := Inject(Inject(s, proj1), proj2)
		direct := Inject(s, func(o outer) inner { return proj1(proj2(o)) })
		if !sameResult(exec(t, engine, stepwise, deps), exec(t, engine, direct, deps)) {
			t.Fatalf("inject(p1).inject(p2) != inject(p2 >> p1)")
		}
	})
}
