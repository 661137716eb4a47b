package auth

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/mgomes/scriptfx/effect"
	"github.com/mgomes/scriptfx/either"
	"github.com/mgomes/scriptfx/logging"
	"github.com/mgomes/scriptfx/script"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestEnv(t *testing.T, users UserFinder) (Env, *logging.Recorder) {
	t.Helper()
	rec := &logging.Recorder{MinLevel: slog.LevelDebug}
	return Env{
		Config:   Config{URL: "auth.service/auth"},
		Users:    users,
		Log:      rec,
		Now:      func() time.Time { return fixedNow },
		NewToken: func() string { return "token-1" },
	}, rec
}

func run[A any](t *testing.T, s script.Script[Env, Failure, A], env Env) either.Either[Failure, A] {
	t.Helper()
	out, err := script.Exec(context.Background(), effect.Sync{}, s, env)
	if err != nil {
		t.Fatalf("exec failed: %v", err)
	}
	return out
}

func TestAuthenticateIssuesSession(t *testing.T) {
	store := newTestStore(t)
	user, err := store.Add(context.Background(), "Ada@Example.com", "Ada", "s3cret")
	if err != nil {
		t.Fatalf("add user: %v", err)
	}
	env, rec := newTestEnv(t, store)

	out := run(t, Authenticate(Credentials{Email: "ada@example.com", Password: "s3cret"}), env)
	session, ok := out.GetRight()
	if !ok {
		f, _ := out.GetLeft()
		t.Fatalf("expected session, got failure %q", Describe(f))
	}
	if session.Token != "token-1" || session.Issuer != "auth.service/auth" || !session.IssuedAt.Equal(fixedNow) {
		t.Fatalf("unexpected session %+v", session)
	}
	if session.User != user {
		t.Fatalf("expected user %+v, got %+v", user, session.User)
	}
	if got := rec.Entries(); len(got) != 0 {
		t.Fatalf("expected no log entries on success, got %+v", got)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Add(context.Background(), "x@y.com", "", "right"); err != nil {
		t.Fatalf("add user: %v", err)
	}
	env, rec := newTestEnv(t, store)

	out := run(t, Authenticate(Credentials{Email: "x@y.com", Password: "wrong"}), env)
	f, failed := out.GetLeft()
	if !failed {
		t.Fatalf("expected failure")
	}
	if got := Describe(f); got != "Authentication with user x@y.com failed" {
		t.Fatalf("unexpected message %q", got)
	}
	entries := rec.Entries()
	if len(entries) != 1 || entries[0].Message != "authentication failed" {
		t.Fatalf("expected one warn entry, got %+v", entries)
	}
}

func TestAuthenticateUnknownEmailLooksLikeWrongPassword(t *testing.T) {
	env, _ := newTestEnv(t, newTestStore(t))
	out := run(t, Authenticate(Credentials{Email: "ghost@y.com", Password: "pw"}), env)
	f, _ := out.GetLeft()
	if _, ok := f.(WrongCredentials); !ok {
		t.Fatalf("expected WrongCredentials, got %#v", f)
	}
}

func TestAuthenticateRejectsEmptyEmail(t *testing.T) {
	env, _ := newTestEnv(t, nil)
	out := run(t, Authenticate(Credentials{Password: "pw"}), env)
	f, _ := out.GetLeft()
	if _, ok := f.(InvalidRequest); !ok {
		t.Fatalf("expected InvalidRequest, got %#v", f)
	}
}

func TestAuthenticateWithoutIssuer(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Add(context.Background(), "x@y.com", "", "pw"); err != nil {
		t.Fatalf("add user: %v", err)
	}
	env, _ := newTestEnv(t, store)
	env.Config.URL = ""
	out := run(t, Authenticate(Credentials{Email: "x@y.com", Password: "pw"}), env)
	f, _ := out.GetLeft()
	if got := Describe(f); got != "Invalid request: issuer url not configured" {
		t.Fatalf("unexpected failure %q", got)
	}
}

func TestFindUser(t *testing.T) {
	store := newTestStore(t)
	user, err := store.Add(context.Background(), "x@y.com", "X", "pw")
	if err != nil {
		t.Fatalf("add user: %v", err)
	}
	env, rec := newTestEnv(t, store)

	found := run(t, FindUser(user.ID), env)
	if got, _ := found.GetRight(); got != user {
		t.Fatalf("expected %+v, got %+v", user, got)
	}

	missing := run(t, FindUser(42), env)
	f, _ := missing.GetLeft()
	if got := Describe(f); got != "User 42 not found" {
		t.Fatalf("unexpected message %q", got)
	}
	if entries := rec.Entries(); len(entries) != 1 || entries[0].Message != "user lookup failed" {
		t.Fatalf("expected one lookup entry, got %+v", entries)
	}
}

func TestFindUsersStopsAtFirstMissing(t *testing.T) {
	store := newTestStore(t)
	a, _ := store.Add(context.Background(), "a@y.com", "A", "pw")
	b, _ := store.Add(context.Background(), "b@y.com", "B", "pw")
	env, _ := newTestEnv(t, store)

	out := run(t, FindUsers([]int64{a.ID, b.ID}), env)
	users, ok := out.GetRight()
	if !ok || len(users) != 2 || users[0] != a || users[1] != b {
		t.Fatalf("unexpected users %+v", users)
	}

	out = run(t, FindUsers([]int64{a.ID, 99, 100}), env)
	f, _ := out.GetLeft()
	if nf, ok := f.(UserNotFound); !ok || nf.ID != 99 {
		t.Fatalf("expected UserNotFound(99), got %#v", f)
	}
}

type brokenStore struct{ err error }

func (b brokenStore) FindByEmail(context.Context, string) (Account, bool, error) {
	return Account{}, false, b.err
}

func (b brokenStore) FindByID(context.Context, int64) (User, bool, error) {
	return User{}, false, b.err
}

func TestStoreErrorIsLoggedAndRaised(t *testing.T) {
	outage := errors.New("disk on fire")
	env, rec := newTestEnv(t, brokenStore{err: outage})

	_, err := script.Exec(context.Background(), effect.Sync{}, Authenticate(Credentials{Email: "x@y.com", Password: "pw"}), env)
	if !errors.Is(err, outage) {
		t.Fatalf("expected store error, got %v", err)
	}
	entries := rec.Entries()
	if len(entries) != 1 || entries[0].Message != "user store failed" {
		t.Fatalf("expected store failure entry, got %+v", entries)
	}
}

func TestAuthenticateOnPool(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Add(context.Background(), "x@y.com", "", "pw"); err != nil {
		t.Fatalf("add user: %v", err)
	}
	env, _ := newTestEnv(t, store)
	pool := effect.MustNewPool(effect.PoolConfig{Workers: 2})

	msg, err := effect.Run(context.Background(), script.Fold(
		Authenticate(Credentials{Email: "x@y.com", Password: "nope"}), pool, env,
		Describe,
		func(s Session) string { return s.Token },
	))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if msg != "Authentication with user x@y.com failed" {
		t.Fatalf("unexpected message %q", msg)
	}
}
