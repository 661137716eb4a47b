// Package auth is a small authentication domain written as scripts. It
// exercises dependency access, domain failures, store errors and logging.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mgomes/scriptfx/logging"
	"github.com/mgomes/scriptfx/script"
)

// Config is the service configuration scripts read through Env.
type Config struct {
	URL string `toml:"url"`
}

// Credentials are supplied by the caller of Authenticate.
type Credentials struct {
	Email    string
	Password string
}

// User is a registered account.
type User struct {
	ID    int64
	Email string
	Name  string
}

// Session is issued on successful authentication.
type Session struct {
	Token    string
	User     User
	Issuer   string
	IssuedAt time.Time
}

// Failure is a domain failure of an auth script.
type Failure interface {
	Message() string
}

// WrongCredentials means the email is unknown or the password does not match.
type WrongCredentials struct {
	Email string
}

func (f WrongCredentials) Message() string {
	return fmt.Sprintf("Authentication with user %s failed", f.Email)
}

// UserNotFound means no user has the requested id.
type UserNotFound struct {
	ID int64
}

func (f UserNotFound) Message() string {
	return fmt.Sprintf("User %d not found", f.ID)
}

// InvalidRequest means the request was rejected before reaching the store.
type InvalidRequest struct {
	Reason string
}

func (f InvalidRequest) Message() string {
	return "Invalid request: " + f.Reason
}

// Describe renders a failure for display.
func Describe(f Failure) string {
	if f == nil {
		return ""
	}
	return f.Message()
}

// UserFinder is the store capability the scripts need.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (Account, bool, error)
	FindByID(ctx context.Context, id int64) (User, bool, error)
}

// Env is the dependency value of every auth script.
type Env struct {
	Config Config
	Users  UserFinder
	Log    logging.Logger
	// Now and NewToken default to time.Now and uuid.NewString.
	Now      func() time.Time
	NewToken func() string
}

func (e Env) Logger() logging.Logger { return e.Log }

func (e Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e Env) newToken() string {
	if e.NewToken == nil {
		return uuid.NewString()
	}
	return e.NewToken()
}

type accountLookup struct {
	account Account
	found   bool
}

type userLookup struct {
	user  User
	found bool
}

func storeErrorEntry(op string) func(error) logging.Entry {
	return func(err error) logging.Entry {
		return logging.Error("user store failed",
			slog.String("event", "auth_store_failed"),
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
	}
}

// Issuer reads the configured issuer URL. It needs only Config and is
// embedded into Env-based scripts with script.Inject.
func Issuer() script.Script[Config, Failure, string] {
	return script.FlatMap(script.Dependencies[Config, Failure](), func(cfg Config) script.Script[Config, Failure, string] {
		if cfg.URL == "" {
			return script.Fail[Config, string](Failure(InvalidRequest{Reason: "issuer url not configured"}))
		}
		return script.Pure[Config, Failure](cfg.URL)
	})
}

// FindUser loads the user with id, failing with UserNotFound.
func FindUser(id int64) script.Script[Env, Failure, User] {
	lookup := script.Suspend[Env, Failure](func(ctx context.Context, env Env) (userLookup, error) {
		user, found, err := env.Users.FindByID(ctx, id)
		return userLookup{user: user, found: found}, err
	})
	found := script.FlatMap(script.LogError(lookup, storeErrorEntry("find_by_id")), func(r userLookup) script.Script[Env, Failure, User] {
		return script.FromOption[Env, User, Failure](r.user, r.found, UserNotFound{ID: id})
	})
	return script.LogFailure(found, func(f Failure) logging.Entry {
		return logging.Info("user lookup failed",
			slog.String("event", "auth_user_missing"),
			slog.Int64("user_id", id),
		)
	})
}

// FindUsers loads every id in order and stops at the first missing user.
func FindUsers(ids []int64) script.Script[Env, Failure, []User] {
	return script.Traverse(ids, FindUser)
}

func validate(creds Credentials) script.Script[Env, Failure, Credentials] {
	switch {
	case creds.Email == "":
		return script.Fail[Env, Credentials](Failure(InvalidRequest{Reason: "email is required"}))
	case creds.Password == "":
		return script.Fail[Env, Credentials](Failure(WrongCredentials{Email: creds.Email}))
	}
	return script.Pure[Env, Failure](creds)
}

func findAccount(email string) script.Script[Env, Failure, Account] {
	lookup := script.Suspend[Env, Failure](func(ctx context.Context, env Env) (accountLookup, error) {
		account, found, err := env.Users.FindByEmail(ctx, email)
		return accountLookup{account: account, found: found}, err
	})
	return script.FlatMap(script.LogError(lookup, storeErrorEntry("find_by_email")), func(r accountLookup) script.Script[Env, Failure, Account] {
		return script.FromOption[Env, Account, Failure](r.account, r.found, WrongCredentials{Email: email})
	})
}

func issueSession(user User) script.Script[Env, Failure, Session] {
	issuer := script.Inject(Issuer(), func(env Env) Config { return env.Config })
	return script.FlatMap(issuer, func(url string) script.Script[Env, Failure, Session] {
		return script.Suspend[Env, Failure](func(_ context.Context, env Env) (Session, error) {
			return Session{
				Token:    env.newToken(),
				User:     user,
				Issuer:   url,
				IssuedAt: env.now(),
			}, nil
		})
	})
}

// Authenticate checks creds against the user store and issues a session.
// Unknown emails and wrong passwords both fail with WrongCredentials.
func Authenticate(creds Credentials) script.Script[Env, Failure, Session] {
	account := script.FlatMap(validate(creds), func(c Credentials) script.Script[Env, Failure, Account] {
		return findAccount(c.Email)
	})
	verified := script.FlatMap(account, func(a Account) script.Script[Env, Failure, User] {
		if !a.Verify(creds.Password) {
			return script.Fail[Env, User](Failure(WrongCredentials{Email: creds.Email}))
		}
		return script.Pure[Env, Failure](a.User)
	})
	session := script.FlatMap(verified, issueSession)
	return script.LogFailure(session, func(f Failure) logging.Entry {
		return logging.Warn("authentication failed",
			slog.String("event", "auth_login_failed"),
			slog.String("email", creds.Email),
			slog.String("reason", f.Message()),
		)
	})
}
