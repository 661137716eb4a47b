package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var (
	ErrNilDB        = errors.New("auth: nil database")
	ErrDuplicateKey = errors.New("auth: email already registered")
)

// Account is a user together with its stored password hash.
type Account struct {
	User
	Salt         string
	PasswordHash string
}

// Verify reports whether password matches the stored hash.
func (a Account) Verify(password string) bool {
	if a.PasswordHash == "" {
		return false
	}
	want := []byte(a.PasswordHash)
	got := []byte(hashPassword(a.Salt, password))
	return subtle.ConstantTimeCompare(want, got) == 1
}

func hashPassword(salt, password string) string {
	sum := sha256.Sum256([]byte(salt + ":" + password))
	return hex.EncodeToString(sum[:])
}

// Store keeps users in SQLite.
type Store struct {
	db *sql.DB
}

// OpenStore opens the SQLite database at path and migrates it. Use ":memory:"
// for a private in-memory database.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("auth: store path is empty")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("auth: open store: %w", err)
	}
	// ":memory:" databases exist per connection
	db.SetMaxOpenConns(1)
	store, err := NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// NewStore wraps an open database. Call Migrate before use.
func NewStore(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, ErrNilDB
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the schema if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	email         TEXT NOT NULL UNIQUE,
	name          TEXT NOT NULL DEFAULT '',
	salt          TEXT NOT NULL,
	password_hash TEXT NOT NULL
);`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("auth: migrate: %w", err)
	}
	return nil
}

// Add registers a user. Emails are stored lower-cased.
func (s *Store) Add(ctx context.Context, email, name, password string) (User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return User{}, errors.New("auth: email is required")
	}
	if password == "" {
		return User{}, errors.New("auth: password is required")
	}
	salt := uuid.NewString()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (email, name, salt, password_hash) VALUES (?, ?, ?, ?)`,
		email, name, salt, hashPassword(salt, password),
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return User{}, fmt.Errorf("%w: %s", ErrDuplicateKey, email)
		}
		return User{}, fmt.Errorf("auth: add user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return User{}, fmt.Errorf("auth: add user id: %w", err)
	}
	return User{ID: id, Email: email, Name: name}, nil
}

// FindByEmail looks up an account by email. found is false when no user has
// that email.
func (s *Store) FindByEmail(ctx context.Context, email string) (Account, bool, error) {
	var a Account
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, name, salt, password_hash FROM users WHERE email = ?`,
		normalizeEmail(email),
	).Scan(&a.ID, &a.Email, &a.Name, &a.Salt, &a.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, false, nil
	}
	if err != nil {
		return Account{}, false, fmt.Errorf("auth: find by email: %w", err)
	}
	return a, true, nil
}

// FindByID looks up a user by id.
func (s *Store) FindByID(ctx context.Context, id int64) (User, bool, error) {
	var u User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, name FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Email, &u.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, fmt.Errorf("auth: find by id: %w", err)
	}
	return u, true, nil
}

// List returns all users ordered by id.
func (s *Store) List(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, email, name FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("auth: list users: %w", err)
	}
	defer rows.Close()
	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name); err != nil {
			return nil, fmt.Errorf("auth: scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("auth: list users: %w", err)
	}
	return users, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
