package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setupStoreTest(t *testing.T) (*Store, context.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	store, err := OpenStore(ctx, filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, ctx
}

func TestStoreAddAndFind(t *testing.T) {
	t.Parallel()
	store, ctx := setupStoreTest(t)

	user, err := store.Add(ctx, "  Bob@Example.com ", "Bob", "hunter2")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "bob@example.com", user.Email)

	account, found, err := store.FindByEmail(ctx, "BOB@example.com")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, user, account.User)
	require.True(t, account.Verify("hunter2"))
	require.False(t, account.Verify("hunter3"))

	byID, found, err := store.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, user, byID)
}

func TestStoreMissingRows(t *testing.T) {
	t.Parallel()
	store, ctx := setupStoreTest(t)

	_, found, err := store.FindByEmail(ctx, "none@y.com")
	require.NoError(t, err)
	require.False(t, found)

	_, found, err = store.FindByID(ctx, 7)
	require.NoError(t, err)
	require.False(t, found)
}

func TestStoreRejectsDuplicatesAndBlanks(t *testing.T) {
	t.Parallel()
	store, ctx := setupStoreTest(t)

	_, err := store.Add(ctx, "a@y.com", "", "pw")
	require.NoError(t, err)

	_, err = store.Add(ctx, "A@y.com", "", "pw")
	require.ErrorIs(t, err, ErrDuplicateKey)

	_, err = store.Add(ctx, " ", "", "pw")
	require.Error(t, err)

	_, err = store.Add(ctx, "b@y.com", "", "")
	require.Error(t, err)
}

func TestStoreList(t *testing.T) {
	t.Parallel()
	store, ctx := setupStoreTest(t)

	for _, email := range []string{"c@y.com", "a@y.com", "b@y.com"} {
		_, err := store.Add(ctx, email, "", "pw")
		require.NoError(t, err)
	}
	users, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	require.Equal(t, "c@y.com", users[0].Email)
	require.Equal(t, "b@y.com", users[2].Email)
}

func TestStoreReopenKeepsUsers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.db")

	first, err := OpenStore(ctx, path)
	require.NoError(t, err)
	user, err := first.Add(ctx, "x@y.com", "X", "pw")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := OpenStore(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })
	got, found, err := second.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, user, got)
}

func TestNewStoreRejectsNil(t *testing.T) {
	t.Parallel()
	_, err := NewStore(nil)
	require.ErrorIs(t, err, ErrNilDB)

	_, err = OpenStore(context.Background(), "")
	require.Error(t, err)
}

func TestAccountWithoutHashNeverVerifies(t *testing.T) {
	t.Parallel()
	require.False(t, (Account{}).Verify(""))
}
