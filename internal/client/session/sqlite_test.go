package session

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gradebook/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) (*SQLiteStore, *sql.DB) {
	t.Helper()
	db, err := OpenDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteStore(db), db
}

func countKeys(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM session`).Scan(&n))
	return n
}

func TestOpenDatabase_MigratesAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "session.db")

	db, err := OpenDatabase(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, db.Close())

	db, err = OpenDatabase(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, 0, countKeys(t, db))
}

func TestSQLiteStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store, db := openStore(t)

	want := Session{
		AccessToken:        "t1",
		UserID:             "7",
		Role:               models.RoleAdmin,
		Username:           "admin1",
		MustChangePassword: true,
	}
	require.NoError(t, store.Save(ctx, want))
	assert.Equal(t, len(Keys), countKeys(t, db))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	tok, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t1", tok)
}

func TestSQLiteStore_SaveReplacesWholeRecord(t *testing.T) {
	ctx := context.Background()
	store, _ := openStore(t)

	require.NoError(t, store.Save(ctx, Session{AccessToken: "old", Role: models.RoleAdmin, Username: "admin1", UserID: "1"}))
	require.NoError(t, store.Save(ctx, Session{AccessToken: "new", Role: models.RoleTeacher}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Session{AccessToken: "new", Role: models.RoleTeacher}, got)
}

func TestSQLiteStore_ClearRemovesEveryKey(t *testing.T) {
	ctx := context.Background()
	store, db := openStore(t)

	require.NoError(t, store.Save(ctx, Session{AccessToken: "t", Role: models.RoleTeacher, Username: "teacher1", UserID: "2"}))
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))
	assert.Equal(t, 0, countKeys(t, db))

	tok, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestSQLiteStore_PartialRecordIsInconsistent(t *testing.T) {
	ctx := context.Background()
	store, db := openStore(t)

	_, err := db.Exec(`INSERT INTO session(key, value) VALUES (?, ?)`, KeyUserRole, "admin")
	require.NoError(t, err)

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, got.Consistent())
}

func TestSQLiteStore_ErrorsAreWrapped(t *testing.T) {
	ctx := context.Background()
	store, db := openStore(t)
	require.NoError(t, db.Close())

	_, err := store.Load(ctx)
	require.ErrorContains(t, err, "failed to list session")

	_, err = store.Token(ctx)
	require.ErrorContains(t, err, "failed to get session[access_token]")

	require.ErrorContains(t, store.Clear(ctx), "failed to clear session")
	require.Error(t, store.Save(ctx, Session{AccessToken: "t"}))
}

func TestOpenDatabase_CreatesParentDirectory(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "profile", "gradebook", "session.db")

	db, err := OpenDatabase(context.Background(), dsn)
	require.NoError(t, err)
	defer db.Close()

	store := NewSQLiteStore(db)
	require.NoError(t, store.Save(context.Background(), Session{AccessToken: "t"}))
	_, err = os.Stat(dsn)
	require.NoError(t, err)
}
