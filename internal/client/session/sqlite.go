package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gradebook/internal/client/migrations"
	"github.com/dmitrijs2005/gradebook/internal/dbx"
	"github.com/dmitrijs2005/gradebook/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists the session in a local SQLite file so it survives
// restarts of the CLI, the way browser local storage survives reloads.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// OpenDatabase opens (creating if needed) the session database at dsn and
// migrates it.
func OpenDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn != ":memory:" {
		path, err := filex.EnsureParentDir(dsn)
		if err != nil {
			return nil, fmt.Errorf("session db dir: %w", err)
		}
		dsn = path
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate session db: %w", err)
	}
	return db, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (Session, error) {
	values, err := newKVRepository(s.db).List(ctx)
	if err != nil {
		return Session{}, err
	}
	return fromValues(values), nil
}

// Save replaces the stored record in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, sess Session) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := newKVRepository(tx)
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		for k, v := range sess.toValues() {
			if err := repo.Set(ctx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Token(ctx context.Context) (string, error) {
	return newKVRepository(s.db).Get(ctx, KeyAccessToken)
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return newKVRepository(s.db).Clear(ctx)
}
