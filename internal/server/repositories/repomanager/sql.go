package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/kbadmin/internal/dbx"
	"github.com/dmitrijs2005/kbadmin/internal/server/migrations"
	"github.com/dmitrijs2005/kbadmin/internal/server/repositories/entries"
)

// SQLRepositoryManager serves PostgreSQL and SQLite. The two differ only in
// driver, goose dialect, migration directory and repository constructor.
type SQLRepositoryManager struct {
	db      *sql.DB
	dialect string
	dir     string
	newRepo func(dbx.DBTX) *entries.SQLRepository
}

// NewPostgresRepositoryManager connects to PostgreSQL through pgx.
func NewPostgresRepositoryManager(ctx context.Context, dsn string) (*SQLRepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	return newPostgresManager(db), nil
}

// NewSQLiteRepositoryManager opens an SQLite database file. The pool is
// limited to one connection so ":memory:" databases behave as one database.
func NewSQLiteRepositoryManager(ctx context.Context, dsn string) (*SQLRepositoryManager, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	return newSQLiteManager(db), nil
}

func newPostgresManager(db *sql.DB) *SQLRepositoryManager {
	return &SQLRepositoryManager{db: db, dialect: "pgx", dir: migrations.PostgresDir, newRepo: entries.NewPostgresRepository}
}

func newSQLiteManager(db *sql.DB) *SQLRepositoryManager {
	return &SQLRepositoryManager{db: db, dialect: "sqlite3", dir: migrations.SQLiteDir, newRepo: entries.NewSQLiteRepository}
}

func (m *SQLRepositoryManager) Entries() entries.Repository {
	return m.newRepo(m.db)
}

func (m *SQLRepositoryManager) InTx(ctx context.Context, fn func(ctx context.Context, repo entries.Repository) error) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, m.newRepo(tx))
	})
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and applies them.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(m.dialect); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.db, m.dir); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

func (m *SQLRepositoryManager) Close() error {
	return m.db.Close()
}
