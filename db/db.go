package db

import (
	"embed"
	"fmt"

	_ "github.com/healerlk/healer/db/migrations"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql migrations/*.go
var embedMigrations embed.FS

// Repository implements the domain repositories on top of a SQLite connection.
type Repository struct {
	dbConn *sqlx.DB
}

// NewRepo wraps an open connection, usually the one returned by New.
func NewRepo(db *sqlx.DB) *Repository {
	return &Repository{
		dbConn: db,
	}
}

// Close terminates the database connection.
func (repo *Repository) Close() error {
	err := repo.dbConn.Close()
	if err != nil {
		return fmt.Errorf("closing repo : %w", err)
	}
	return nil
}

// Ping checks that the database is still reachable.
func (repo *Repository) Ping() error {
	return repo.dbConn.Ping()
}

// New opens the SQLite database at path and applies all pending migrations,
// the first run also seeds the service catalog.
//
// A single connection is kept open so the pragmas below hold for every query.
func New(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("connecting to db : %w", err)
	}

	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON;",
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err = db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("running %q: %w", pragma, err)
		}
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(goose.DialectSQLite3)); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting dialect for migrations : %w", err)
	}

	if err := goose.Up(db.DB, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying migration : %w", err)
	}
	return db, nil
}
