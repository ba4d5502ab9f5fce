// Package db implements persistence for the CRM entities on SQLite.
// The Repository also acts as the pricing core's catalog, serving material
// and difficulty snapshots.
package db

import (
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Repository provides a centralized structure for database operations,
// embedding the database connection. It is the receiver for the per-entity
// repository methods.
type Repository struct {
	dbConn *sqlx.DB
}

// NewRepository initializes a Repository with the given connection
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{dbConn: db}
}

// Close terminates the database connection
func (repo *Repository) Close() error {
	if err := repo.dbConn.Close(); err != nil {
		return fmt.Errorf("closing repo: %w", err)
	}
	return nil
}

// New establishes a connection to a SQLite database file and applies all
// pending migrations. WAL mode and foreign keys are enabled; SQLite allows
// a single writer, so the pool is capped at one connection.
func New(name string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", fmt.Sprintf("%s?_journal=WAL&_timeout=5000&_fk=true", name))
	if err != nil {
		return nil, fmt.Errorf("connecting to db: %w", err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}
