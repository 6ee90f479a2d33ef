// Package db bootstraps the PostgreSQL connection and applies schema
// migrations at startup.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// NewDB opens a PostgreSQL connection, verifies it, and brings the schema
// up to date with the goose migrations in migrationsDir. The returned
// *sql.DB is meant to be handed to GORM as an existing connection.
func NewDB(dsn, migrationsDir string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db error: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db error: %w", err)
	}

	if err := goose.Up(db, migrationsDir); err != nil {
		return nil, fmt.Errorf("goose up error: %w", err)
	}

	return db, nil
}
