// To handle all database interactions. This is our
// data access layer, keeping SQL queries separate from business logic.

package store

import (
	"database/sql"
	"errors"
	"strings"
)

// Sentinel errors surfaced to the HTTP layer.
var (
	// ErrNotFound is returned when a looked-up record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateVersion is returned when a (plugin, version) pair already
	// exists. The UNIQUE constraint on plugin_versions is the authoritative
	// source of this error; VersionExists is only a fast pre-check.
	ErrDuplicateVersion = errors.New("this version of the plugin already exists")
)

// Store provides all functions to interact with the database.
type Store struct {
	db *sql.DB
}

// New creates a new Store instance.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
