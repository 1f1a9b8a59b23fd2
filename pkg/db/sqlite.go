package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens (creating if needed) a SQLite database at path. Use
// ":memory:" for a throwaway store.
// The pool is capped at one connection so an in-memory database survives
// between queries.
func OpenSQLite(path string) (*sql.DB, error) {
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := Health(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
