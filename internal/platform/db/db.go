package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Open connects to the Postgres instance used by the seeding tool. The pool
// is sized for a short-lived batch process, not a serving workload.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("open postgres: verify connection: %w", err)
	}

	return db, nil
}
