package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"star-coordinates-service/internal/domain"
)

// Initialize the Postgres database schema.
func InitSchemaPostgres(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
		CREATE TABLE IF NOT EXISTS stars (
			name TEXT PRIMARY KEY,
			x DOUBLE PRECISION,
			y DOUBLE PRECISION,
			z DOUBLE PRECISION,
			calculated BOOLEAN NOT NULL DEFAULT FALSE
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS star_distances (
			star TEXT NOT NULL,
			reference TEXT NOT NULL,
			distance DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (star, reference)
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS idx_star_distances_reference
		ON star_distances(reference);
		`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}

// Populate the Postgres database with star data from a systems.json file.
func SeedFromJSONPostgres(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed stars: read %q: %w", jsonPath, err)
	}

	catalog, err := domain.ParseCatalog(bytes)
	if err != nil {
		return fmt.Errorf("seed stars: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed stars: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	starStmt, err := tx.Prepare(`
	INSERT INTO stars (name, x, y, z, calculated)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (name) DO UPDATE
	SET x = EXCLUDED.x,
		y = EXCLUDED.y,
		z = EXCLUDED.z,
		calculated = EXCLUDED.calculated;
	`)
	if err != nil {
		return fmt.Errorf("seed stars: prepare star insert: %w", err)
	}
	defer starStmt.Close()

	distStmt, err := tx.Prepare(`
	INSERT INTO star_distances (star, reference, distance)
	VALUES ($1, $2, $3)
	ON CONFLICT (star, reference) DO UPDATE
	SET distance = EXCLUDED.distance;
	`)
	if err != nil {
		return fmt.Errorf("seed stars: prepare distance insert: %w", err)
	}
	defer distStmt.Close()

	for _, star := range catalog.Stars() {
		x, y, z := locationArgs(star)
		if _, err := starStmt.Exec(star.Name, x, y, z, star.Calculated); err != nil {
			return fmt.Errorf("seed stars: insert star %q: %w", star.Name, err)
		}

		for _, entry := range star.Distances {
			ref := strings.TrimSpace(entry.System)
			if ref == "" {
				return fmt.Errorf("seed stars: star %q has a distance with no system", star.Name)
			}
			if _, err := distStmt.Exec(star.Name, ref, float64(entry.Distance)); err != nil {
				return fmt.Errorf("seed stars: insert distance %q -> %q: %w", star.Name, ref, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed stars: commit tx: %w", err)
	}

	return nil
}
