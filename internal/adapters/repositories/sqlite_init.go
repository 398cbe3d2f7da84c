package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"star-coordinates-service/internal/domain"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Coordinates are nullable: a star can be entered as distances only,
	// before its location is solved.
	createStarsQuery := `
	CREATE TABLE IF NOT EXISTS stars (
		name TEXT PRIMARY KEY,
		x REAL,
		y REAL,
		z REAL,
		calculated INTEGER NOT NULL DEFAULT 0
	);
	`

	createStarDistancesQuery := `
	CREATE TABLE IF NOT EXISTS star_distances (
		star TEXT NOT NULL,
		reference TEXT NOT NULL,
		distance REAL NOT NULL,
		PRIMARY KEY (star, reference)
	);
	`

	createSolutionCacheQuery := `
	CREATE TABLE IF NOT EXISTS solution_cache (
		star TEXT PRIMARY KEY,
		outcome TEXT NOT NULL,
		x REAL NOT NULL,
		y REAL NOT NULL,
		z REAL NOT NULL,
		evaluated INTEGER NOT NULL
	);
	`

	createSystemCacheQuery := `
	CREATE TABLE IF NOT EXISTS system_cache (
		name TEXT PRIMARY KEY,
		x REAL NOT NULL,
		y REAL NOT NULL,
		z REAL NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_star_distances_reference
	ON star_distances(reference);
	`

	statements := []string{
		createStarsQuery,
		createStarDistancesQuery,
		createSolutionCacheQuery,
		createSystemCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the database with star data from a systems.json file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
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
	INSERT OR REPLACE INTO stars (name, x, y, z, calculated)
	VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed stars: prepare star insert: %w", err)
	}
	defer starStmt.Close()

	distStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO star_distances (star, reference, distance)
	VALUES (?, ?, ?);
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

// locationArgs maps a star's coordinate to SQL arguments, NULL when the star
// has no location yet.
func locationArgs(star *domain.Star) (x, y, z any) {
	if !star.HasLocation() {
		return nil, nil, nil
	}
	loc := star.Location()
	return loc.X, loc.Y, loc.Z
}
