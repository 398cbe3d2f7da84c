package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"star-coordinates-service/internal/domain"
	"star-coordinates-service/internal/platform/obs"
)

// SQLite-backed cache mapping system names to coordinates fetched from the
// external catalog, so repeated imports avoid redundant API calls.
type SqliteSystemCache struct {
	DB *sql.DB
}

func NewSqliteSystemCache(db *sql.DB) *SqliteSystemCache {
	return &SqliteSystemCache{DB: db}
}

// Fetch cached coordinates for the given system names.
func (s *SqliteSystemCache) GetMany(
	ctx context.Context,
	names []string,
) (_ map[string]domain.Vector, err error) {
	defer obs.Time(ctx, "system.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("system cache: db is nil")
	}

	if len(names) == 0 {
		return map[string]domain.Vector{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(names))
	ph := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}

		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		uniq = append(uniq, n)
		ph = append(ph, "?")
	}

	if len(uniq) == 0 {
		return map[string]domain.Vector{}, nil
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain
	// parameterized.
	q := fmt.Sprintf(`
	SELECT name, x, y, z
	FROM system_cache
	WHERE name IN (%s);
	`, strings.Join(ph, ","))

	args := make([]any, 0, len(uniq))
	for _, n := range uniq {
		args = append(args, n)
	}

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get system cache: query system_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Vector, len(uniq))
	for rows.Next() {
		var name string
		var x, y, z float64
		if err := rows.Scan(&name, &x, &y, &z); err != nil {
			return nil, fmt.Errorf("get system cache: scan rows: %w", err)
		}
		out[name] = domain.Vector{X: x, Y: y, Z: z}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get system cache: row iteration: %w", err)
	}

	return out, nil
}

// Store coordinates for many systems.
func (s *SqliteSystemCache) PutMany(ctx context.Context, systems map[string]domain.Vector) (err error) {
	defer obs.Time(ctx, "system.cache.PutMany")(&err)

	if s.DB == nil {
		return errors.New("system cache: db is nil")
	}

	if len(systems) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert system cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO system_cache (name, x, y, z)
	VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("insert system cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for name, loc := range systems {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("insert system cache: empty system name")
		}

		if _, err := stmt.ExecContext(ctx, name, loc.X, loc.Y, loc.Z); err != nil {
			return fmt.Errorf("insert system cache name=%q: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert system cache commit: %w", err)
	}

	return nil
}
