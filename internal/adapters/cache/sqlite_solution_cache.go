package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"star-coordinates-service/internal/platform/obs"
	"star-coordinates-service/internal/ports"
)

// SQLite-backed cache for solver outcomes, keyed by star name, so repeated
// verify/locate requests skip the grid search.
type SqliteSolutionCache struct {
	DB *sql.DB
}

func NewSqliteSolutionCache(db *sql.DB) *SqliteSolutionCache {
	return &SqliteSolutionCache{DB: db}
}

// Fetch the cached solution for a star.
func (s *SqliteSolutionCache) Get(ctx context.Context, star string) (_ ports.Solution, _ bool, err error) {
	defer obs.Time(ctx, "solution.cache.Get")(&err)

	if s.DB == nil {
		return ports.Solution{}, false, errors.New("solution cache: db is nil")
	}

	star = strings.TrimSpace(star)
	if star == "" {
		return ports.Solution{}, false, errors.New("get solution cache: star must not be empty")
	}

	q := `
	SELECT outcome, x, y, z, evaluated
	FROM solution_cache
	WHERE star = ?;
	`

	var sol ports.Solution
	sol.Star = star
	row := s.DB.QueryRowContext(ctx, q, star)
	if err := row.Scan(&sol.Outcome, &sol.X, &sol.Y, &sol.Z, &sol.Evaluated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ports.Solution{}, false, nil
		}
		return ports.Solution{}, false, fmt.Errorf("get solution cache: query solution_cache table: %w", err)
	}

	return sol, true, nil
}

// Store the solution for a star, replacing any previous entry.
func (s *SqliteSolutionCache) Put(ctx context.Context, sol ports.Solution) (err error) {
	defer obs.Time(ctx, "solution.cache.Put")(&err)

	if s.DB == nil {
		return errors.New("solution cache: db is nil")
	}

	if strings.TrimSpace(sol.Star) == "" {
		return errors.New("insert solution cache: star must not be empty")
	}
	if strings.TrimSpace(sol.Outcome) == "" {
		return errors.New("insert solution cache: outcome must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO solution_cache (star, outcome, x, y, z, evaluated)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, q, sol.Star, sol.Outcome, sol.X, sol.Y, sol.Z, sol.Evaluated); err != nil {
		return fmt.Errorf("insert solution cache star=%q: %w", sol.Star, err)
	}

	return nil
}
