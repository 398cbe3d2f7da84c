package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"star-coordinates-service/internal/domain"
	"star-coordinates-service/internal/platform/obs"
	"star-coordinates-service/internal/ports"
)

// SQLite-backed implementation of the StarRepository port.
type SqliteStarRepository struct{ DB *sql.DB }

func NewSqliteStarRepository(db *sql.DB) *SqliteStarRepository {
	return &SqliteStarRepository{DB: db}
}

// Return all stars with their distance entries, in name order.
func (s *SqliteStarRepository) ListStars(ctx context.Context) (_ []*domain.Star, err error) {
	defer obs.Time(ctx, "stars.repo.ListStars")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite star repository: DB is nil")
	}

	query := `
	SELECT name, x, y, z, calculated
	FROM stars
	ORDER BY name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stars: query stars table: %w", err)
	}
	defer rows.Close()

	stars := make([]*domain.Star, 0, 64)
	byName := make(map[string]*domain.Star, 64)
	for rows.Next() {
		var name string
		var x, y, z sql.NullFloat64
		var calculated bool
		if err := rows.Scan(&name, &x, &y, &z, &calculated); err != nil {
			return nil, fmt.Errorf("list stars: scan row: %w", err)
		}

		star := &domain.Star{Name: name, Calculated: calculated}
		if x.Valid && y.Valid && z.Valid {
			star.SetLocation(domain.Vector{X: x.Float64, Y: y.Float64, Z: z.Float64})
		}
		stars = append(stars, star)
		byName[name] = star
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stars: row iteration: %w", err)
	}

	distQuery := `
	SELECT star, reference, distance
	FROM star_distances
	ORDER BY star, reference;
	`
	distRows, err := s.DB.QueryContext(ctx, distQuery)
	if err != nil {
		return nil, fmt.Errorf("list stars: query star_distances table: %w", err)
	}
	defer distRows.Close()

	for distRows.Next() {
		var star, reference string
		var distance float64
		if err := distRows.Scan(&star, &reference, &distance); err != nil {
			return nil, fmt.Errorf("list stars: scan distance row: %w", err)
		}
		if owner, ok := byName[star]; ok {
			owner.Distances = append(owner.Distances, domain.DistanceEntry{
				System:   reference,
				Distance: domain.FlexFloat(distance),
			})
		}
	}
	if err := distRows.Err(); err != nil {
		return nil, fmt.Errorf("list stars: distance row iteration: %w", err)
	}

	return stars, nil
}

// Return one star by name, with its distance entries.
func (s *SqliteStarRepository) GetStar(ctx context.Context, name string) (_ *domain.Star, err error) {
	defer obs.Time(ctx, "stars.repo.GetStar")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite star repository: DB is nil")
	}

	query := `
	SELECT name, x, y, z, calculated
	FROM stars
	WHERE name = ?;
	`
	var x, y, z sql.NullFloat64
	var calculated bool
	row := s.DB.QueryRowContext(ctx, query, name)
	if err := row.Scan(&name, &x, &y, &z, &calculated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get star %q: %w", name, ports.ErrStarNotFound)
		}
		return nil, fmt.Errorf("get star %q: %w", name, err)
	}

	star := &domain.Star{Name: name, Calculated: calculated}
	if x.Valid && y.Valid && z.Valid {
		star.SetLocation(domain.Vector{X: x.Float64, Y: y.Float64, Z: z.Float64})
	}

	distQuery := `
	SELECT reference, distance
	FROM star_distances
	WHERE star = ?
	ORDER BY reference;
	`
	rows, err := s.DB.QueryContext(ctx, distQuery, name)
	if err != nil {
		return nil, fmt.Errorf("get star %q: query distances: %w", name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var reference string
		var distance float64
		if err := rows.Scan(&reference, &distance); err != nil {
			return nil, fmt.Errorf("get star %q: scan distance row: %w", name, err)
		}
		star.Distances = append(star.Distances, domain.DistanceEntry{
			System:   reference,
			Distance: domain.FlexFloat(distance),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get star %q: distance row iteration: %w", name, err)
	}

	return star, nil
}

// Insert or replace a star and its distance entries.
func (s *SqliteStarRepository) UpsertStar(ctx context.Context, star *domain.Star) (err error) {
	defer obs.Time(ctx, "stars.repo.UpsertStar")(&err)

	if s.DB == nil {
		return errors.New("sqlite star repository: DB is nil")
	}
	if star == nil || star.Name == "" {
		return errors.New("upsert star: star must have a name")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert star %q: begin tx: %w", star.Name, err)
	}
	defer func() { _ = tx.Rollback() }()

	x, y, z := locationArgs(star)
	_, err = tx.ExecContext(ctx, `
	INSERT OR REPLACE INTO stars (name, x, y, z, calculated)
	VALUES (?, ?, ?, ?, ?);
	`, star.Name, x, y, z, star.Calculated)
	if err != nil {
		return fmt.Errorf("upsert star %q: insert star: %w", star.Name, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM star_distances WHERE star = ?;`, star.Name); err != nil {
		return fmt.Errorf("upsert star %q: clear distances: %w", star.Name, err)
	}

	for _, entry := range star.Distances {
		_, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO star_distances (star, reference, distance)
		VALUES (?, ?, ?);
		`, star.Name, entry.System, float64(entry.Distance))
		if err != nil {
			return fmt.Errorf("upsert star %q: insert distance to %q: %w", star.Name, entry.System, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert star %q: commit tx: %w", star.Name, err)
	}

	return nil
}
