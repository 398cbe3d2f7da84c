package ports

import (
	"context"
	"errors"
	"star-coordinates-service/internal/domain"
)

// ErrStarNotFound reports a lookup for a star the repository does not hold.
var ErrStarNotFound = errors.New("star not found")

// Port: a boundary for loading and storing catalog stars.
type StarRepository interface {
	// Return every star in the catalog, in name order.
	ListStars(ctx context.Context) ([]*domain.Star, error)
	// Return one star by name.
	GetStar(ctx context.Context, name string) (*domain.Star, error)
	// Insert or replace a star together with its distance entries.
	UpsertStar(ctx context.Context, star *domain.Star) error
}
