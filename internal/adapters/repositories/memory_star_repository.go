package repositories

import (
	"context"
	"fmt"

	"star-coordinates-service/internal/domain"
	"star-coordinates-service/internal/ports"
)

// In-memory StarRepository backed by a parsed systems.json catalog, for
// callers that do not need a database.
type MemoryStarRepository struct {
	catalog *domain.Catalog
}

func NewMemoryStarRepository(catalog *domain.Catalog) *MemoryStarRepository {
	if catalog == nil {
		catalog = domain.NewCatalog()
	}
	return &MemoryStarRepository{catalog: catalog}
}

func (m *MemoryStarRepository) ListStars(ctx context.Context) ([]*domain.Star, error) {
	return m.catalog.Stars(), nil
}

func (m *MemoryStarRepository) GetStar(ctx context.Context, name string) (*domain.Star, error) {
	star, ok := m.catalog.Get(name)
	if !ok {
		return nil, fmt.Errorf("get star %q: %w", name, ports.ErrStarNotFound)
	}
	return star, nil
}

func (m *MemoryStarRepository) UpsertStar(ctx context.Context, star *domain.Star) error {
	if star == nil || star.Name == "" {
		return fmt.Errorf("upsert star: star must have a name")
	}
	m.catalog.Add(star)
	return nil
}
