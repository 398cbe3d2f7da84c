package catalog

import (
	"context"
	"fmt"

	"star-coordinates-service/internal/domain"
	"star-coordinates-service/internal/ports"
)

type MockSystem struct {
	Name    string
	X, Y, Z float64
}

// MockCatalogProvider serves a fixed set of systems for tests.
type MockCatalogProvider struct {
	m map[string]ports.RemoteSystem
}

func NewMockCatalogProvider(systems []MockSystem) *MockCatalogProvider {
	m := make(map[string]ports.RemoteSystem, len(systems))
	for _, s := range systems {
		m[s.Name] = ports.RemoteSystem{
			Name:   s.Name,
			Coords: domain.Vector{X: s.X, Y: s.Y, Z: s.Z},
		}
	}
	return &MockCatalogProvider{m: m}
}

func (p *MockCatalogProvider) GetSystem(ctx context.Context, name string) (ports.RemoteSystem, error) {
	s, ok := p.m[name]
	if !ok {
		return ports.RemoteSystem{}, fmt.Errorf("mock catalog: %w: %q", ErrSystemNotFound, name)
	}
	return s, nil
}

func (p *MockCatalogProvider) SphereSystems(
	ctx context.Context,
	center string,
	radius float64,
) ([]ports.RemoteSystem, error) {
	origin, ok := p.m[center]
	if !ok {
		return nil, fmt.Errorf("mock catalog: %w: %q", ErrSystemNotFound, center)
	}

	out := make([]ports.RemoteSystem, 0, len(p.m))
	for _, s := range p.m {
		if s.Coords.DistanceTo(origin.Coords) <= radius {
			out = append(out, s)
		}
	}
	return out, nil
}
