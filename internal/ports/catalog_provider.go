package ports

import (
	"context"
	"star-coordinates-service/internal/domain"
)

// RemoteSystem is a star system returned by an external catalog service.
type RemoteSystem struct {
	Name   string
	Coords domain.Vector
}

// Contract for fetching star systems from an external catalog.
type CatalogProvider interface {
	// Return coordinates for a single named system.
	GetSystem(ctx context.Context, name string) (RemoteSystem, error)
	// Return all systems within radius light-years of the named center system.
	SphereSystems(ctx context.Context, center string, radius float64) ([]RemoteSystem, error)
}
