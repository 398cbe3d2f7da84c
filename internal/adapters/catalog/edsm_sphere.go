package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"star-coordinates-service/internal/domain"
	"star-coordinates-service/internal/platform/obs"
	"star-coordinates-service/internal/ports"
)

// SphereSystems returns every system within radius light-years of the named
// center system. All returned coordinates are written through to the
// persistent coordinate cache.
func (p *EDSMCatalogProvider) SphereSystems(
	ctx context.Context,
	center string,
	radius float64,
) (_ []ports.RemoteSystem, err error) {
	defer obs.Time(ctx, "edsm.SphereSystems")(&err)

	center = p.normalize(center)
	if center == "" {
		return nil, errors.New("sphere systems: center must be non-empty")
	}
	if radius <= 0 {
		return nil, fmt.Errorf("sphere systems: radius must be positive, got %v", radius)
	}

	query := url.Values{}
	query.Set("systemName", center)
	query.Set("radius", strconv.FormatFloat(radius, 'f', -1, 64))
	query.Set("showCoordinates", "1")
	endpoint := p.baseURL + "/api-v1/sphere-systems?" + query.Encode()

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return p.newRequest(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch sphere around %q: %w", center, err)
	}
	defer resp.Body.Close()

	var decoded []edsmSystemResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("fetch sphere around %q: decode response: %w", center, err)
	}

	systems := make([]ports.RemoteSystem, 0, len(decoded))
	fresh := make(map[string]domain.Vector, len(decoded))
	for _, entry := range decoded {
		if entry.Name == "" {
			continue
		}
		coords := domain.Vector{X: entry.Coords.X, Y: entry.Coords.Y, Z: entry.Coords.Z}
		systems = append(systems, ports.RemoteSystem{Name: entry.Name, Coords: coords})
		fresh[entry.Name] = coords
	}

	if p.systemCache != nil && len(fresh) > 0 {
		if err := p.systemCache.PutMany(ctx, fresh); err != nil {
			log.Printf("system cache write failed: %v", err)
		}
	}

	return systems, nil
}
