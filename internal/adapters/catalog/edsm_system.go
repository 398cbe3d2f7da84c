package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"star-coordinates-service/internal/domain"
	"star-coordinates-service/internal/platform/obs"
	"star-coordinates-service/internal/ports"
)

// ErrSystemNotFound reports a system the external catalog does not know.
var ErrSystemNotFound = errors.New("system not found in external catalog")

type edsmSystemResponse struct {
	Name   string `json:"name"`
	Coords struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
		Z float64 `json:"z"`
	} `json:"coords"`
}

// GetSystem returns coordinates for a single named system, consulting the
// persistent coordinate cache before calling the API.
func (p *EDSMCatalogProvider) GetSystem(ctx context.Context, name string) (_ ports.RemoteSystem, err error) {
	defer obs.Time(ctx, "edsm.GetSystem")(&err)

	name = p.normalize(name)
	if name == "" {
		return ports.RemoteSystem{}, errors.New("get system: name must be non-empty")
	}

	if p.systemCache != nil {
		hits, err := p.systemCache.GetMany(ctx, []string{name})
		if err != nil {
			return ports.RemoteSystem{}, fmt.Errorf("get system cache: %w", err)
		}
		if coords, ok := hits[name]; ok {
			return ports.RemoteSystem{Name: name, Coords: coords}, nil
		}
	}

	query := url.Values{}
	query.Set("systemName", name)
	query.Set("showCoordinates", "1")
	endpoint := p.baseURL + "/api-v1/system?" + query.Encode()

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return p.newRequest(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return ports.RemoteSystem{}, fmt.Errorf("fetch system %q: %w", name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ports.RemoteSystem{}, fmt.Errorf("fetch system %q: read body: %w", name, err)
	}

	// EDSM answers an unknown system with an empty JSON array instead of an
	// object or a 404.
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] == '[' {
		return ports.RemoteSystem{}, fmt.Errorf("fetch system %q: %w", name, ErrSystemNotFound)
	}

	var decoded edsmSystemResponse
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return ports.RemoteSystem{}, fmt.Errorf("fetch system %q: decode response: %w", name, err)
	}
	if decoded.Name == "" {
		decoded.Name = name
	}

	system := ports.RemoteSystem{
		Name: decoded.Name,
		Coords: domain.Vector{
			X: decoded.Coords.X,
			Y: decoded.Coords.Y,
			Z: decoded.Coords.Z,
		},
	}

	if p.systemCache != nil {
		if err := p.systemCache.PutMany(ctx, map[string]domain.Vector{system.Name: system.Coords}); err != nil {
			log.Printf("system cache write failed: %v", err)
		}
	}

	return system, nil
}
