package catalog

import (
	"net/http"
	"strings"
	"time"

	"star-coordinates-service/internal/adapters/cache"
)

// DefaultEDSMBaseURL is the public EDSM API endpoint.
const DefaultEDSMBaseURL = "https://www.edsm.net"

// EDSMCatalogProvider implements CatalogProvider against the EDSM public API.
//
// It coordinates:
//   - System name normalization
//   - Persistent coordinate caching
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type EDSMCatalogProvider struct {
	session     *http.Client
	baseURL     string
	systemCache *cache.SqliteSystemCache
}

func NewEDSMCatalogProvider(baseURL string, systemCache *cache.SqliteSystemCache) *EDSMCatalogProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultEDSMBaseURL
	}

	return &EDSMCatalogProvider{
		session:     &http.Client{Timeout: 10 * time.Second},
		baseURL:     strings.TrimRight(baseURL, "/"),
		systemCache: systemCache,
	}
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (p *EDSMCatalogProvider) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
