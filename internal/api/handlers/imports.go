package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"star-coordinates-service/internal/adapters/catalog"
	"star-coordinates-service/internal/api/dto"
	"star-coordinates-service/internal/domain"
	"star-coordinates-service/internal/ports"
)

// ImportHandler pulls reference systems from the remote catalog into the
// local store.
type ImportHandler struct {
	Repo     ports.StarRepository
	Provider ports.CatalogProvider
}

func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ImportRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	system := strings.TrimSpace(req.System)
	if system == "" {
		writeError(w, r, http.StatusBadRequest, "system is required")
		return
	}
	if req.Radius < 0 || req.Radius > 100 {
		writeError(w, r, http.StatusBadRequest, "radius must be in [0, 100]")
		return
	}

	// A zero radius imports just the named system.
	var systems []ports.RemoteSystem
	var err error
	if req.Radius == 0 {
		var single ports.RemoteSystem
		single, err = h.Provider.GetSystem(r.Context(), system)
		systems = []ports.RemoteSystem{single}
	} else {
		systems, err = h.Provider.SphereSystems(r.Context(), system, req.Radius)
	}
	if err != nil {
		if errors.Is(err, catalog.ErrSystemNotFound) {
			writeError(w, r, http.StatusNotFound, "system not found")
			return
		}
		log.Printf("fetch systems failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "catalog provider unavailable")
		return
	}

	imported := 0
	for _, s := range systems {
		star := &domain.Star{Name: s.Name}
		star.SetLocation(s.Coords)
		if err := h.Repo.UpsertStar(r.Context(), star); err != nil {
			log.Printf("upsert star %q failed: %v", s.Name, err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		imported++
	}

	writeJSON(w, r, http.StatusOK, dto.ImportResponse{Imported: imported})
}
