package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"star-coordinates-service/internal/api/dto"
	"star-coordinates-service/internal/domain"
	"star-coordinates-service/internal/ports"
	"star-coordinates-service/internal/services"
)

// SolutionHandler exposes the locate and verify operations over the catalog
// held in the repository.
type SolutionHandler struct {
	Repo   ports.StarRepository
	Cache  ports.SolutionCache
	Budget int
}

// Locate computes the coordinate consistent with the distances in the request
// body, resolved against the stored catalog.
func (h *SolutionHandler) Locate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.LocateRequest

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

	if len(req.Distances) < 3 {
		writeError(w, r, http.StatusBadRequest, "at least 3 distances are required")
		return
	}

	catalog, err := h.loadCatalog(r.Context())
	if err != nil {
		log.Printf("load catalog failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	target := &domain.Star{Name: ""}
	for _, d := range req.Distances {
		system := strings.TrimSpace(d.System)
		if system == "" {
			writeError(w, r, http.StatusBadRequest, "distance entries must name a system")
			return
		}
		target.Distances = append(target.Distances, domain.DistanceEntry{
			System:   system,
			Distance: domain.FlexFloat(d.Distance),
		})
	}

	connections := services.BuildConnections(target, catalog)
	res, err := services.Locate(connections, h.Budget)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInsufficientReferences):
			writeError(w, r, http.StatusBadRequest, "distances do not resolve to at least 3 known stars")
		case errors.Is(err, services.ErrBudgetExceeded):
			writeError(w, r, http.StatusUnprocessableEntity, "search budget exceeded")
		default:
			log.Printf("locate failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	out := dto.LocateResponse{
		Outcome:         string(res.Outcome),
		PointsEvaluated: res.Evaluated,
	}
	switch res.Outcome {
	case services.OutcomeFound:
		out.Location = &dto.CoordinateResponse{X: res.Location.X, Y: res.Location.Y, Z: res.Location.Z}
	case services.OutcomeAmbiguous:
		for _, c := range res.Candidates {
			out.Candidates = append(out.Candidates, dto.CoordinateResponse{X: c.X, Y: c.Y, Z: c.Z})
		}
		if name, ok := services.SuggestReference(catalog, connections, res.Candidates, nil); ok {
			out.SuggestedReference = name
		}
	}

	writeJSON(w, r, http.StatusOK, out)
}

// Verify checks the recorded coordinate of a stored star against its distance
// set, consulting the solution cache first.
func (h *SolutionHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.VerifyRequest

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

	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}

	star, err := h.Repo.GetStar(r.Context(), name)
	if err != nil {
		if errors.Is(err, ports.ErrStarNotFound) {
			writeError(w, r, http.StatusNotFound, "star not found")
			return
		}
		log.Printf("get star failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	recorded := star.Location()
	out := dto.VerifyResponse{
		Star:     star.Name,
		Recorded: dto.CoordinateResponse{X: recorded.X, Y: recorded.Y, Z: recorded.Z},
	}

	if h.Cache != nil {
		if sol, ok, err := h.Cache.Get(r.Context(), star.Name); err != nil {
			log.Printf("solution cache read failed: %v", err)
		} else if ok {
			out.Outcome = sol.Outcome
			out.PointsEvaluated = sol.Evaluated
			out.Cached = true
			if sol.Outcome == string(services.VerifyVerified) || sol.Outcome == string(services.VerifyMismatch) {
				out.Location = &dto.CoordinateResponse{X: sol.X, Y: sol.Y, Z: sol.Z}
			}
			writeJSON(w, r, http.StatusOK, out)
			return
		}
	}

	catalog, err := h.loadCatalog(r.Context())
	if err != nil {
		log.Printf("load catalog failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res, err := services.Verify(star, catalog, h.Budget)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInsufficientReferences):
			writeError(w, r, http.StatusUnprocessableEntity, "star has no resolvable reference distances")
		case errors.Is(err, services.ErrBudgetExceeded):
			writeError(w, r, http.StatusUnprocessableEntity, "search budget exceeded")
		default:
			log.Printf("verify failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	out.Outcome = string(res.Outcome)
	out.PointsEvaluated = res.Evaluated
	if res.Outcome == services.VerifyVerified || res.Outcome == services.VerifyMismatch {
		out.Location = &dto.CoordinateResponse{X: res.Location.X, Y: res.Location.Y, Z: res.Location.Z}
	}

	if h.Cache != nil {
		sol := ports.Solution{
			Star:      res.Star,
			Outcome:   string(res.Outcome),
			X:         res.Location.X,
			Y:         res.Location.Y,
			Z:         res.Location.Z,
			Evaluated: res.Evaluated,
		}
		if err := h.Cache.Put(r.Context(), sol); err != nil {
			log.Printf("solution cache write failed: %v", err)
		}
	}

	writeJSON(w, r, http.StatusOK, out)
}

// loadCatalog materializes the stored stars into an in-memory catalog for the
// solver. Catalogs in this problem domain are small enough to rebuild per
// request.
func (h *SolutionHandler) loadCatalog(ctx context.Context) (*domain.Catalog, error) {
	stars, err := h.Repo.ListStars(ctx)
	if err != nil {
		return nil, err
	}

	catalog := domain.NewCatalog()
	for _, s := range stars {
		catalog.Add(s)
	}
	return catalog, nil
}
