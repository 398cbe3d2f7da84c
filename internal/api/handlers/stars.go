package handlers

import (
	"log"
	"net/http"

	"star-coordinates-service/internal/api/dto"
	"star-coordinates-service/internal/ports"
)

// StarHandler exposes read-only catalog retrieval endpoints.
type StarHandler struct {
	Repo ports.StarRepository
}

func (h *StarHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	stars, err := h.Repo.ListStars(r.Context())
	if err != nil {
		log.Printf("list stars failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListStarsResponse{
		Stars: make([]dto.StarResponse, 0, len(stars)),
	}
	for _, s := range stars {
		loc := s.Location()
		out := dto.StarResponse{
			Name:       s.Name,
			X:          loc.X,
			Y:          loc.Y,
			Z:          loc.Z,
			Calculated: s.Calculated,
		}
		for _, d := range s.Distances {
			out.Distances = append(out.Distances, dto.DistanceEntryResponse{
				System:   d.System,
				Distance: float64(d.Distance),
			})
		}
		res.Stars = append(res.Stars, out)
	}

	writeJSON(w, r, http.StatusOK, res)
}
