package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"star-coordinates-service/internal/platform/obs"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("req_id=%s method=%s path=%s encode failed: %v",
			obs.RequestID(r.Context()), r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if status >= 500 {
		log.Printf("req_id=%s method=%s path=%s status=%d error=%q",
			obs.RequestID(r.Context()), r.Method, r.URL.Path, status, msg)
	}
	writeJSON(w, r, status, map[string]string{"error": msg})
}
