package api

import (
	"net/http"

	"star-coordinates-service/internal/api/handlers"
	"star-coordinates-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	repo ports.StarRepository,
	solutions ports.SolutionCache,
	provider ports.CatalogProvider,
	budget int,
) http.Handler {
	mux := http.NewServeMux()

	starHandler := &handlers.StarHandler{Repo: repo}
	solutionHandler := &handlers.SolutionHandler{
		Repo:   repo,
		Cache:  solutions,
		Budget: budget,
	}
	importHandler := &handlers.ImportHandler{
		Repo:     repo,
		Provider: provider,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/stars", starHandler.List)
	mux.HandleFunc("/locate", solutionHandler.Locate)
	mux.HandleFunc("/verify", solutionHandler.Verify)
	mux.HandleFunc("/import", importHandler.Import)

	return loggingMiddleware(mux)
}
