package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"star-coordinates-service/internal/adapters/cache"
	"star-coordinates-service/internal/adapters/catalog"
	"star-coordinates-service/internal/adapters/repositories"
	"star-coordinates-service/internal/api"
	"star-coordinates-service/internal/config"
	"star-coordinates-service/internal/services"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, EDSM) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/systems.json")
	port := config.Get("PORT", "8080")
	budget := config.GetInt("SEARCH_LIMIT", services.DefaultSearchBudget)
	edsmBaseURL := config.Get("EDSM_BASE_URL", catalog.DefaultEDSMBaseURL)

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(db, seedPath); err != nil {
		log.Fatal(err)
	}

	// The EDSM provider goes through a persistent SQLite cache to avoid
	// re-fetching known system coordinates.
	systemCache := cache.NewSqliteSystemCache(db)
	provider := catalog.NewEDSMCatalogProvider(edsmBaseURL, systemCache)

	repo := repositories.NewSqliteStarRepository(db)
	solutions := cache.NewSqliteSolutionCache(db)
	router := api.NewRouter(repo, solutions, provider, budget)

	// Write timeout covers worst-case grid searches at the default budget.
	log.Printf("Server listening addr=:%s budget=%d", port, budget)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
