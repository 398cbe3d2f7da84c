package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"star-coordinates-service/internal/config"
	"star-coordinates-service/internal/domain"
	"star-coordinates-service/internal/services"
)

const failureBanner = "******************************"

// starfix is the offline companion to the HTTP server: it verifies or locates
// stars straight from a systems.json file, with no database involved.
func main() {
	mode := flag.String("mode", "verify", "operation to run: verify, locate or search")
	star := flag.String("star", "", "star name (required for locate, optional for verify)")
	limit := flag.Int("limit", config.GetInt("SEARCH_LIMIT", services.DefaultSearchBudget),
		"maximum grid points to evaluate per star")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: starfix [-mode verify|locate|search] [-star NAME] [-limit N] systems.json\n")
		os.Exit(2)
	}

	catalog, err := loadCatalog(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	switch *mode {
	case "verify":
		os.Exit(runVerify(catalog, strings.TrimSpace(*star), *limit))
	case "locate":
		os.Exit(runLocate(catalog, strings.TrimSpace(*star), *limit))
	case "search":
		os.Exit(runSearch(catalog, strings.TrimSpace(*star), *limit))
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q (want verify, locate or search)\n", *mode)
		os.Exit(2)
	}
}

func loadCatalog(path string) (*domain.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %q: %w", path, err)
	}

	catalog, err := domain.ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %q: %w", path, err)
	}
	return catalog, nil
}

func runVerify(catalog *domain.Catalog, name string, limit int) int {
	var results []services.VerifyResult

	if name != "" {
		target, ok := catalog.Get(name)
		if !ok {
			log.Fatalf("verify: %v: %q", services.ErrUnknownStar, name)
		}
		res, err := services.Verify(target, catalog, limit)
		if err != nil {
			if errors.Is(err, services.ErrBudgetExceeded) {
				res = services.VerifyResult{
					Star:     target.Name,
					Outcome:  services.VerifyBudgetExceeded,
					Recorded: target.Location(),
				}
			} else {
				log.Fatalf("verify %q: %v", name, err)
			}
		}
		results = append(results, res)
	} else {
		results = services.VerifyCatalog(catalog, limit)
	}

	failures := 0
	for _, res := range results {
		if res.Outcome == services.VerifyVerified {
			fmt.Printf("Success: %s (%g, %g, %g)\n",
				res.Star, res.Recorded.X, res.Recorded.Y, res.Recorded.Z)
			continue
		}

		failures++
		fmt.Println(failureBanner)
		switch res.Outcome {
		case services.VerifyMismatch:
			fmt.Printf("%s: recorded (%g, %g, %g) but distances match (%g, %g, %g)\n",
				res.Star,
				res.Recorded.X, res.Recorded.Y, res.Recorded.Z,
				res.Location.X, res.Location.Y, res.Location.Z)
		case services.VerifyNoMatch:
			fmt.Printf("%s: no grid point matches all recorded distances\n", res.Star)
		case services.VerifyAmbiguous:
			fmt.Printf("%s: multiple grid points match the recorded distances\n", res.Star)
		case services.VerifyBudgetExceeded:
			fmt.Printf("%s: search limit of %d points exceeded\n", res.Star, limit)
		}
		fmt.Println(failureBanner)
	}

	if failures > 0 {
		fmt.Printf("%d of %d stars failed verification\n", failures, len(results))
		return 1
	}
	return 0
}

// runSearch enumerates the full bounding box instead of exploring from a
// seed. Slower than locate, but immune to a bad trilateration seed.
func runSearch(catalog *domain.Catalog, name string, limit int) int {
	if name == "" {
		fmt.Fprintln(os.Stderr, "search: -star is required")
		return 2
	}

	target, ok := catalog.Get(name)
	if !ok {
		log.Fatalf("search: %v: %q", services.ErrUnknownStar, name)
	}

	connections := services.BuildConnections(target, catalog)
	res, err := services.SearchBox(connections, limit)
	if err != nil {
		log.Fatalf("search %q: %v", name, err)
	}

	if len(res.Matches) == 0 {
		fmt.Printf("%s: no grid point matches all distances (%d points searched)\n",
			name, res.Evaluated)
		return 1
	}

	fmt.Printf("%s: %d matching grid points (%d searched):\n",
		name, len(res.Matches), res.Evaluated)
	for _, m := range res.Matches {
		fmt.Printf("  (%g, %g, %g)\n", m.X, m.Y, m.Z)
	}
	if len(res.Matches) > 1 {
		return 1
	}
	return 0
}

func runLocate(catalog *domain.Catalog, name string, limit int) int {
	if name == "" {
		fmt.Fprintln(os.Stderr, "locate: -star is required")
		return 2
	}

	target, ok := catalog.Get(name)
	if !ok {
		log.Fatalf("locate: %v: %q", services.ErrUnknownStar, name)
	}

	connections := services.BuildConnections(target, catalog)
	res, err := services.Locate(connections, limit)
	if err != nil {
		log.Fatalf("locate %q: %v", name, err)
	}

	switch res.Outcome {
	case services.OutcomeFound:
		fmt.Printf("%s: (%g, %g, %g) after %d points\n",
			name, res.Location.X, res.Location.Y, res.Location.Z, res.Evaluated)
		return 0
	case services.OutcomeNoMatch:
		fmt.Printf("%s: no grid point matches all distances (%d points searched)\n",
			name, res.Evaluated)
		return 1
	default:
		fmt.Printf("%s: %d candidate locations:\n", name, len(res.Candidates))
		for _, c := range res.Candidates {
			fmt.Printf("  (%g, %g, %g)\n", c.X, c.Y, c.Z)
		}
		// The target is in the catalog but must never suggest itself.
		ignore := map[string]bool{name: true}
		if ref, ok := services.SuggestReference(catalog, connections, res.Candidates, ignore); ok {
			fmt.Printf("a distance to %s would narrow the search\n", ref)
		}
		return 1
	}
}
