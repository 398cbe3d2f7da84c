package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"star-coordinates-service/internal/adapters/catalog"
	"star-coordinates-service/internal/adapters/repositories"
	"star-coordinates-service/internal/api/dto"
	"star-coordinates-service/internal/domain"
	"star-coordinates-service/internal/ports"
	"star-coordinates-service/internal/services"
)

// memSolutionCache is an in-memory ports.SolutionCache for handler tests.
type memSolutionCache struct {
	m map[string]ports.Solution
}

func newMemSolutionCache() *memSolutionCache {
	return &memSolutionCache{m: make(map[string]ports.Solution)}
}

func (c *memSolutionCache) Get(ctx context.Context, star string) (ports.Solution, bool, error) {
	sol, ok := c.m[star]
	return sol, ok, nil
}

func (c *memSolutionCache) Put(ctx context.Context, sol ports.Solution) error {
	c.m[sol.Star] = sol
	return nil
}

// testCatalog builds four reference stars plus one calculated star ("Nerio")
// at (1, 2, 3) whose distance list is consistent with that coordinate.
func testCatalog(t *testing.T) *domain.Catalog {
	t.Helper()

	target := domain.Vector{X: 1, Y: 2, Z: 3}
	refs := map[string]domain.Vector{
		"Hesion": {X: 5, Y: 2, Z: 3},
		"Karek":  {X: 1, Y: 7, Z: 3},
		"Voss":   {X: 1, Y: 2, Z: 9},
		"Talem":  {X: 4, Y: 6, Z: 3},
	}

	cat := domain.NewCatalog()
	entries := make([]domain.DistanceEntry, 0, len(refs))
	for _, name := range []string{"Hesion", "Karek", "Voss", "Talem"} {
		loc := refs[name]
		star := &domain.Star{Name: name}
		star.SetLocation(loc)
		cat.Add(star)
		entries = append(entries, domain.DistanceEntry{
			System:   name,
			Distance: domain.FlexFloat(domain.MeasuredDistance(loc, target)),
		})
	}

	nerio := &domain.Star{Name: "Nerio", Calculated: true, Distances: entries}
	nerio.SetLocation(target)
	cat.Add(nerio)
	return cat
}

func testServer(t *testing.T, cat *domain.Catalog, cache ports.SolutionCache) *httptest.Server {
	t.Helper()

	repo := repositories.NewMemoryStarRepository(cat)
	provider := catalog.NewMockCatalogProvider([]catalog.MockSystem{
		{Name: "Hesion", X: 5, Y: 2, Z: 3},
		{Name: "Sol", X: 0, Y: 0, Z: 0},
	})

	srv := httptest.NewServer(NewRouter(repo, cache, provider, services.DefaultSearchBudget))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	res, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return res
}

func decodeJSON(t *testing.T, res *http.Response, v any) {
	t.Helper()
	defer res.Body.Close()
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestListStars(t *testing.T) {
	srv := testServer(t, testCatalog(t), nil)

	res, err := http.Get(srv.URL + "/stars")
	if err != nil {
		t.Fatalf("GET /stars: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}

	var out dto.ListStarsResponse
	decodeJSON(t, res, &out)

	if len(out.Stars) != 5 {
		t.Fatalf("got %d stars, want 5", len(out.Stars))
	}
	// Name order is part of the contract.
	if out.Stars[0].Name != "Hesion" || out.Stars[4].Name != "Voss" {
		t.Fatalf("unexpected order: first=%q last=%q", out.Stars[0].Name, out.Stars[4].Name)
	}
	for _, s := range out.Stars {
		if s.Name == "Nerio" {
			if !s.Calculated || len(s.Distances) != 4 {
				t.Fatalf("Nerio = %+v, want calculated with 4 distances", s)
			}
		}
	}
}

func TestLocateFound(t *testing.T) {
	srv := testServer(t, testCatalog(t), nil)

	req := dto.LocateRequest{Distances: []dto.DistanceEntryRequest{
		{System: "Hesion", Distance: 4},
		{System: "Karek", Distance: 5},
		{System: "Voss", Distance: 6},
		{System: "Talem", Distance: 5},
	}}
	res := postJSON(t, srv.URL+"/locate", req)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}

	var out dto.LocateResponse
	decodeJSON(t, res, &out)

	if out.Outcome != "found" {
		t.Fatalf("outcome = %q, want found", out.Outcome)
	}
	if out.Location == nil || *out.Location != (dto.CoordinateResponse{X: 1, Y: 2, Z: 3}) {
		t.Fatalf("location = %+v, want (1, 2, 3)", out.Location)
	}
	if out.PointsEvaluated == 0 {
		t.Fatalf("expected evaluations to be reported")
	}
}

func TestLocateUnknownReferences(t *testing.T) {
	srv := testServer(t, testCatalog(t), nil)

	req := dto.LocateRequest{Distances: []dto.DistanceEntryRequest{
		{System: "Nowhere", Distance: 4},
		{System: "Elsewhere", Distance: 5},
		{System: "Anywhere", Distance: 6},
	}}
	res := postJSON(t, srv.URL+"/locate", req)
	defer res.Body.Close()

	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.StatusCode)
	}
}

func TestLocateRejectsUnknownFields(t *testing.T) {
	srv := testServer(t, testCatalog(t), nil)

	res := postJSON(t, srv.URL+"/locate", map[string]any{
		"distances": []any{},
		"surprise":  true,
	})
	defer res.Body.Close()

	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.StatusCode)
	}
}

func TestVerifyCachesSolution(t *testing.T) {
	cache := newMemSolutionCache()
	srv := testServer(t, testCatalog(t), cache)

	res := postJSON(t, srv.URL+"/verify", dto.VerifyRequest{Name: "Nerio"})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}

	var first dto.VerifyResponse
	decodeJSON(t, res, &first)

	if first.Outcome != "verified" || first.Cached {
		t.Fatalf("first = %+v, want fresh verified", first)
	}
	if first.Location == nil || *first.Location != (dto.CoordinateResponse{X: 1, Y: 2, Z: 3}) {
		t.Fatalf("location = %+v, want (1, 2, 3)", first.Location)
	}

	res = postJSON(t, srv.URL+"/verify", dto.VerifyRequest{Name: "Nerio"})
	var second dto.VerifyResponse
	decodeJSON(t, res, &second)

	if second.Outcome != "verified" || !second.Cached {
		t.Fatalf("second = %+v, want cached verified", second)
	}
}

func TestVerifyUnknownStar(t *testing.T) {
	srv := testServer(t, testCatalog(t), nil)

	res := postJSON(t, srv.URL+"/verify", dto.VerifyRequest{Name: "Ghost"})
	defer res.Body.Close()

	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", res.StatusCode)
	}
}

func TestImportSphere(t *testing.T) {
	cat := testCatalog(t)
	srv := testServer(t, cat, nil)

	res := postJSON(t, srv.URL+"/import", dto.ImportRequest{System: "Hesion", Radius: 10})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}

	var out dto.ImportResponse
	decodeJSON(t, res, &out)

	// Sol is 6.16 ly from Hesion, inside the sphere.
	if out.Imported != 2 {
		t.Fatalf("imported = %d, want 2", out.Imported)
	}
	if _, ok := cat.Get("Sol"); !ok {
		t.Fatalf("Sol was not stored")
	}
}

func TestImportSingleSystem(t *testing.T) {
	cat := testCatalog(t)
	srv := testServer(t, cat, nil)

	// Zero radius: fetch just the named system.
	res := postJSON(t, srv.URL+"/import", dto.ImportRequest{System: "Sol"})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}

	var out dto.ImportResponse
	decodeJSON(t, res, &out)

	if out.Imported != 1 {
		t.Fatalf("imported = %d, want 1", out.Imported)
	}
	sol, ok := cat.Get("Sol")
	if !ok || !sol.HasLocation() {
		t.Fatalf("Sol was not stored with a location")
	}
}

func TestImportSingleUnknownSystem(t *testing.T) {
	srv := testServer(t, testCatalog(t), nil)

	res := postJSON(t, srv.URL+"/import", dto.ImportRequest{System: "Ghost"})
	defer res.Body.Close()

	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", res.StatusCode)
	}
}

func TestImportUnknownCenter(t *testing.T) {
	srv := testServer(t, testCatalog(t), nil)

	res := postJSON(t, srv.URL+"/import", dto.ImportRequest{System: "Ghost", Radius: 10})
	defer res.Body.Close()

	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", res.StatusCode)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := testServer(t, testCatalog(t), nil)

	res, err := http.Get(srv.URL + "/locate")
	if err != nil {
		t.Fatalf("GET /locate: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", res.StatusCode)
	}
	if allow := res.Header.Get("Allow"); allow != http.MethodPost {
		t.Fatalf("Allow = %q, want POST", allow)
	}
}
