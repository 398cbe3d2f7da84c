package services

import (
	"errors"
	"testing"

	"star-coordinates-service/internal/domain"
)

// testCatalog builds a catalog with four reference stars and one calculated
// star ("Nerio") whose recorded coordinate (1, 2, 3) is consistent with its
// distance list.
func testCatalog(t *testing.T) *domain.Catalog {
	t.Helper()

	target := domain.Vector{X: 1, Y: 2, Z: 3}
	refs := map[string]domain.Vector{
		"Hesion": {X: 5, Y: 2, Z: 3},
		"Karek":  {X: 1, Y: 7, Z: 3},
		"Voss":   {X: 1, Y: 2, Z: 9},
		"Talem":  {X: 4, Y: 6, Z: 3},
	}

	catalog := domain.NewCatalog()
	entries := make([]domain.DistanceEntry, 0, len(refs))
	for _, name := range []string{"Hesion", "Karek", "Voss", "Talem"} {
		loc := refs[name]
		star := &domain.Star{Name: name}
		star.SetLocation(loc)
		catalog.Add(star)
		entries = append(entries, domain.DistanceEntry{
			System:   name,
			Distance: domain.FlexFloat(domain.MeasuredDistance(loc, target)),
		})
	}

	nerio := &domain.Star{Name: "Nerio", Calculated: true, Distances: entries}
	nerio.SetLocation(target)
	catalog.Add(nerio)
	return catalog
}

func TestVerifyVerified(t *testing.T) {
	catalog := testCatalog(t)
	star, _ := catalog.Get("Nerio")

	res, err := Verify(star, catalog, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Outcome != VerifyVerified {
		t.Fatalf("outcome = %q, want %q", res.Outcome, VerifyVerified)
	}
	if res.Location != star.Location() {
		t.Fatalf("location = %+v, want the recorded coordinate", res.Location)
	}
	if res.Evaluated == 0 {
		t.Fatalf("expected evaluations to be counted")
	}
}

func TestVerifyMismatch(t *testing.T) {
	catalog := testCatalog(t)
	star, _ := catalog.Get("Nerio")
	// Recorded coordinate one grid step off; the distances still pin (1, 2, 3).
	star.SetLocation(domain.Vector{X: 1, Y: 2, Z: 3.03125})

	res, err := Verify(star, catalog, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Outcome != VerifyMismatch {
		t.Fatalf("outcome = %q, want %q", res.Outcome, VerifyMismatch)
	}
	if res.Location != (domain.Vector{X: 1, Y: 2, Z: 3}) {
		t.Fatalf("location = %+v, want (1, 2, 3)", res.Location)
	}
}

func TestVerifyNoMatch(t *testing.T) {
	catalog := testCatalog(t)
	star, _ := catalog.Get("Nerio")
	star.Distances[0].Distance += 0.01

	res, err := Verify(star, catalog, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != VerifyNoMatch {
		t.Fatalf("outcome = %q, want %q", res.Outcome, VerifyNoMatch)
	}
}

func TestVerifyUnresolvableReferences(t *testing.T) {
	catalog := testCatalog(t)
	orphan := &domain.Star{
		Name:       "Orphan",
		Calculated: true,
		Distances:  []domain.DistanceEntry{{System: "Nowhere", Distance: 12.5}},
	}
	catalog.Add(orphan)

	_, err := Verify(orphan, catalog, 0)
	if !errors.Is(err, ErrInsufficientReferences) {
		t.Fatalf("expected ErrInsufficientReferences, got %v", err)
	}
}

func TestVerifyCatalog(t *testing.T) {
	catalog := testCatalog(t)
	// Not calculated: must be skipped even though it has distances.
	imported := &domain.Star{
		Name:      "Hesion II",
		Distances: []domain.DistanceEntry{{System: "Hesion", Distance: 1}},
	}
	catalog.Add(imported)

	results := VerifyCatalog(catalog, 0)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Star != "Nerio" || results[0].Outcome != VerifyVerified {
		t.Fatalf("result = %+v, want Nerio verified", results[0])
	}
}
