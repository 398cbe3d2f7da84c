package services

import (
	"errors"
	"testing"

	"star-coordinates-service/internal/domain"
)

// refConn builds a connection whose recorded distance is the measured
// distance from ref to target, i.e. a consistent measurement.
func refConn(system string, ref, target domain.Vector) Connection {
	return Connection{
		System:   system,
		Location: ref,
		Distance: domain.MeasuredDistance(ref, target),
	}
}

// wellConstrained returns four well-separated, non-collinear references
// consistent with the grid point (1, 2, 3).
func wellConstrained() []Connection {
	target := domain.Vector{X: 1, Y: 2, Z: 3}
	return []Connection{
		refConn("Hesion", domain.Vector{X: 5, Y: 2, Z: 3}, target),
		refConn("Karek", domain.Vector{X: 1, Y: 7, Z: 3}, target),
		refConn("Voss", domain.Vector{X: 1, Y: 2, Z: 9}, target),
		refConn("Talem", domain.Vector{X: 4, Y: 6, Z: 3}, target),
	}
}

func TestExplorerFindsUniqueLocation(t *testing.T) {
	explorer := NewExplorer(wellConstrained(), 0)

	if err := explorer.Explore(domain.Vector{X: 1.01, Y: 1.99, Z: 3.0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	matches := explorer.Matches()
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d: %v", len(matches), matches)
	}
	if matches[0] != (domain.Vector{X: 1, Y: 2, Z: 3}) {
		t.Fatalf("match = %+v, want (1, 2, 3)", matches[0])
	}
	if explorer.Evaluated() == 0 {
		t.Fatalf("expected evaluations to be counted")
	}
}

func TestExplorerDescendsToMatch(t *testing.T) {
	explorer := NewExplorer(wellConstrained(), 0)

	// Three grid steps off along z: the walk has to descend before it can
	// flood-fill the zero region.
	if err := explorer.Explore(domain.Vector{X: 1, Y: 2, Z: 3.09375}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	matches := explorer.Matches()
	if len(matches) != 1 || matches[0] != (domain.Vector{X: 1, Y: 2, Z: 3}) {
		t.Fatalf("matches = %v, want exactly (1, 2, 3)", matches)
	}
}

func TestExplorerMemoizesEvaluations(t *testing.T) {
	explorer := NewExplorer(wellConstrained(), 0)

	if err := explorer.Explore(domain.Vector{X: 1, Y: 2, Z: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := explorer.Evaluated()

	// Exploring the same seed again touches only memoized locations.
	if err := explorer.Explore(domain.Vector{X: 1, Y: 2, Z: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if explorer.Evaluated() != first {
		t.Fatalf("evaluations grew from %d to %d on a repeat seed", first, explorer.Evaluated())
	}
	if len(explorer.Matches()) != 1 {
		t.Fatalf("expected the match to be recorded once, got %d", len(explorer.Matches()))
	}
}

func TestExplorerBudgetExceeded(t *testing.T) {
	// A single reference leaves a whole spherical shell of zero error, so a
	// tiny budget runs out while flood-filling it.
	target := domain.Vector{X: 5, Y: 0, Z: 0}
	conns := []Connection{refConn("Hesion", domain.Vector{}, target)}

	explorer := NewExplorer(conns, 10)
	err := explorer.Explore(target)
	if !errors.Is(err, ErrBudgetExceeded) {
		t.Fatalf("expected ErrBudgetExceeded, got %v", err)
	}
}
