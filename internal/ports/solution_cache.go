package ports

import "context"

// Solution is a persisted solver outcome for one star.
type Solution struct {
	Star      string
	Outcome   string
	X, Y, Z   float64
	Evaluated int
}

// Contract for caching solver outcomes so repeated requests skip the search.
type SolutionCache interface {
	// Return the cached solution for a star, if present.
	Get(ctx context.Context, star string) (Solution, bool, error)
	// Insert or replace the cached solution for a star.
	Put(ctx context.Context, sol Solution) error
}
