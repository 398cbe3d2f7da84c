package services

import (
	"errors"
	"fmt"

	"star-coordinates-service/internal/domain"
)

// VerifyOutcome classifies a verification of a recorded coordinate.
type VerifyOutcome string

const (
	VerifyVerified       VerifyOutcome = "verified"
	VerifyMismatch       VerifyOutcome = "mismatch"
	VerifyNoMatch        VerifyOutcome = "no_match"
	VerifyAmbiguous      VerifyOutcome = "ambiguous"
	VerifyBudgetExceeded VerifyOutcome = "budget_exceeded"
)

// ErrUnknownStar reports a star name absent from the catalog.
var ErrUnknownStar = errors.New("star is not in the catalog")

// VerifyResult is the outcome of checking one star's recorded coordinate.
type VerifyResult struct {
	Star      string
	Outcome   VerifyOutcome
	Recorded  domain.Vector
	Location  domain.Vector // the single match, when exactly one was found
	Evaluated int
}

// Verify checks a star's recorded coordinate against its distance set by
// exploring the zero-error region around the recorded location.
func Verify(star *domain.Star, catalog *domain.Catalog, budget int) (VerifyResult, error) {
	connections := BuildConnections(star, catalog)
	if len(connections) == 0 {
		return VerifyResult{}, fmt.Errorf("verify %q: %w", star.Name, ErrInsufficientReferences)
	}

	recorded := star.Location()
	explorer := NewExplorer(connections, budget)
	if err := explorer.Explore(recorded); err != nil {
		return VerifyResult{}, fmt.Errorf("verify %q: %w", star.Name, err)
	}

	res := VerifyResult{
		Star:      star.Name,
		Recorded:  recorded,
		Evaluated: explorer.Evaluated(),
	}
	matches := explorer.Matches()
	switch {
	case len(matches) == 0:
		res.Outcome = VerifyNoMatch
	case len(matches) > 1:
		res.Outcome = VerifyAmbiguous
	case matches[0] == recorded:
		res.Outcome = VerifyVerified
		res.Location = matches[0]
	default:
		res.Outcome = VerifyMismatch
		res.Location = matches[0]
	}
	return res, nil
}

// VerifyCatalog verifies every calculated star with at least one resolvable
// distance, in name order. A budget overrun fails that star's report rather
// than aborting the run.
func VerifyCatalog(catalog *domain.Catalog, budget int) []VerifyResult {
	results := make([]VerifyResult, 0, catalog.Len())
	for _, star := range catalog.Stars() {
		if !star.Calculated || len(BuildConnections(star, catalog)) == 0 {
			continue
		}

		res, err := Verify(star, catalog, budget)
		if err != nil {
			if errors.Is(err, ErrBudgetExceeded) {
				results = append(results, VerifyResult{
					Star:     star.Name,
					Outcome:  VerifyBudgetExceeded,
					Recorded: star.Location(),
				})
			}
			continue
		}
		results = append(results, res)
	}
	return results
}
