package services

import (
	"errors"
	"fmt"

	"star-coordinates-service/internal/domain"
)

// Outcome classifies a locate search by how many grid points satisfied every
// distance constraint. Multiple matches are reported as-is, never resolved
// silently.
type Outcome string

const (
	OutcomeFound     Outcome = "found"
	OutcomeNoMatch   Outcome = "no_match"
	OutcomeAmbiguous Outcome = "ambiguous"
)

// LocateResult is the outcome of computing an unknown coordinate.
type LocateResult struct {
	Outcome    Outcome
	Location   domain.Vector   // valid when Outcome is OutcomeFound
	Candidates []domain.Vector // every match when Outcome is OutcomeAmbiguous
	Evaluated  int
}

// Locate computes the coordinate consistent with the given reference
// distances. Reference triples are trilaterated in order until one yields a
// pair of mirror seeds; both seeds are then explored so a mirror-symmetric
// match is not missed.
func Locate(connections []Connection, budget int) (LocateResult, error) {
	if len(connections) < 3 {
		return LocateResult{}, fmt.Errorf(
			"locate: need at least 3 connections, have %d: %w",
			len(connections), ErrInsufficientReferences,
		)
	}

	explorer := NewExplorer(connections, budget)

	seeded := false
seeding:
	for i := 0; i < len(connections); i++ {
		for j := i + 1; j < len(connections); j++ {
			for k := j + 1; k < len(connections); k++ {
				upper, lower, err := Trilaterate(connections[i], connections[j], connections[k])
				if err != nil {
					continue
				}
				if err := explorer.Explore(upper); err != nil {
					return LocateResult{}, fmt.Errorf("locate: %w", err)
				}
				if err := explorer.Explore(lower); err != nil {
					return LocateResult{}, fmt.Errorf("locate: %w", err)
				}
				seeded = true
				break seeding
			}
		}
	}
	if !seeded {
		return LocateResult{}, errors.New("locate: no reference triple yields a trilateration seed")
	}

	matches := explorer.Matches()
	res := LocateResult{Evaluated: explorer.Evaluated()}
	switch len(matches) {
	case 0:
		res.Outcome = OutcomeNoMatch
	case 1:
		res.Outcome = OutcomeFound
		res.Location = matches[0]
	default:
		res.Outcome = OutcomeAmbiguous
		res.Candidates = matches
	}
	return res, nil
}
