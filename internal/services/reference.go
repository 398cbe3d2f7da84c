package services

import (
	"star-coordinates-service/internal/domain"
)

// SuggestReference picks the catalog star whose measured distance best
// discriminates the remaining candidate locations.
//
// Candidates are bucketed by the 2-decimal display distance to each eligible
// star; a star's score is its largest bucket, i.e. the candidates that would
// survive in the worst case. The star with the smallest score wins, ties
// broken by shorter then lexically smaller name so a human entering the next
// measurement gets the easiest name to type.
func SuggestReference(
	catalog *domain.Catalog,
	used []Connection,
	candidates []domain.Vector,
	ignore map[string]bool,
) (string, bool) {
	usedNames := make(map[string]bool, len(used))
	for _, conn := range used {
		usedNames[conn.System] = true
	}

	bestName := ""
	bestScore := 0
	for _, star := range catalog.Stars() {
		if usedNames[star.Name] || ignore[star.Name] || !star.HasLocation() {
			continue
		}

		loc := star.Location()
		buckets := make(map[float64]int, len(candidates))
		worst := 0
		for _, cand := range candidates {
			d := domain.DisplayDistance(loc, cand)
			buckets[d]++
			if buckets[d] > worst {
				worst = buckets[d]
			}
		}

		if bestName == "" ||
			worst < bestScore ||
			(worst == bestScore && (len(star.Name) < len(bestName) ||
				(len(star.Name) == len(bestName) && star.Name < bestName))) {
			bestName = star.Name
			bestScore = worst
		}
	}
	return bestName, bestName != ""
}
