package services

import (
	"fmt"
	"math"

	"star-coordinates-service/internal/domain"
)

// SearchResult is the outcome of a candidate enumeration.
type SearchResult struct {
	Matches   []domain.Vector
	Evaluated int
}

// SearchBox enumerates every grid-aligned point inside the bounding box
// implied by the reference constraints and keeps the points whose measured
// distance to every reference equals the recorded distance.
//
// The box is the intersection of the per-reference axis-aligned boxes
// [center - (distance+tol), center + (distance+tol)]; any candidate inside
// the loosest constraint's box that survives filtering also lies inside the
// intersection, so the result set is identical and the enumeration smaller.
// Matches come back in ascending (x, y, z) order.
func SearchBox(connections []Connection, budget int) (SearchResult, error) {
	if len(connections) == 0 {
		return SearchResult{}, fmt.Errorf("search box: %w", ErrInsufficientReferences)
	}
	if budget <= 0 {
		budget = DefaultSearchBudget
	}

	lo := domain.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	hi := domain.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	for _, conn := range connections {
		r := conn.Distance + domain.DistanceTolerance
		lo.X = math.Max(lo.X, conn.Location.X-r)
		lo.Y = math.Max(lo.Y, conn.Location.Y-r)
		lo.Z = math.Max(lo.Z, conn.Location.Z-r)
		hi.X = math.Min(hi.X, conn.Location.X+r)
		hi.Y = math.Min(hi.Y, conn.Location.Y+r)
		hi.Z = math.Min(hi.Z, conn.Location.Z+r)
	}

	x0, x1 := gridRange(lo.X, hi.X)
	y0, y1 := gridRange(lo.Y, hi.Y)
	z0, z1 := gridRange(lo.Z, hi.Z)

	var res SearchResult
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			for z := z0; z <= z1; z++ {
				res.Evaluated++
				if res.Evaluated > budget {
					return SearchResult{}, fmt.Errorf("search box: %w", ErrBudgetExceeded)
				}
				p := gridPoint{X: x, Y: y, Z: z}.vector()
				if matchesAll(p, connections) {
					res.Matches = append(res.Matches, p)
				}
			}
		}
	}
	return res, nil
}

// gridRange converts a continuous interval into inclusive grid indices.
// An empty intersection yields an empty range.
func gridRange(lo, hi float64) (int32, int32) {
	return int32(math.Ceil(lo / domain.GridStep)), int32(math.Floor(hi / domain.GridStep))
}
