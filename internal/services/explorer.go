package services

import (
	"errors"
	"math"
	"slices"

	"star-coordinates-service/internal/domain"
)

// DefaultSearchBudget caps how many grid locations a single search may
// evaluate before giving up.
const DefaultSearchBudget = 20000

// ErrBudgetExceeded reports that a search evaluated its full budget of grid
// locations without converging.
var ErrBudgetExceeded = errors.New("search budget exceeded")

// ErrInsufficientReferences reports that too few reference distances were
// available to bound the search.
var ErrInsufficientReferences = errors.New("insufficient reference distances")

// gridPoint is a grid-aligned location expressed in integer multiples of the
// grid step, so it can key a map without float comparisons.
type gridPoint struct {
	X, Y, Z int32
}

func toGridPoint(v domain.Vector) gridPoint {
	return gridPoint{
		X: int32(math.Round(v.X / domain.GridStep)),
		Y: int32(math.Round(v.Y / domain.GridStep)),
		Z: int32(math.Round(v.Z / domain.GridStep)),
	}
}

func (p gridPoint) vector() domain.Vector {
	return domain.Vector{
		X: float64(p.X) * domain.GridStep,
		Y: float64(p.Y) * domain.GridStep,
		Z: float64(p.Z) * domain.GridStep,
	}
}

func (p gridPoint) compare(other gridPoint) int {
	if p.X != other.X {
		return int(p.X) - int(other.X)
	}
	if p.Y != other.Y {
		return int(p.Y) - int(other.Y)
	}
	return int(p.Z) - int(other.Z)
}

// neighbors returns the 26 grid points surrounding p.
func (p gridPoint) neighbors() []gridPoint {
	out := make([]gridPoint, 0, 26)
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dz := int32(-1); dz <= 1; dz++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				out = append(out, gridPoint{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz})
			}
		}
	}
	return out
}

// Explorer evaluates the squared distance error on the coordinate grid around
// seed locations and collects every grid point where the error is exactly
// zero. Evaluations are memoized; each fresh evaluation counts against the
// budget, so a location is never scored twice.
type Explorer struct {
	connections []Connection
	budget      int
	values      map[gridPoint]float64
	matches     []gridPoint
}

func NewExplorer(connections []Connection, budget int) *Explorer {
	if budget <= 0 {
		budget = DefaultSearchBudget
	}
	return &Explorer{
		connections: connections,
		budget:      budget,
		values:      make(map[gridPoint]float64),
	}
}

func (e *Explorer) valueAt(p gridPoint) (float64, error) {
	if v, ok := e.values[p]; ok {
		return v, nil
	}
	if len(e.values) >= e.budget {
		return 0, ErrBudgetExceeded
	}

	v := squaredError(p.vector(), e.connections)
	e.values[p] = v
	if v == 0 {
		e.matches = append(e.matches, p)
	}
	return v, nil
}

// Explore searches the zero-error region reachable from seed. The seed is
// snapped to the grid, the error surface is walked downhill over grid
// neighbors to a local minimum, and if that minimum is an exact match the
// surrounding zero set is flood-filled so every match in the region is
// collected. Rim points around the region are evaluated but not expanded.
func (e *Explorer) Explore(seed domain.Vector) error {
	cur := toGridPoint(domain.Snap(seed))
	curVal, err := e.valueAt(cur)
	if err != nil {
		return err
	}

	for curVal > 0 {
		best, bestVal := cur, curVal
		for _, n := range cur.neighbors() {
			v, err := e.valueAt(n)
			if err != nil {
				return err
			}
			if v < bestVal {
				best, bestVal = n, v
			}
		}
		if best == cur {
			// Local minimum with nonzero error: no match near this seed.
			return nil
		}
		cur, curVal = best, bestVal
	}

	queue := []gridPoint{cur}
	seen := map[gridPoint]bool{cur: true}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, n := range p.neighbors() {
			if seen[n] {
				continue
			}
			seen[n] = true
			v, err := e.valueAt(n)
			if err != nil {
				return err
			}
			if v == 0 {
				queue = append(queue, n)
			}
		}
	}
	return nil
}

// Matches returns every zero-error location found so far, in (x, y, z) order.
func (e *Explorer) Matches() []domain.Vector {
	points := slices.Clone(e.matches)
	slices.SortFunc(points, gridPoint.compare)

	out := make([]domain.Vector, 0, len(points))
	for _, p := range points {
		out = append(out, p.vector())
	}
	return out
}

// Evaluated returns the number of distinct grid locations scored so far.
func (e *Explorer) Evaluated() int {
	return len(e.values)
}
