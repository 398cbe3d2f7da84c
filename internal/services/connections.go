package services

import (
	"star-coordinates-service/internal/domain"
)

// Connection is a reference star with a recorded distance to the target.
type Connection struct {
	System   string
	Location domain.Vector
	Distance float64
}

// BuildConnections resolves a star's recorded distances against the catalog.
// Entries naming systems the catalog does not know, or whose catalog entry has
// no coordinate yet, are skipped; circulating distance lists routinely
// reference stars that have not been solved yet.
func BuildConnections(star *domain.Star, catalog *domain.Catalog) []Connection {
	connections := make([]Connection, 0, len(star.Distances))
	for _, entry := range star.Distances {
		if entry.System == star.Name {
			continue
		}
		ref, ok := catalog.Get(entry.System)
		if !ok || !ref.HasLocation() {
			continue
		}
		connections = append(connections, Connection{
			System:   entry.System,
			Location: ref.Location(),
			Distance: float64(entry.Distance),
		})
	}
	return connections
}

// connectionError is the raw distance error for a single reference. A
// measured-distance match is exactly zero. Otherwise the full-precision delta
// is shrunk by the tolerance band so the error stays continuous at the edge
// of the rounding interval.
func connectionError(loc domain.Vector, conn Connection) float64 {
	if domain.MeasuredDistance(loc, conn.Location) == conn.Distance {
		return 0
	}

	delta := loc.DistanceTo(conn.Location) - conn.Distance
	if delta < -domain.DistanceTolerance {
		delta += domain.DistanceTolerance
	} else if delta > domain.DistanceTolerance {
		delta -= domain.DistanceTolerance
	}
	return delta
}

// squaredError sums the squared per-connection errors at loc. Zero means loc
// is consistent with every recorded distance.
func squaredError(loc domain.Vector, connections []Connection) float64 {
	total := 0.0
	for _, conn := range connections {
		e := connectionError(loc, conn)
		total += e * e
	}
	return total
}

// matchesAll reports whether loc is consistent with every recorded distance.
func matchesAll(loc domain.Vector, connections []Connection) bool {
	for _, conn := range connections {
		if domain.MeasuredDistance(loc, conn.Location) != conn.Distance {
			return false
		}
	}
	return true
}
