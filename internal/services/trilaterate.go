package services

import (
	"errors"
	"math"

	"star-coordinates-service/internal/domain"
)

// Trilaterate returns the two mirror intersection points of the spheres
// described by three reference connections. The references must be
// non-coincident and non-collinear, and the spheres must actually intersect;
// otherwise an error is returned.
func Trilaterate(a, b, c Connection) (domain.Vector, domain.Vector, error) {
	var zero domain.Vector

	ex := b.Location.Sub(a.Location)
	d := ex.Norm()
	if d == 0 {
		return zero, zero, errors.New("trilaterate: references a and b are coincident")
	}
	ex = ex.Scale(1 / d)

	ac := c.Location.Sub(a.Location)
	i := ex.Dot(ac)
	ey := ac.Sub(ex.Scale(i))
	j := ey.Norm()
	if j == 0 {
		return zero, zero, errors.New("trilaterate: references are collinear")
	}
	ey = ey.Scale(1 / j)
	ez := ex.Cross(ey)

	x := (a.Distance*a.Distance - b.Distance*b.Distance + d*d) / (2 * d)
	y := (a.Distance*a.Distance-c.Distance*c.Distance+i*i+j*j)/(2*j) - (i/j)*x

	z2 := a.Distance*a.Distance - x*x - y*y
	if z2 < 0 {
		return zero, zero, errors.New("trilaterate: spheres do not intersect")
	}
	z := math.Sqrt(z2)

	base := a.Location.Add(ex.Scale(x)).Add(ey.Scale(y))
	return base.Add(ez.Scale(z)), base.Sub(ez.Scale(z)), nil
}
