package domain

import "math"

// Position in the galactic coordinate frame, in light-years.
type Vector struct {
	X float64
	Y float64
	Z float64
}

func (v Vector) Add(other Vector) Vector {
	return Vector{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

func (v Vector) Sub(other Vector) Vector {
	return Vector{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vector) Dot(other Vector) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

func (v Vector) Cross(other Vector) Vector {
	return Vector{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Norm returns the Euclidean length of the vector.
func (v Vector) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// DistanceTo returns the full-precision straight-line distance between two points.
func (v Vector) DistanceTo(other Vector) float64 {
	return v.Sub(other).Norm()
}
