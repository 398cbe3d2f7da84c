package domain

import "math"

// GridStep is the spatial resolution of the star grid. Every catalogued
// coordinate lies on a multiple of 1/32 ly per axis.
const GridStep = 1.0 / 32

// DistanceTolerance is the half-width of the rounding band around a recorded
// distance. Recorded distances carry 3 decimals, so a value d covers actual
// distances in [d-0.0005, d+0.0005).
const DistanceTolerance = 0.0005

// Snap returns v with every component rounded to the nearest grid step.
func Snap(v Vector) Vector {
	return Vector{
		X: math.Round(v.X/GridStep) * GridStep,
		Y: math.Round(v.Y/GridStep) * GridStep,
		Z: math.Round(v.Z/GridStep) * GridStep,
	}
}

// MeasuredDistance reproduces the distance the simulation reports between two
// positions: component deltas truncated to 32-bit floats, accumulated in
// 32-bit precision, rounded to 3 decimals. A candidate location is consistent
// with a recorded distance exactly when MeasuredDistance equals it.
func MeasuredDistance(a, b Vector) float64 {
	return Round3(float32Distance(a, b))
}

// DisplayDistance is the 2-decimal distance shown in the navigation panel.
func DisplayDistance(a, b Vector) float64 {
	return math.Round(float32Distance(a, b)*100) / 100
}

// Round3 rounds to 3 decimals, half away from zero.
func Round3(d float64) float64 {
	return math.Round(d*1000) / 1000
}

func float32Distance(a, b Vector) float64 {
	dx := float32(a.X - b.X)
	dy := float32(a.Y - b.Y)
	dz := float32(a.Z - b.Z)
	sum := dx*dx + dy*dy + dz*dz
	return float64(float32(math.Sqrt(float64(sum))))
}
