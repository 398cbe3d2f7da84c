package domain

import (
	"math"
	"testing"
)

func TestSnap(t *testing.T) {
	v := Snap(Vector{X: 1.01, Y: -2.02, Z: 3.0})

	if v.X != 1.0 {
		t.Fatalf("snapped X = %v, want 1.0", v.X)
	}
	if v.Y != -2.03125 {
		t.Fatalf("snapped Y = %v, want -2.03125", v.Y)
	}
	if v.Z != 3.0 {
		t.Fatalf("snapped Z = %v, want 3.0", v.Z)
	}
}

func TestMeasuredDistanceExact(t *testing.T) {
	// 3-4-5 triangle on the grid: the measured distance is exact.
	a := Vector{X: 1, Y: 2, Z: 3}
	b := Vector{X: 4, Y: 6, Z: 3}

	if d := MeasuredDistance(a, b); d != 5.0 {
		t.Fatalf("measured distance = %v, want 5.0", d)
	}
}

func TestMeasuredDistanceRounds(t *testing.T) {
	// sqrt(13) = 3.60555... rounds to 3.606 at 3 decimals.
	a := Vector{X: 0, Y: 0, Z: 2}
	b := Vector{X: 3, Y: 0, Z: 0}

	if d := MeasuredDistance(a, b); d != 3.606 {
		t.Fatalf("measured distance = %v, want 3.606", d)
	}
}

func TestDisplayDistance(t *testing.T) {
	a := Vector{X: 0, Y: 0, Z: 2}
	b := Vector{X: 3, Y: 0, Z: 0}

	if d := DisplayDistance(a, b); d != 3.61 {
		t.Fatalf("display distance = %v, want 3.61", d)
	}
}

func TestVectorMath(t *testing.T) {
	a := Vector{X: 1, Y: 0, Z: 0}
	b := Vector{X: 0, Y: 1, Z: 0}

	cross := a.Cross(b)
	if cross != (Vector{X: 0, Y: 0, Z: 1}) {
		t.Fatalf("cross = %+v, want (0, 0, 1)", cross)
	}

	if dot := a.Dot(b); dot != 0 {
		t.Fatalf("dot = %v, want 0", dot)
	}

	if n := (Vector{X: 3, Y: 4, Z: 0}).Norm(); math.Abs(n-5) > 1e-12 {
		t.Fatalf("norm = %v, want 5", n)
	}
}
