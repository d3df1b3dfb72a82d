package models

import (
	"math"
	"testing"
)

func TestBearingCardinalDirections(t *testing.T) {
	origin := Vec3{}
	tests := []struct {
		to   Vec3
		want float64
	}{
		{Vec3{X: 100}, 0},
		{Vec3{Z: 100}, 90},
		{Vec3{X: -100}, 180},
		{Vec3{Z: -100}, 270},
		{Vec3{X: 100, Z: 100}, 45},
	}

	for _, tt := range tests {
		if got := Bearing(origin, tt.to); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Bearing to %+v = %v, want %v", tt.to, got, tt.want)
		}
	}
}

func TestBearingIgnoresAltitude(t *testing.T) {
	got := Bearing(Vec3{Y: 100}, Vec3{X: 50, Y: 9000})
	if math.Abs(got) > 1e-9 {
		t.Errorf("Bearing should project onto the horizontal plane, got %v", got)
	}
}

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{360, 0},
		{-90, 270},
		{450, 90},
		{-720, 0},
	}
	for _, tt := range tests {
		if got := NormalizeDegrees(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDistances(t *testing.T) {
	a := Vec3{X: 0, Y: 0, Z: 0}
	b := Vec3{X: 3, Y: 12, Z: 4}

	if got := HorizontalDistance(a, b); math.Abs(got-5) > 1e-9 {
		t.Errorf("HorizontalDistance = %v, want 5", got)
	}
	if got := Distance(a, b); math.Abs(got-13) > 1e-9 {
		t.Errorf("Distance = %v, want 13", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 1); got != 1 {
		t.Errorf("Clamp above range: got %v", got)
	}
	if got := Clamp(-5, 0, 1); got != 0 {
		t.Errorf("Clamp below range: got %v", got)
	}
	if got := Clamp(0.5, 0, 1); got != 0.5 {
		t.Errorf("Clamp inside range: got %v", got)
	}
}
