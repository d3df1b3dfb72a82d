package models

import "math"

// Vec3 is a position or velocity in the host simulation's world frame.
// Units are metres (or m/s). Y is altitude above ground; X and Z span the
// horizontal plane.
type Vec3 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Distance returns the 3D distance between two points in metres.
func Distance(a, b Vec3) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dz := b.Z - a.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// HorizontalDistance returns the ground-plane distance between two points.
func HorizontalDistance(a, b Vec3) float64 {
	dx := b.X - a.X
	dz := b.Z - a.Z
	return math.Sqrt(dx*dx + dz*dz)
}

// Bearing returns the horizontal bearing from one point to another in
// degrees, normalized to [0, 360).
func Bearing(from, to Vec3) float64 {
	deg := math.Atan2(to.Z-from.Z, to.X-from.X) * 180.0 / math.Pi
	return NormalizeDegrees(deg)
}

// NormalizeDegrees wraps an angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360.0)
	if deg < 0 {
		deg += 360.0
	}
	return deg
}

// Clamp limits x to the range [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
