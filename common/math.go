package common

import "math"

// Epsilon is the distance under which two points are treated as equal.
const Epsilon = 0.05

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Vec is a 2D point or displacement in world units.
type Vec struct {
	X, Y float64
}

func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Norm returns the unit vector of v, or the zero vector when v has no length.
func (v Vec) Norm() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{X: v.X / l, Y: v.Y / l}
}

// NearlyEqual compares component-wise within tol.
func (v Vec) NearlyEqual(o Vec, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol && math.Abs(v.Y-o.Y) <= tol
}

func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}
