package r3

import (
	"fmt"
	"math"
)

// Point is a location in three-dimensional space, kept distinct from
// Vec so that "point minus point" (a displacement) and "point plus
// vector" (a translation) stay type-checked instead of relying on
// convention.
type Point struct {
	X float64
	Y float64
	Z float64
}

// Sub returns the displacement from p2 to p.
func (p Point) Sub(p2 Point) Vec {
	return Vec{p.X - p2.X, p.Y - p2.Y, p.Z - p2.Z}
}

// Add translates p by v.
func (p Point) Add(v Vec) Point {
	return Point{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// Subv translates p by the negation of v.
func (p Point) Subv(v Vec) Point {
	return Point{p.X - v.X, p.Y - v.Y, p.Z - v.Z}
}

// IsNaN reports whether any coordinate of p is NaN.
func (p Point) IsNaN() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z)
}

// IsInf reports whether any coordinate of p is infinite.
func (p Point) IsInf() bool {
	return math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) || math.IsInf(p.Z, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("(%v, %v, %v)", p.X, p.Y, p.Z)
}
