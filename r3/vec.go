package r3

import (
	"fmt"
	"math"
)

// Vec is a displacement or direction in three-dimensional space. The
// renderer reuses it for radiance, throughput, and reflectance values
// too, since all three are just triples of floats that add and scale
// the same way.
type Vec struct {
	X float64
	Y float64
	Z float64
}

// Add returns v+v2, component-wise.
func (v Vec) Add(v2 Vec) Vec {
	return Vec{v.X + v2.X, v.Y + v2.Y, v.Z + v2.Z}
}

// Sub returns v-v2, component-wise.
func (v Vec) Sub(v2 Vec) Vec {
	return Vec{v.X - v2.X, v.Y - v2.Y, v.Z - v2.Z}
}

// Mul returns the component-wise (Hadamard) product of v and v2, the
// form used to modulate a color by a reflectance or a Fresnel term.
func (v Vec) Mul(v2 Vec) Vec {
	return Vec{v.X * v2.X, v.Y * v2.Y, v.Z * v2.Z}
}

// Muls scales every component of v by s.
func (v Vec) Muls(s float64) Vec {
	return Vec{v.X * s, v.Y * s, v.Z * s}
}

// Divs divides every component of v by s.
func (v Vec) Divs(s float64) Vec {
	return Vec{v.X / s, v.Y / s, v.Z / s}
}

// Dot returns the dot product of v and v2.
func (v Vec) Dot(v2 Vec) float64 {
	return v.X*v2.X + v.Y*v2.Y + v.Z*v2.Z
}

// Cross returns the cross product v x v2.
func (v Vec) Cross(v2 Vec) Vec {
	return Vec{v.Y*v2.Z - v.Z*v2.Y, v.Z*v2.X - v.X*v2.Z, v.X*v2.Y - v.Y*v2.X}
}

// IsClose reports whether every component of v and v2 differs by less
// than atol.
func (v Vec) IsClose(v2 Vec, atol float64) bool {
	return math.Abs(v.X-v2.X) < atol && math.Abs(v.Y-v2.Y) < atol && math.Abs(v.Z-v2.Z) < atol
}

// Length returns the Euclidean length of v.
func (v Vec) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Unit returns v scaled to unit length, or the zero vector if v is
// already zero.
func (v Vec) Unit() Vec {
	length := v.Length()
	if length == 0 {
		return Vec{}
	}
	return v.Divs(length)
}

// IsNaN reports whether any component of v is NaN.
func (v Vec) IsNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

// IsInf reports whether any component of v is infinite.
func (v Vec) IsInf() bool {
	return math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) || math.IsInf(v.Z, 0)
}

// IsZero reports whether v is the zero vector.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

func (v Vec) String() string {
	return fmt.Sprintf("(%v, %v, %v)", v.X, v.Y, v.Z)
}
