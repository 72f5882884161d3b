// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

// Package geometry implements the shading-frame trigonometry, hemisphere
// and disk sampling, and reflection/refraction helpers shared by the BxDF,
// BSDF, and microfacet packages. All directions here are expressed in the
// local shading frame unless documented otherwise: z is the shading
// normal, so cos(theta) = w.Z.
package geometry

import (
	"math"

	"github.com/scottlawson/pathtracer/r3"
)

// CosTheta returns cos(theta) for a direction expressed in the local
// shading frame.
func CosTheta(w r3.Vec) float64 { return w.Z }

// Cos2Theta returns cos^2(theta).
func Cos2Theta(w r3.Vec) float64 { return w.Z * w.Z }

// AbsCosTheta returns |cos(theta)|.
func AbsCosTheta(w r3.Vec) float64 { return math.Abs(w.Z) }

// Sin2Theta returns sin^2(theta), clamped to be non-negative.
func Sin2Theta(w r3.Vec) float64 {
	return math.Max(0, 1-Cos2Theta(w))
}

// SinTheta returns sin(theta).
func SinTheta(w r3.Vec) float64 {
	return math.Sqrt(Sin2Theta(w))
}

// TanTheta returns tan(theta).
func TanTheta(w r3.Vec) float64 {
	return SinTheta(w) / CosTheta(w)
}

// Tan2Theta returns tan^2(theta).
func Tan2Theta(w r3.Vec) float64 {
	return Sin2Theta(w) / Cos2Theta(w)
}

// CosPhi returns cos(phi), the azimuthal angle of w about the shading
// normal. It returns 1 when sin(theta) is zero (the direction lies on the
// pole), matching the convention used throughout the BxDF math so that
// degenerate directions do not produce NaN.
func CosPhi(w r3.Vec) float64 {
	s := SinTheta(w)
	if s == 0 {
		return 1
	}
	return clamp(w.X/s, -1, 1)
}

// SinPhi returns sin(phi), with the same pole convention as CosPhi.
func SinPhi(w r3.Vec) float64 {
	s := SinTheta(w)
	if s == 0 {
		return 1
	}
	return clamp(w.Y/s, -1, 1)
}

// Cos2Phi returns cos^2(phi).
func Cos2Phi(w r3.Vec) float64 { c := CosPhi(w); return c * c }

// Sin2Phi returns sin^2(phi).
func Sin2Phi(w r3.Vec) float64 { s := SinPhi(w); return s * s }

// SameHemisphere reports whether a and b lie in the same hemisphere about
// the local shading normal (the z axis).
func SameHemisphere(a, b r3.Vec) bool {
	return a.Z*b.Z > 0
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// FaceForward flips n so that it lies in the same hemisphere as v.
func FaceForward(n, v r3.Vec) r3.Vec {
	if n.Dot(v) < 0 {
		return n.Muls(-1)
	}
	return n
}

// Reflect reflects w about n: w - 2(w.n)n.
func Reflect(w, n r3.Vec) r3.Vec {
	return w.Sub(n.Muls(2 * w.Dot(n)))
}

// Refract computes the direction refracted from wi across an interface
// with normal n (chosen to lie on the same side as wi) with relative
// index of refraction eta = eta_i/eta_t. It reports false on total
// internal reflection, in which case the returned vector is the zero
// vector.
func Refract(wi, n r3.Vec, eta float64) (r3.Vec, bool) {
	cosThetaI := n.Dot(wi)
	sin2ThetaI := math.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := eta * eta * sin2ThetaI
	if sin2ThetaT >= 1 {
		return r3.Vec{}, false // Total internal reflection.
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)
	wt := wi.Muls(-eta).Add(n.Muls(eta*cosThetaI - cosThetaT))
	return wt, true
}

// WorldToLocal transforms v from world space into the local shading frame
// defined by the orthonormal basis (ss, ts, n).
func WorldToLocal(v, ss, ts, n r3.Vec) r3.Vec {
	return r3.Vec{X: v.Dot(ss), Y: v.Dot(ts), Z: v.Dot(n)}
}

// LocalToWorld transforms v from the local shading frame defined by the
// orthonormal basis (ss, ts, n) into world space.
func LocalToWorld(v, ss, ts, n r3.Vec) r3.Vec {
	return r3.Vec{
		X: ss.X*v.X + ts.X*v.Y + n.X*v.Z,
		Y: ss.Y*v.X + ts.Y*v.Y + n.Y*v.Z,
		Z: ss.Z*v.X + ts.Z*v.Y + n.Z*v.Z,
	}
}

// CoordinateSystem builds an arbitrary right-handed orthonormal basis
// (ss, ts) perpendicular to the unit vector n, following the standard
// branch on the dominant component to avoid a near-parallel cross product.
func CoordinateSystem(n r3.Vec) (ss, ts r3.Vec) {
	var s r3.Vec
	if math.Abs(n.X) > math.Abs(n.Y) {
		inv := 1 / math.Sqrt(n.X*n.X+n.Z*n.Z)
		s = r3.Vec{X: -n.Z * inv, Y: 0, Z: n.X * inv}
	} else {
		inv := 1 / math.Sqrt(n.Y*n.Y+n.Z*n.Z)
		s = r3.Vec{X: 0, Y: n.Z * inv, Z: -n.Y * inv}
	}
	return s, n.Cross(s)
}

// ConcentricSampleDisk maps a uniform 2D sample u in [0,1]^2 onto the unit
// disk using Shirley's concentric mapping, which better preserves
// stratification than polar mapping.
func ConcentricSampleDisk(u r3.Point2) r3.Point2 {
	// Map u to [-1, 1]^2.
	ox := 2*u.X - 1
	oy := 2*u.Y - 1
	if ox == 0 && oy == 0 {
		return r3.Point2{}
	}
	var r, theta float64
	if math.Abs(ox) > math.Abs(oy) {
		r = ox
		theta = (math.Pi / 4) * (oy / ox)
	} else {
		r = oy
		theta = math.Pi/2 - (math.Pi/4)*(ox/oy)
	}
	return r3.Point2{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

// CosineSampleHemisphere draws a direction on the upper hemisphere (z >= 0)
// of the local shading frame with pdf |cos(theta)|/pi, via Malley's method:
// a concentric disk sample lifted onto the hemisphere.
func CosineSampleHemisphere(u r3.Point2) r3.Vec {
	d := ConcentricSampleDisk(u)
	z := math.Sqrt(math.Max(0, 1-d.X*d.X-d.Y*d.Y))
	return r3.Vec{X: d.X, Y: d.Y, Z: z}
}

// CosineHemispherePdf returns the pdf of CosineSampleHemisphere evaluated
// at cosTheta, the cosine of the angle between the sampled direction and
// the shading normal.
func CosineHemispherePdf(cosTheta float64) float64 {
	return math.Abs(cosTheta) * (1 / math.Pi)
}
