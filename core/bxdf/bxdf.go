// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

// Package bxdf implements the closed set of scattering-lobe types
// (Lambertian, Oren-Nayar, specular reflection, specular transmission,
// microfacet reflection) that compose into a BSDF. Every BxDF is
// evaluated in the local shading frame, where the z axis is the shading
// normal.
package bxdf

import "github.com/scottlawson/pathtracer/r3"

// Type is a bitmask describing the scattering behavior of a BxDF.
type Type uint8

const (
	Reflection Type = 1 << iota
	Transmission
	Diffuse
	Glossy
	Specular

	// None matches no BxDF.
	None Type = 0
	// All matches every scattering mode.
	All = Reflection | Transmission | Diffuse | Glossy | Specular
)

// Has reports whether t includes every bit set in other.
func (t Type) Has(other Type) bool { return t&other == other }

// Matches reports whether t shares any bit with other.
func (t Type) Matches(other Type) bool { return t&other != 0 }

// BxDF is a single scattering lobe evaluated in the local shading frame.
type BxDF interface {
	// Flags reports the scattering modes this component participates in.
	Flags() Type
	// F evaluates the scattering distribution for the given outgoing and
	// incoming directions.
	F(wo, wi r3.Vec) r3.Vec
	// Pdf returns the pdf of sampling wi given wo under this component's
	// own sampling strategy.
	Pdf(wo, wi r3.Vec) float64
	// SampleF draws an incoming direction wi given the outgoing direction
	// wo and a uniform 2D sample u, returning the sampled direction, its
	// pdf, and the evaluated scattering value. A zero pdf indicates a
	// degenerate or rejected sample.
	SampleF(wo r3.Vec, u r3.Point2) (wi r3.Vec, pdf float64, f r3.Vec)
}

// TransportMode distinguishes transport starting at the camera (Radiance)
// from transport starting at a light (Importance); it only affects the
// non-symmetric scaling term in SpecularTransmission.
type TransportMode int

const (
	Radiance TransportMode = iota
	Importance
)
