// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

// Package material implements the Material capability: building a BSDF
// at a surface interaction from one of the four closed material
// variants (Matte, Mirror, Glass, Plastic).
package material

import (
	"math"

	"github.com/scottlawson/pathtracer/core/bsdf"
	"github.com/scottlawson/pathtracer/core/bxdf"
	"github.com/scottlawson/pathtracer/core/fresnel"
	"github.com/scottlawson/pathtracer/core/microfacet"
	"github.com/scottlawson/pathtracer/core/sceneio"
	"github.com/scottlawson/pathtracer/core/texture"
	"github.com/scottlawson/pathtracer/r3"
)

func init() {
	sceneio.Register(Matte{})
	sceneio.Register(Mirror{})
	sceneio.Register(Glass{})
	sceneio.Register(Plastic{})
}

// Material is the capability every material variant implements: given a
// fully populated surface interaction's shading frame, its UV
// coordinate (for texture-backed inputs), and a source of randomness
// for the BSDF's internal lobe-selection draw, it builds the BSDF that
// models how light scatters at that point.
type Material interface {
	ComputeScattering(geometryNormal, shadingNormal, ss, ts r3.Vec, uv r3.Point2, rng func() float64) *bsdf.BSDF
	// Albedo returns a representative reflectance color for AOV output.
	Albedo() r3.Vec
}

const vacuumEta = 1.0

// Matte is a diffuse material: Lambertian when Sigma is zero, else a
// rough Oren-Nayar lobe. Sigma is in degrees, matching the artist-facing
// convention used throughout the rest of the material set. When
// Texture is set it overrides Albedo_ at each shading point, sampled
// by the surface's UV coordinate; Albedo_ remains the flat fallback
// and the AOV's representative color.
type Matte struct {
	Albedo_ r3.Vec
	Texture texture.Texture
	Sigma   float64
}

var _ Material = Matte{}

func (m Matte) ComputeScattering(geometryNormal, shadingNormal, ss, ts r3.Vec, uv r3.Point2, rng func() float64) *bsdf.BSDF {
	albedo := m.Albedo_
	if m.Texture != nil {
		albedo = m.Texture.At(uv.X, uv.Y)
	}
	b := bsdf.New(geometryNormal, shadingNormal, ss, ts, vacuumEta, rng)
	if m.Sigma == 0 {
		b.Add(bxdf.Lambertian{Albedo: albedo})
	} else {
		b.Add(bxdf.NewOrenNayar(albedo, m.Sigma*math.Pi/180))
	}
	return b
}

func (m Matte) Albedo() r3.Vec { return m.Albedo_ }

// Mirror is a perfect specular reflector with reflectance R and no
// Fresnel falloff (bxdf.NoOpFresnel), so it reflects the same fraction
// of light regardless of the angle of incidence.
type Mirror struct {
	R r3.Vec
}

var _ Material = Mirror{}

func (m Mirror) ComputeScattering(geometryNormal, shadingNormal, ss, ts r3.Vec, uv r3.Point2, rng func() float64) *bsdf.BSDF {
	b := bsdf.New(geometryNormal, shadingNormal, ss, ts, vacuumEta, rng)
	b.Add(bxdf.SpecularReflection{Reflectance: m.R, Fresnel: bxdf.NoOpFresnel{}})
	return b
}

func (m Mirror) Albedo() r3.Vec { return m.R }

// Glass is a smooth dielectric with separate reflectance R and
// transmittance T, and index of refraction Eta (relative to vacuum).
// Both lobes share a single full dielectric Fresnel term so reflected
// and transmitted energy are complementary at the interface.
type Glass struct {
	R, T r3.Vec
	Eta  float64
}

var _ Material = Glass{}

func (g Glass) ComputeScattering(geometryNormal, shadingNormal, ss, ts r3.Vec, uv r3.Point2, rng func() float64) *bsdf.BSDF {
	b := bsdf.New(geometryNormal, shadingNormal, ss, ts, g.Eta, rng)
	b.Add(bxdf.SpecularReflection{
		Reflectance: g.R,
		Fresnel:     fresnel.NewDielectric(vacuumEta, g.Eta),
	})
	b.Add(bxdf.NewSpecularTransmission(g.T, vacuumEta, g.Eta, bxdf.Radiance))
	return b
}

func (g Glass) Albedo() r3.Vec { return g.R.Add(g.T).Muls(0.5) }

// Plastic layers an optional diffuse base coat with an optional
// specular or glossy top coat: smooth (Roughness below the threshold)
// uses a mirror-like SpecularReflection, while rough surfaces use a GGX
// MicrofacetReflection with visible-normal sampling enabled, matching
// the teacher's habit of reserving delta lobes for the roughness == 0
// limit.
type Plastic struct {
	Diffuse, Specular r3.Vec
	Roughness         float64
	Eta               float64
}

var _ Material = Plastic{}

const plasticSmoothThreshold = 1e-3

func (p Plastic) ComputeScattering(geometryNormal, shadingNormal, ss, ts r3.Vec, uv r3.Point2, rng func() float64) *bsdf.BSDF {
	b := bsdf.New(geometryNormal, shadingNormal, ss, ts, vacuumEta, rng)
	if !p.Diffuse.IsZero() {
		b.Add(bxdf.Lambertian{Albedo: p.Diffuse})
	}
	if !p.Specular.IsZero() {
		fr := fresnel.NewDielectric(vacuumEta, p.Eta)
		if p.Roughness < plasticSmoothThreshold {
			b.Add(bxdf.SpecularReflection{Reflectance: p.Specular, Fresnel: fr})
		} else {
			b.Add(bxdf.MicrofacetReflection{
				Reflectance:  p.Specular,
				Distribution: microfacet.New(p.Roughness, true),
				Fresnel:      fr,
			})
		}
	}
	return b
}

func (p Plastic) Albedo() r3.Vec { return p.Diffuse }
