// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package bxdf

import (
	"github.com/scottlawson/pathtracer/core/fresnel"
	"github.com/scottlawson/pathtracer/core/geometry"
	"github.com/scottlawson/pathtracer/r3"
)

// SpecularTransmission is a perfect dielectric transmission lobe.
type SpecularTransmission struct {
	Transmittance r3.Vec
	EtaA, EtaB    float64
	Mode          TransportMode

	fresnel fresnel.Dielectric
}

// NewSpecularTransmission builds a SpecularTransmission lobe; its
// accompanying Fresnel term is always the full dielectric formula for the
// given pair of indices, matching the way the reflected and transmitted
// energy must sum to conserve energy at the interface.
func NewSpecularTransmission(transmittance r3.Vec, etaA, etaB float64, mode TransportMode) SpecularTransmission {
	return SpecularTransmission{
		Transmittance: transmittance,
		EtaA:          etaA,
		EtaB:          etaB,
		Mode:          mode,
		fresnel:       fresnel.NewDielectric(etaA, etaB),
	}
}

func (s SpecularTransmission) Flags() Type { return Transmission | Specular }

func (s SpecularTransmission) F(wo, wi r3.Vec) r3.Vec { return r3.Vec{} }

// Pdf is 1 unconditionally, the same convention as SpecularReflection.
func (s SpecularTransmission) Pdf(wo, wi r3.Vec) float64 { return 1 }

func (s SpecularTransmission) SampleF(wo r3.Vec, u r3.Point2) (r3.Vec, float64, r3.Vec) {
	entering := geometry.CosTheta(wo) > 0
	etaI, etaT := s.EtaA, s.EtaB
	if !entering {
		etaI, etaT = s.EtaB, s.EtaA
	}

	n := geometry.FaceForward(r3.Vec{X: 0, Y: 0, Z: 1}, wo)
	wi, ok := geometry.Refract(wo, n, etaI/etaT)
	if !ok {
		return r3.Vec{}, 0, r3.Vec{}
	}

	pdf := 1.0
	fr := s.fresnel.Evaluate(geometry.CosTheta(wi))
	ft := s.Transmittance.Muls(1 - fr)
	if s.Mode == Radiance {
		ft = ft.Muls((etaI * etaI) / (etaT * etaT))
	}
	cosWi := geometry.AbsCosTheta(wi)
	if cosWi != 0 {
		ft = ft.Divs(cosWi)
	}
	return wi, pdf, ft
}
