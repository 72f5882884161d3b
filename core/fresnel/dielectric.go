// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

// Package fresnel computes dielectric Fresnel reflectance, the fraction of
// light reflected (as opposed to transmitted) at a smooth interface
// between two dielectric media.
package fresnel

import "math"

// Dielectric evaluates the unpolarized Fresnel reflectance for a
// dielectric interface with incident-side index eta_i and transmitted-side
// index eta_t.
type Dielectric struct {
	EtaI float64
	EtaT float64
}

// NewDielectric builds a Dielectric Fresnel term.
func NewDielectric(etaI, etaT float64) Dielectric {
	return Dielectric{EtaI: etaI, EtaT: etaT}
}

// Evaluate returns the Fresnel reflectance for a ray with cosine of
// incidence cosThetaI, measured against the surface normal on the
// incident side. A negative cosThetaI means the ray is exiting the
// medium, in which case the two indices are swapped so that the formula
// always operates with the ray travelling from EtaI into EtaT. The result
// is clamped to [0, 1] by construction (it returns exactly 1 under total
// internal reflection).
func (d Dielectric) Evaluate(cosThetaI float64) float64 {
	cosThetaI = clamp(cosThetaI, -1, 1)

	etaI, etaT := d.EtaI, d.EtaT
	if cosThetaI < 0 {
		etaI, etaT = etaT, etaI
		cosThetaI = -cosThetaI
	}

	sinThetaI := math.Sqrt(math.Max(0, 1-cosThetaI*cosThetaI))
	sinThetaT := etaI / etaT * sinThetaI
	if sinThetaT >= 1 {
		return 1 // Total internal reflection.
	}
	cosThetaT := math.Sqrt(math.Max(0, 1-sinThetaT*sinThetaT))

	rParallel := (etaT*cosThetaI - etaI*cosThetaT) / (etaT*cosThetaI + etaI*cosThetaT)
	rPerp := (etaI*cosThetaI - etaT*cosThetaT) / (etaI*cosThetaI + etaT*cosThetaT)
	return (rParallel*rParallel + rPerp*rPerp) / 2
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
