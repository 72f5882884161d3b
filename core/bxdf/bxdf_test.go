// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package bxdf

import (
	"math"
	"math/rand"
	"testing"

	"github.com/scottlawson/pathtracer/core/geometry"
	"github.com/scottlawson/pathtracer/core/microfacet"
	"github.com/scottlawson/pathtracer/r3"
)

func TestLambertianEnergyConservation(t *testing.T) {
	l := Lambertian{Albedo: r3.Vec{X: 1, Y: 1, Z: 1}}
	wo := r3.Vec{X: 0, Y: 0, Z: 1}
	rng := rand.New(rand.NewSource(1))

	const n = 100000
	var sum float64
	for i := 0; i < n; i++ {
		wi := geometry.CosineSampleHemisphere(r3.Point2{X: rng.Float64(), Y: rng.Float64()})
		pdf := l.Pdf(wo, wi)
		if pdf == 0 {
			continue
		}
		f := l.F(wo, wi).Y
		sum += f * geometry.AbsCosTheta(wi) / pdf
	}
	got := sum / n
	if math.Abs(got-1) > 0.01 {
		t.Fatalf("Lambertian reflectance-1 integral = %v, want ~1", got)
	}
}

func TestCosineHemispherePdfIntegratesToOne(t *testing.T) {
	// Estimate integral(pdf(w) dw) over the upper hemisphere by uniform
	// sampling of the hemisphere (pdf_uniform = 1/(2*pi)) and weighting
	// by pdf(w)/pdf_uniform.
	rng := rand.New(rand.NewSource(2))
	const n = 100000
	const uniformPdf = 1 / (2 * math.Pi)
	var sum float64
	for i := 0; i < n; i++ {
		z := rng.Float64()
		phi := 2 * math.Pi * rng.Float64()
		r := math.Sqrt(math.Max(0, 1-z*z))
		w := r3.Vec{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
		pdf := geometry.CosineHemispherePdf(geometry.CosTheta(w))
		sum += pdf / uniformPdf
	}
	got := sum / n
	if math.Abs(got-1) > 0.01 {
		t.Fatalf("integral of cosine-hemisphere pdf = %v, want ~1", got)
	}
}

func TestSamplePdfConsistency(t *testing.T) {
	components := []BxDF{
		Lambertian{Albedo: r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}},
		NewOrenNayar(r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, 0.3),
		MicrofacetReflection{
			Reflectance:  r3.Vec{X: 1, Y: 1, Z: 1},
			Distribution: microfacet.New(0.3, true),
			Fresnel:      NoOpFresnel{},
		},
		SpecularReflection{Reflectance: r3.Vec{X: 1, Y: 1, Z: 1}, Fresnel: NoOpFresnel{}},
		NewSpecularTransmission(r3.Vec{X: 1, Y: 1, Z: 1}, 1.0, 1.5, Radiance),
	}
	rng := rand.New(rand.NewSource(3))
	wo := r3.Vec{X: 0.1, Y: 0.2, Z: 0.9}.Unit()
	for _, c := range components {
		for i := 0; i < 50; i++ {
			u := r3.Point2{X: rng.Float64(), Y: rng.Float64()}
			wi, pdf, _ := c.SampleF(wo, u)
			if pdf == 0 {
				continue
			}
			if pdf < 0 {
				t.Fatalf("%T.SampleF produced negative pdf %v", c, pdf)
			}
			got := c.Pdf(wo, wi)
			if math.Abs(got-pdf) > 1e-6*math.Max(1, pdf) {
				t.Fatalf("%T: Pdf(wo, wi) = %v, SampleF returned pdf = %v", c, got, pdf)
			}
		}
	}
}

func TestSpecularReflectionDeltaDirection(t *testing.T) {
	s := SpecularReflection{Reflectance: r3.Vec{X: 1, Y: 1, Z: 1}, Fresnel: NoOpFresnel{}}
	wo := r3.Vec{X: 0.3, Y: 0.4, Z: 0.8}.Unit()
	wi, pdf, f := s.SampleF(wo, r3.Point2{})
	want := r3.Vec{X: -wo.X, Y: -wo.Y, Z: wo.Z}
	if !wi.IsClose(want, 1e-12) {
		t.Fatalf("SpecularReflection.SampleF direction = %v, want %v", wi, want)
	}
	if pdf != 1 {
		t.Fatalf("SpecularReflection.SampleF pdf = %v, want 1", pdf)
	}
	if f.X <= 0 {
		t.Fatalf("SpecularReflection.SampleF f = %v, want positive", f)
	}
}

func TestSpecularTransmissionRefractionRoundTrip(t *testing.T) {
	tr := NewSpecularTransmission(r3.Vec{X: 1, Y: 1, Z: 1}, 1.0, 1.5, Radiance)
	wo := r3.Vec{X: 0.1, Y: 0.2, Z: 0.95}.Unit()
	wi, pdf, _ := tr.SampleF(wo, r3.Point2{})
	if pdf == 0 {
		t.Fatalf("expected non-TIR refraction for near-normal incidence")
	}

	// Refracting again across the flipped interface with the reciprocal
	// ratio must recover the original direction exactly.
	n := r3.Vec{X: 0, Y: 0, Z: 1}
	back, ok := geometry.Refract(wi, n.Muls(-1), 1.5/1.0)
	if !ok {
		t.Fatalf("round-trip refraction hit TIR unexpectedly")
	}
	if !back.IsClose(wo, 1e-9) {
		t.Fatalf("round-trip refraction = %v, want %v", back, wo)
	}
}
