// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/scottlawson/pathtracer/core/bxdf"
	"github.com/scottlawson/pathtracer/r3"
)

func testFrame() (n, s, ss, ts r3.Vec) {
	return r3.Vec{X: 0, Y: 0, Z: 1}, r3.Vec{X: 0, Y: 0, Z: 1}, r3.Vec{X: 1, Y: 0, Z: 0}, r3.Vec{X: 0, Y: 1, Z: 0}
}

var zeroUV = r3.Point2{}

func TestMatteLambertianWhenSigmaZero(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m := Matte{Albedo_: r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, Sigma: 0}
	n, sn, ss, ts := testFrame()
	b := m.ComputeScattering(n, sn, ss, ts, zeroUV, rng.Float64)
	if b.NumComponents() != 1 {
		t.Fatalf("expected exactly one BxDF lobe, got %d", b.NumComponents())
	}
	if !b.Has(bxdf.Diffuse) {
		t.Fatalf("expected a diffuse lobe")
	}
}

func TestMatteOrenNayarWhenSigmaNonzero(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m := Matte{Albedo_: r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, Sigma: 20}
	n, sn, ss, ts := testFrame()
	b := m.ComputeScattering(n, sn, ss, ts, zeroUV, rng.Float64)
	if !b.Has(bxdf.Diffuse) {
		t.Fatalf("expected a diffuse lobe for rough matte")
	}
}

func TestMirrorIsSpecularOnly(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m := Mirror{R: r3.Vec{X: 1, Y: 1, Z: 1}}
	n, sn, ss, ts := testFrame()
	b := m.ComputeScattering(n, sn, ss, ts, zeroUV, rng.Float64)
	if !b.Has(bxdf.Specular) || b.Has(bxdf.Diffuse) {
		t.Fatalf("expected Mirror to contribute only a specular lobe")
	}
}

func TestGlassHasReflectionAndTransmission(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := Glass{R: r3.Vec{X: 1, Y: 1, Z: 1}, T: r3.Vec{X: 1, Y: 1, Z: 1}, Eta: 1.5}
	n, sn, ss, ts := testFrame()
	b := g.ComputeScattering(n, sn, ss, ts, zeroUV, rng.Float64)
	if b.NumComponents() != 2 {
		t.Fatalf("expected Glass to add exactly two lobes, got %d", b.NumComponents())
	}
	if !b.Has(bxdf.Reflection) || !b.Has(bxdf.Transmission) {
		t.Fatalf("expected Glass to have both reflection and transmission")
	}
}

func TestPlasticPicksSpecularBelowRoughnessThreshold(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	smooth := Plastic{Diffuse: r3.Vec{X: 0.2, Y: 0.2, Z: 0.2}, Specular: r3.Vec{X: 1, Y: 1, Z: 1}, Roughness: 0, Eta: 1.5}
	n, sn, ss, ts := testFrame()
	b := smooth.ComputeScattering(n, sn, ss, ts, zeroUV, rng.Float64)
	if !b.Has(bxdf.Specular) || b.Has(bxdf.Glossy) {
		t.Fatalf("expected a specular (not glossy) lobe below the roughness threshold")
	}
}

func TestPlasticPicksGlossyAboveRoughnessThreshold(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	rough := Plastic{Diffuse: r3.Vec{X: 0.2, Y: 0.2, Z: 0.2}, Specular: r3.Vec{X: 1, Y: 1, Z: 1}, Roughness: 0.5, Eta: 1.5}
	n, sn, ss, ts := testFrame()
	b := rough.ComputeScattering(n, sn, ss, ts, zeroUV, rng.Float64)
	if !b.Has(bxdf.Glossy) {
		t.Fatalf("expected a glossy lobe above the roughness threshold")
	}
}

func TestPlasticSkipsZeroComponents(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	diffuseOnly := Plastic{Diffuse: r3.Vec{X: 0.2, Y: 0.2, Z: 0.2}, Specular: r3.Vec{}, Roughness: 0.5, Eta: 1.5}
	n, sn, ss, ts := testFrame()
	b := diffuseOnly.ComputeScattering(n, sn, ss, ts, zeroUV, rng.Float64)
	if b.NumComponents() != 1 {
		t.Fatalf("expected exactly one lobe when Specular is zero, got %d", b.NumComponents())
	}
}

func TestSmoothPlasticMixturePdfCountsSpecularLobe(t *testing.T) {
	// A smooth Plastic carries Lambertian + SpecularReflection. The
	// delta lobe's pdf is 1 everywhere, so even with Specular masked
	// out of the request flags the container's intersection-based
	// matching still averages that 1 in alongside the diffuse pdf.
	p := Plastic{Diffuse: r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, Specular: r3.Vec{X: 1, Y: 1, Z: 1}, Roughness: 0, Eta: 1.5}
	n, sn, ss, ts := testFrame()
	b := p.ComputeScattering(n, sn, ss, ts, zeroUV, func() float64 { return 0 }) // always pick the Lambertian lobe

	wo := r3.Vec{X: 0, Y: 0, Z: 1}
	wi := r3.Vec{X: 0.1, Y: 0.2, Z: 0.9}.Unit()
	lambert := bxdf.Lambertian{Albedo: p.Diffuse}.Pdf(wo, wi)

	got := b.Pdf(wo, wi, bxdf.All&^bxdf.Specular)
	want := (lambert + 1) / 2
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("mixture Pdf = %v, want (lambertian + specular)/2 = %v", got, want)
	}

	s := b.SampleF(wo, bxdf.All&^bxdf.Specular, r3.Point2{X: 0.3, Y: 0.6})
	if !s.Valid {
		t.Fatalf("expected a valid diffuse sample")
	}
	lambertAtWi := bxdf.Lambertian{Albedo: p.Diffuse}.Pdf(wo, s.Wi)
	wantPdf := (lambertAtWi + 1) / 2
	if math.Abs(s.Pdf-wantPdf) > 1e-9 {
		t.Fatalf("SampleF mixture pdf = %v, want %v", s.Pdf, wantPdf)
	}
}

type recordingTexture struct {
	u, v float64
	out  r3.Vec
}

func (rt *recordingTexture) At(u, v float64) r3.Vec {
	rt.u, rt.v = u, v
	return rt.out
}

func TestMatteTextureOverridesFlatAlbedoAtUV(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tex := &recordingTexture{out: r3.Vec{X: 0.1, Y: 0.2, Z: 0.3}}
	m := Matte{Albedo_: r3.Vec{X: 1, Y: 1, Z: 1}, Texture: tex}
	n, sn, ss, ts := testFrame()
	uv := r3.Point2{X: 0.25, Y: 0.75}
	b := m.ComputeScattering(n, sn, ss, ts, uv, rng.Float64)
	if tex.u != uv.X || tex.v != uv.Y {
		t.Fatalf("expected the texture sampled at (%v,%v), got (%v,%v)", uv.X, uv.Y, tex.u, tex.v)
	}
	wo := r3.Vec{X: 0, Y: 0, Z: 1}
	f := b.F(wo, wo, bxdf.All)
	if f.IsZero() {
		t.Fatalf("expected a nonzero lobe contribution from the textured albedo")
	}
	if m.Albedo() != m.Albedo_ {
		t.Fatalf("Albedo() AOV should remain the flat fallback color, not the texture sample")
	}
}
