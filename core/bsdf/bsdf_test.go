// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package bsdf

import (
	"math"
	"math/rand"
	"testing"

	"github.com/scottlawson/pathtracer/core/bxdf"
	"github.com/scottlawson/pathtracer/r3"
)

func testFrame() (n, ss, ts r3.Vec) {
	n = r3.Vec{X: 0, Y: 0, Z: 1}
	ss = r3.Vec{X: 1, Y: 0, Z: 0}
	ts = r3.Vec{X: 0, Y: 1, Z: 0}
	return
}

func TestFrameRoundTrip(t *testing.T) {
	n, ss, ts := testFrame()
	rng := rand.New(rand.NewSource(1))
	b := New(n, n, ss, ts, 1.5, rng.Float64)
	for i := 0; i < 1000; i++ {
		v := r3.Vec{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1, Z: rng.Float64()*2 - 1}
		local := b.WorldToLocal(v)
		back := b.LocalToWorld(local)
		if !back.IsClose(v, 1e-12) {
			t.Fatalf("round trip: got %v, want %v", back, v)
		}
	}
}

func TestOrthonormalFrame(t *testing.T) {
	n, ss, ts := testFrame()
	tol := 1e-9
	if math.Abs(ss.Length()-1) > tol || math.Abs(ts.Length()-1) > tol || math.Abs(n.Length()-1) > tol {
		t.Fatalf("frame vectors are not unit length: ss=%v ts=%v n=%v", ss, ts, n)
	}
	if math.Abs(ss.Dot(ts)) > tol || math.Abs(ss.Dot(n)) > tol || math.Abs(ts.Dot(n)) > tol {
		t.Fatalf("frame vectors are not orthogonal: ss.ts=%v ss.n=%v ts.n=%v", ss.Dot(ts), ss.Dot(n), ts.Dot(n))
	}
}

func TestMixturePdfAveragesAllMatchingComponents(t *testing.T) {
	n, ss, ts := testFrame()
	rng := rand.New(rand.NewSource(2))
	b := New(n, n, ss, ts, 1.5, rng.Float64)
	b.Add(bxdf.Lambertian{Albedo: r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}})
	b.Add(bxdf.NewOrenNayar(r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, 0.4))

	wo := n // straight on.
	wi := r3.Vec{X: 0.1, Y: 0.2, Z: 0.9}.Unit()

	got := b.Pdf(wo, wi, bxdf.All)
	lambertianPdf := bxdf.Lambertian{Albedo: r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}}.Pdf(wo, wi)
	orenPdf := bxdf.NewOrenNayar(r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, 0.4).Pdf(wo, wi)
	want := (lambertianPdf + orenPdf) / 2
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("mixture Pdf = %v, want average %v", got, want)
	}
}

func TestAddPanicsBeyondCapacity(t *testing.T) {
	n, ss, ts := testFrame()
	rng := rand.New(rand.NewSource(3))
	b := New(n, n, ss, ts, 1.5, rng.Float64)
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic adding a 6th component")
		}
	}()
	for i := 0; i < 6; i++ {
		b.Add(bxdf.Lambertian{Albedo: r3.Vec{X: 0.1, Y: 0.1, Z: 0.1}})
	}
}

func TestSpecularSampleNotMixedWithOtherComponents(t *testing.T) {
	n, ss, ts := testFrame()
	b := New(n, n, ss, ts, 1.5, func() float64 { return 0.99 }) // force picking the last added component.
	b.Add(bxdf.Lambertian{Albedo: r3.Vec{X: 0.2, Y: 0.2, Z: 0.2}})
	b.Add(bxdf.SpecularReflection{Reflectance: r3.Vec{X: 1, Y: 1, Z: 1}, Fresnel: bxdf.NoOpFresnel{}})

	wo := r3.Vec{X: 0.1, Y: 0.1, Z: 0.95}.Unit()
	s := b.SampleF(wo, bxdf.All, r3.Point2{})
	if !s.Valid {
		t.Fatalf("expected a valid sample")
	}
	if s.Pdf != 1 {
		t.Fatalf("specular sample pdf was averaged with the diffuse lobe: got %v, want 1", s.Pdf)
	}
}
