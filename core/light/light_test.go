// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package light

import (
	"math"
	"testing"

	"github.com/scottlawson/pathtracer/core/shape"
	"github.com/scottlawson/pathtracer/r3"
)

func TestPointSampleLiInverseSquare(t *testing.T) {
	p := Point{Position: r3.Point{X: 0, Y: 0, Z: 0}, RadiantIntensity: r3.Vec{X: 1, Y: 1, Z: 1}}
	near := p.SampleLi(r3.Point{X: 1, Y: 0, Z: 0}, [2]float64{})
	far := p.SampleLi(r3.Point{X: 2, Y: 0, Z: 0}, [2]float64{})
	if near.Li.X <= far.Li.X {
		t.Fatalf("expected radiance to fall off with distance, got near=%v far=%v", near.Li, far.Li)
	}
	if math.Abs(near.Li.X-1) > 1e-9 {
		t.Fatalf("expected unit distance to give unattenuated intensity, got %v", near.Li.X)
	}
}

func TestDistantIsDeltaAndConstant(t *testing.T) {
	d := Distant{Direction: r3.Vec{X: 0, Y: -1, Z: 0}, Radiance: r3.Vec{X: 2, Y: 2, Z: 2}, WorldRadius: 10}
	if !d.IsDelta() {
		t.Fatalf("Distant should be a delta light")
	}
	s1 := d.SampleLi(r3.Point{X: 0, Y: 0, Z: 0}, [2]float64{0.3, 0.7})
	s2 := d.SampleLi(r3.Point{X: 5, Y: 5, Z: 5}, [2]float64{0.9, 0.1})
	if s1.Wi != s2.Wi {
		t.Fatalf("Distant direction should not depend on the sample or shading point")
	}
}

func TestAreaEmitsOnlyFromFrontFace(t *testing.T) {
	disc := shape.Sphere{Center: r3.Point{X: 0, Y: 0, Z: 0}, Radius: 1}
	a := Area{Shape: disc, Intensity: r3.Vec{X: 1, Y: 1, Z: 1}}
	front := a.EmittedAt(r3.Vec{X: 0, Y: 1, Z: 0}, r3.Vec{X: 0, Y: 1, Z: 0})
	back := a.EmittedAt(r3.Vec{X: 0, Y: 1, Z: 0}, r3.Vec{X: 0, Y: -1, Z: 0})
	if front.IsZero() {
		t.Fatalf("expected nonzero emission toward the normal side")
	}
	if !back.IsZero() {
		t.Fatalf("expected zero emission away from the normal side, got %v", back)
	}
}

func TestAreaSampleLiPdfMatchesShapePdf(t *testing.T) {
	sph := shape.Sphere{Center: r3.Point{X: 0, Y: 0, Z: 5}, Radius: 1}
	a := Area{Shape: sph, Intensity: r3.Vec{X: 1, Y: 1, Z: 1}}
	isectPoint := r3.Point{X: 0, Y: 0, Z: 0}
	sample := a.SampleLi(isectPoint, [2]float64{0.2, 0.6})
	if sample.Pdf <= 0 {
		t.Skip("sampled point faced away from the shading point; try another sample")
	}
	wantPdf := sph.Pdf(isectPoint, sample.Wi)
	if math.Abs(sample.Pdf-wantPdf) > 1e-9 {
		t.Fatalf("Area.SampleLi pdf should delegate to Shape.Pdf: got %v want %v", sample.Pdf, wantPdf)
	}
}

func identity(v r3.Vec) r3.Vec { return v }

func TestInfiniteAreaSampleLiPdfFormula(t *testing.T) {
	width, height := 4, 2
	rgb := make([]float64, width*height*3)
	for i := range rgb {
		rgb[i] = 0.5
	}
	env, err := NewInfiniteArea(width, height, rgb, r3.Vec{X: 1, Y: 1, Z: 1}, identity, identity, 100)
	if err != nil {
		t.Fatalf("NewInfiniteArea: %v", err)
	}
	sample := env.SampleLi(r3.Point{}, [2]float64{0.25, 0.5})
	theta := 0.5 * math.Pi
	want := 1 / (2 * math.Pi * math.Pi * math.Sin(theta))
	if math.Abs(sample.Pdf-want) > 1e-9 {
		t.Fatalf("InfiniteArea pdf should be 1/(2*pi^2*sin(theta)): got %v want %v", sample.Pdf, want)
	}
}

func TestInfiniteAreaRejectsMismatchedImageSize(t *testing.T) {
	_, err := NewInfiniteArea(4, 4, make([]float64, 10), r3.Vec{}, identity, identity, 1)
	if err == nil {
		t.Fatalf("expected an error for mismatched image data length")
	}
}

func TestMipPyramidCoarsestLevelIsSinglePixel(t *testing.T) {
	width, height := 8, 4
	pix := make([]float64, width*height*3)
	for i := range pix {
		pix[i] = 1
	}
	p := newMipPyramid(width, height, pix)
	last := p.levels[len(p.levels)-1]
	if last.width != 1 || last.height != 1 {
		t.Fatalf("expected the coarsest level to be 1x1, got %dx%d", last.width, last.height)
	}
}
