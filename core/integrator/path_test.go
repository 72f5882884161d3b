// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/scottlawson/pathtracer/core/light"
	"github.com/scottlawson/pathtracer/core/material"
	"github.com/scottlawson/pathtracer/core/shape"
	"github.com/scottlawson/pathtracer/r3"
)

func TestPowerHeuristicSymmetricEqualPdfs(t *testing.T) {
	w := PowerHeuristic(1, 1, 1, 1)
	if math.Abs(w-0.5) > 1e-9 {
		t.Fatalf("equal pdfs should split weight evenly, got %v", w)
	}
}

func TestPowerHeuristicFavorsLowerVariancedStrategy(t *testing.T) {
	w := PowerHeuristic(1, 4, 1, 1)
	if w <= 0.5 {
		t.Fatalf("a higher pdf strategy should receive more weight, got %v", w)
	}
}

func TestPowerHeuristicWeightsSumToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 1000; i++ {
		p := rng.Float64()*10 + 1e-6
		q := rng.Float64()*10 + 1e-6
		sum := PowerHeuristic(1, p, 1, q) + PowerHeuristic(1, q, 1, p)
		if math.Abs(sum-1) > 1e-9 {
			t.Fatalf("PowerHeuristic(p=%v, q=%v) + PowerHeuristic(q, p) = %v, want 1", p, q, sum)
		}
	}
}

func TestNewSceneRejectsEmptyPrimitives(t *testing.T) {
	if _, err := NewScene(nil, nil); err == nil {
		t.Fatalf("expected an error building a scene with no primitives")
	}
}

func newTestScene(t *testing.T) *Scene {
	t.Helper()
	sph := shape.Sphere{Center: r3.Point{X: 0, Y: 0, Z: 0}, Radius: 1}
	floor := shape.Rectangle{Center: r3.Point{X: 0, Y: -1, Z: 0}, Normal: r3.Vec{X: 0, Y: 1, Z: 0}, Width: 20, Height: 20}
	primitives := []Primitive{
		{Shape: sph, Material: material.Matte{Albedo_: r3.Vec{X: 0.8, Y: 0.2, Z: 0.2}}},
		{Shape: floor, Material: material.Matte{Albedo_: r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}}},
	}
	lights := []light.Light{
		light.Point{Position: r3.Point{X: 5, Y: 5, Z: 5}, RadiantIntensity: r3.Vec{X: 50, Y: 50, Z: 50}},
	}
	scene, err := NewScene(primitives, lights)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return scene
}

func TestLiProducesNonNegativeFiniteRadiance(t *testing.T) {
	scene := newTestScene(t)
	rng := rand.New(rand.NewSource(7))
	ray := shape.Ray{Origin: r3.Point{X: 0, Y: 0, Z: 5}, Direction: r3.Vec{X: 0, Y: 0, Z: -1}}

	result := Li(scene, ray, 5, rng)
	if !result.HitAnything {
		t.Fatalf("expected the primary ray to hit the sphere")
	}
	if result.L.X < 0 || result.L.Y < 0 || result.L.Z < 0 {
		t.Fatalf("radiance should never be negative, got %v", result.L)
	}
	if result.L.IsNaN() || result.L.IsInf() {
		t.Fatalf("radiance should be finite, got %v", result.L)
	}
}

func TestLiMissAllReturnsZeroWithoutInfiniteLight(t *testing.T) {
	scene := newTestScene(t)
	rng := rand.New(rand.NewSource(3))
	ray := shape.Ray{Origin: r3.Point{X: 0, Y: 100, Z: 0}, Direction: r3.Vec{X: 0, Y: 1, Z: 0}}

	result := Li(scene, ray, 5, rng)
	if result.HitAnything {
		t.Fatalf("expected this ray to miss the scene entirely")
	}
	if !result.L.IsZero() {
		t.Fatalf("a miss with no infinite light should contribute zero radiance, got %v", result.L)
	}
}
