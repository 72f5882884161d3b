// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package sceneio_test

import (
	"testing"

	"github.com/scottlawson/pathtracer/core/light"
	"github.com/scottlawson/pathtracer/core/material"
	"github.com/scottlawson/pathtracer/core/sceneio"
	"github.com/scottlawson/pathtracer/core/shape"
	"github.com/scottlawson/pathtracer/r3"
)

func TestRoundTripShapeThroughRegistry(t *testing.T) {
	want := shape.Sphere{Center: r3.Point{X: 1, Y: 2, Z: 3}, Radius: 4}
	data, err := sceneio.Marshal(want)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := sceneio.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	sp, ok := got.(*shape.Sphere)
	if !ok {
		t.Fatalf("expected *shape.Sphere, got %T", got)
	}
	if *sp != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", *sp, want)
	}
}

func TestRoundTripMaterialThroughRegistry(t *testing.T) {
	want := material.Matte{Albedo_: r3.Vec{X: 0.5, Y: 0.25, Z: 0.1}, Sigma: 15}
	data, err := sceneio.Marshal(want)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := sceneio.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	m, ok := got.(*material.Matte)
	if !ok {
		t.Fatalf("expected *material.Matte, got %T", got)
	}
	if m.Albedo_ != want.Albedo_ || m.Sigma != want.Sigma {
		t.Fatalf("round trip mismatch: got %+v, want %+v", *m, want)
	}
}

func TestRoundTripLightThroughRegistry(t *testing.T) {
	want := light.Point{Position: r3.Point{X: 0, Y: 5, Z: 0}, RadiantIntensity: r3.Vec{X: 10, Y: 10, Z: 10}}
	data, err := sceneio.Marshal(want)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := sceneio.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	p, ok := got.(*light.Point)
	if !ok {
		t.Fatalf("expected *light.Point, got %T", got)
	}
	if *p != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", *p, want)
	}
}

func TestUnmarshalUnregisteredTypeErrors(t *testing.T) {
	if _, err := sceneio.Unmarshal([]byte(`{"type":"NotRegistered","data":{}}`)); err == nil {
		t.Fatalf("expected an error for an unregistered type name")
	}
}

func TestMarshalNilErrors(t *testing.T) {
	if _, err := sceneio.Marshal(nil); err == nil {
		t.Fatalf("expected an error marshalling nil")
	}
}
