// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package main

import "testing"

func TestBuildSceneProducesAValidCameraAndScene(t *testing.T) {
	scene, cam, err := buildScene(64, 48)
	if err != nil {
		t.Fatalf("buildScene: %v", err)
	}
	if scene == nil {
		t.Fatalf("expected a non-nil scene")
	}
	if err := cam.Validate(); err != nil {
		t.Fatalf("camera should validate, got %v", err)
	}
}
