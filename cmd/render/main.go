// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

// Command render drives the path-tracing core end to end: it builds a
// small fixed scene, wires up a camera, sampler, and film, runs the
// bucket-parallel renderer, and writes the result to disk. Scene
// description beyond this hardcoded example, and all other CLI/config
// concerns, are deliberately out of scope for the core itself.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/scottlawson/pathtracer/core/camera"
	"github.com/scottlawson/pathtracer/core/film"
	"github.com/scottlawson/pathtracer/core/integrator"
	"github.com/scottlawson/pathtracer/core/light"
	"github.com/scottlawson/pathtracer/core/material"
	"github.com/scottlawson/pathtracer/core/sampler"
	"github.com/scottlawson/pathtracer/core/shape"
	"github.com/scottlawson/pathtracer/internal/logging"
	"github.com/scottlawson/pathtracer/r3"
)

func main() {
	var (
		out       = flag.String("out", "out.png", "output image path")
		width     = flag.Int("width", 400, "image width in pixels")
		height    = flag.Int("height", 300, "image height in pixels")
		spp       = flag.Int("spp", 64, "samples per pixel")
		depth     = flag.Int("depth", 8, "max bounce depth")
		seed      = flag.Int64("seed", 0, "base random seed")
		workers   = flag.Int("workers", runtime.NumCPU(), "worker goroutine count")
		debugLogs = flag.Bool("debug", false, "enable development-mode logging")
	)
	flag.Parse()
	logging.Init(*debugLogs)
	defer logging.Sync()

	scene, cam, err := buildScene(*width, *height)
	if err != nil {
		logging.Log.Fatal(err.Error())
	}

	filter := film.NewFilter(film.FilterGaussian, 2)
	f, err := film.NewFilm(*width, *height, 16, filter)
	if err != nil {
		logging.Log.Fatal(err.Error())
	}

	samp := sampler.NewStratified(*seed)
	opts := film.RenderOptions{
		SamplesPerPixel: *spp,
		MaxDepth:        *depth,
		NumWorkers:      *workers,
		Seed:            *seed,
	}
	if err := opts.Validate(); err != nil {
		logging.Log.Fatal(err.Error())
	}

	t0 := time.Now()
	film.Render(context.Background(), f, scene, cam, samp, opts)
	logging.Log.Sugar().Infof("rendered %dx%d at %d spp in %s", *width, *height, *spp, time.Since(t0))

	if err := writeOutput(f, *out); err != nil {
		logging.Log.Fatal(err.Error())
	}
	fmt.Printf("wrote %s\n", *out)
}

func writeOutput(f *film.Film, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()
	return f.WriteToFile(out)
}

// buildScene constructs a small Cornell-box-flavored scene: a matte
// floor and back wall, a mirror sphere, a glass sphere, and an
// overhead area light, viewed through a pinhole camera (zero aperture).
func buildScene(width, height int) (*integrator.Scene, camera.Camera, error) {
	floor := shape.Rectangle{
		Center: r3.Point{X: 0, Y: -1, Z: 0},
		Normal: r3.Vec{X: 0, Y: 1, Z: 0},
		Width:  8, Height: 8,
	}
	back := shape.Rectangle{
		Center: r3.Point{X: 0, Y: 1, Z: -3},
		Normal: r3.Vec{X: 0, Y: 0, Z: 1},
		Width:  8, Height: 8,
	}
	mirrorSphere := shape.Sphere{Center: r3.Point{X: -1.2, Y: -0.3, Z: -1}, Radius: 0.7}
	glassSphere := shape.Sphere{Center: r3.Point{X: 1.2, Y: -0.3, Z: -1.5}, Radius: 0.7}
	lightShape := shape.Rectangle{
		Center: r3.Point{X: 0, Y: 2.99, Z: -1.5},
		Normal: r3.Vec{X: 0, Y: -1, Z: 0},
		Width:  1.5, Height: 1.5,
	}

	areaLight := light.Area{Shape: lightShape, Intensity: r3.Vec{X: 15, Y: 15, Z: 15}}

	primitives := []integrator.Primitive{
		{Shape: floor, Material: material.Matte{Albedo_: r3.Vec{X: 0.7, Y: 0.7, Z: 0.7}}},
		{Shape: back, Material: material.Matte{Albedo_: r3.Vec{X: 0.6, Y: 0.6, Z: 0.8}}},
		{Shape: mirrorSphere, Material: material.Mirror{R: r3.Vec{X: 0.95, Y: 0.95, Z: 0.95}}},
		{Shape: glassSphere, Material: material.Glass{R: r3.Vec{X: 1, Y: 1, Z: 1}, T: r3.Vec{X: 1, Y: 1, Z: 1}, Eta: 1.5}},
		{Shape: lightShape, Material: material.Matte{Albedo_: r3.Vec{}}, AreaLight: &areaLight},
	}
	lights := []light.Light{areaLight}

	scene, err := integrator.NewScene(primitives, lights)
	if err != nil {
		return nil, nil, fmt.Errorf("building scene: %w", err)
	}

	aspect := float64(width) / float64(height)
	halfHeight := 1.6
	halfWidth := halfHeight * aspect
	cam := camera.PinholeCamera{
		LowerLeftCorner: r3.Point{X: -halfWidth, Y: 0.3 - halfHeight, Z: 3},
		Origin:          r3.Point{X: 0, Y: 0.3, Z: 4},
		Horizontal:      r3.Vec{X: 2 * halfWidth, Y: 0, Z: 0},
		Vertical:        r3.Vec{X: 0, Y: 2 * halfHeight, Z: 0},
	}
	if err := cam.Validate(); err != nil {
		return nil, nil, fmt.Errorf("building camera: %w", err)
	}
	return scene, cam, nil
}
