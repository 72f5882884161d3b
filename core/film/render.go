// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package film

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/scottlawson/pathtracer/core/camera"
	"github.com/scottlawson/pathtracer/core/integrator"
	"github.com/scottlawson/pathtracer/core/sampler"
	"github.com/scottlawson/pathtracer/internal/logging"
	"github.com/scottlawson/pathtracer/r3"
)

// RenderOptions configures a parallel render: how many samples per
// pixel to request, how deep to trace, and how many worker goroutines
// to run concurrently (Render runs a single worker if NumWorkers is
// zero).
type RenderOptions struct {
	SamplesPerPixel int
	MaxDepth        int
	NumWorkers      int
	Seed            int64
}

// DefaultRenderOptions returns the options a driver starts from when it
// has no opinion of its own: a preview-quality sample count on the
// default worker-pool size.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{SamplesPerPixel: 64, MaxDepth: 8, NumWorkers: 8}
}

// Validate reports whether the options describe a runnable render.
func (o RenderOptions) Validate() error {
	if o.SamplesPerPixel <= 0 {
		return fmt.Errorf("film: SamplesPerPixel must be positive, got %d", o.SamplesPerPixel)
	}
	if o.MaxDepth < 0 {
		return fmt.Errorf("film: MaxDepth must be non-negative, got %d", o.MaxDepth)
	}
	if o.NumWorkers < 0 {
		return fmt.Errorf("film: NumWorkers must be non-negative, got %d", o.NumWorkers)
	}
	return nil
}

// Render drives a fixed pool of worker goroutines over f's buckets:
// each worker repeatedly claims the next bucket, generates camera rays
// for every pixel in its SampleBounds via samp, runs the integrator,
// splats the results locally, and merges them into the film. The only
// state shared between workers is f itself, serialized by its mutex.
//
// Render returns once every bucket has been claimed and merged, or
// early if ctx is canceled; a canceled render leaves f holding
// whatever samples were merged before cancellation.
func Render(ctx context.Context, f *Film, scene *integrator.Scene, cam camera.Camera, samp bucketRNG, opts RenderOptions) {
	numWorkers := opts.NumWorkers
	if numWorkers <= 0 {
		numWorkers = 1
	}

	var completed uint64
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			workerRNG, ok := samp.Clone(opts.Seed + int64(workerID)).(bucketRNG)
			if !ok {
				return
			}
			for {
				if ctx.Err() != nil {
					return
				}
				bucket, ok := f.NextBucket()
				if !ok {
					return
				}
				renderBucket(ctx, f, scene, cam, workerRNG, bucket, opts)
				f.WriteBucketPixels(bucket)
				f.MergeBucketPixels(bucket)
				atomic.AddUint64(&completed, 1)
			}
		}(w)
	}
	wg.Wait()
	logging.Log.Info("render pass finished",
		zap.Uint64("bucketsCompleted", atomic.LoadUint64(&completed)),
		zap.Int("bucketsTotal", len(f.Buckets())))
}

// bucketRNG is the capability renderBucket requires of a Sampler
// beyond the Sampler interface itself: a scalar stream to drive the
// integrator's BSDF sampling and Russian roulette decisions. Both
// samplers in core/sampler (Independent, Stratified) satisfy it.
type bucketRNG interface {
	sampler.Sampler
	integrator.RNG
}

func renderBucket(ctx context.Context, f *Film, scene *integrator.Scene, cam camera.Camera, samp bucketRNG, bucket *Bucket, opts RenderOptions) {
	for y := bucket.SampleBounds.MinY; y < bucket.SampleBounds.MaxY; y++ {
		select {
		case <-ctx.Done():
			return
		default:
		}
		for x := bucket.SampleBounds.MinX; x < bucket.SampleBounds.MaxX; x++ {
			for _, s := range samp.SamplesPerPixel(x, y, opts.SamplesPerPixel) {
				// The sampler's film position is in pixel coordinates;
				// the camera wants it normalized to [0,1]^2, with v
				// flipped so film row 0 lands at the top of the image.
				ndc := [2]float64{
					s.PFilm[0] / float64(f.Width),
					1 - s.PFilm[1]/float64(f.Height),
				}
				ray := cam.GenerateRay(camera.Sample{PFilm: ndc, PLens: s.PLens})
				result := integrator.LiSampled(scene, ray, opts.MaxDepth, integrator.PathSample{
					U2Dbsdf:  s.U2Dbsdf,
					U1Dlight: s.U1Dlight,
					U2Dlight: s.U2Dlight,
					U1Drr:    s.U1Drr,
				}, samp)
				bucket.AddSample(SampleResult{
					PFilm:    s.PFilm,
					Radiance: clampFinite(result.L),
					Normal:   result.Normal,
					Albedo:   result.Albedo,
				})
			}
		}
	}
}

// clampFinite discards non-finite or negative radiance per the
// error-handling policy: a bad sample contributes zero rather than
// contaminating the pixel it lands in.
func clampFinite(c r3.Vec) r3.Vec {
	if c.IsNaN() || c.IsInf() || c.X < 0 || c.Y < 0 || c.Z < 0 {
		logging.Log.Warn("discarded non-finite or negative sample radiance",
			zap.Float64("x", c.X), zap.Float64("y", c.Y), zap.Float64("z", c.Z))
		return r3.Vec{}
	}
	return c
}
