// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

// Package film implements the reconstruction-filtered pixel estimator
// the integrator's radiance samples are deposited into, tiled into
// buckets so a fixed worker pool can render an image in parallel with
// the only shared mutable state being the film itself.
package film

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/HugoSmits86/nativewebp"
	"github.com/scottlawson/pathtracer/internal/logging"
	"github.com/scottlawson/pathtracer/r3"
)

const weightEpsilon = 1e-8

// Pixel accumulates the splatted contributions of every sample whose
// filter support overlaps it. normal and albedo are AOVs: per the
// recorded policy they are averaged by sum_weight rather than
// overwritten by the last sample that touched the pixel.
type Pixel struct {
	SumRadiance r3.Vec
	SumWeight   float64
	SumNormal   r3.Vec
	SumAlbedo   r3.Vec
}

// Color returns the pixel's resolved linear radiance, normal, and
// albedo, or the zero value of each when SumWeight is negligible.
func (p Pixel) Color() (radiance, normal, albedo r3.Vec) {
	if p.SumWeight < weightEpsilon {
		return r3.Vec{}, r3.Vec{}, r3.Vec{}
	}
	inv := 1 / p.SumWeight
	return p.SumRadiance.Muls(inv), p.SumNormal.Muls(inv), p.SumAlbedo.Muls(inv)
}

// SampleResult is one integrator evaluation ready to be splatted:
// a film-space position, the estimated radiance, and the AOVs
// captured at the primary hit.
type SampleResult struct {
	PFilm    [2]float64
	Radiance r3.Vec
	Normal   r3.Vec
	Albedo   r3.Vec
}

// Rect is an inclusive-exclusive integer pixel rectangle, [Min, Max).
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

func (r Rect) dx() int { return r.MaxX - r.MinX }
func (r Rect) dy() int { return r.MaxY - r.MinY }

func (r Rect) clip(bounds Rect) Rect {
	if r.MinX < bounds.MinX {
		r.MinX = bounds.MinX
	}
	if r.MinY < bounds.MinY {
		r.MinY = bounds.MinY
	}
	if r.MaxX > bounds.MaxX {
		r.MaxX = bounds.MaxX
	}
	if r.MaxY > bounds.MaxY {
		r.MaxY = bounds.MaxY
	}
	return r
}

// Bucket is one unit of parallel work: a tile of pixels that produce
// samples (SampleBounds) and the larger, filter-radius-expanded tile
// of pixels those samples may splat into (PixelBounds).
type Bucket struct {
	Index        int
	SampleBounds Rect
	PixelBounds  Rect

	pixels  []Pixel // local to PixelBounds, row-major
	results []SampleResult
}

func (b *Bucket) localIndex(x, y int) int {
	return (y-b.PixelBounds.MinY)*b.PixelBounds.dx() + (x - b.PixelBounds.MinX)
}

// AddSample appends a SampleResult to the bucket's transient list. It
// does not touch the pixel array; call WriteBucketPixels to splat the
// accumulated results once the bucket's samples are all in hand.
func (b *Bucket) AddSample(s SampleResult) {
	b.results = append(b.results, s)
}

// Film is the top-level image accumulator: a grid of Pixels, the
// ordered Buckets tiling it, and the filter used to splat samples.
type Film struct {
	Width, Height int
	Filter        Filter

	mu         sync.Mutex
	pixels     []Pixel // row-major, Width*Height
	buckets    []Bucket
	nextBucket int
}

// NewFilm builds a Film of the given size, tiled into bucketSize x
// bucketSize buckets (the final row/column may be smaller), using
// filter for splatting.
func NewFilm(width, height, bucketSize int, filter Filter) (*Film, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("film: size must be positive, got %dx%d", width, height)
	}
	if bucketSize <= 0 {
		return nil, fmt.Errorf("film: bucketSize must be positive, got %d", bucketSize)
	}
	f := &Film{
		Width:  width,
		Height: height,
		Filter: filter,
		pixels: make([]Pixel, width*height),
	}
	bounds := Rect{MaxX: width, MaxY: height}
	r := int(math.Ceil(filter.Radius))
	for y0 := 0; y0 < height; y0 += bucketSize {
		for x0 := 0; x0 < width; x0 += bucketSize {
			sample := Rect{MinX: x0, MinY: y0, MaxX: x0 + bucketSize, MaxY: y0 + bucketSize}.clip(bounds)
			pixelBounds := Rect{
				MinX: sample.MinX - r, MinY: sample.MinY - r,
				MaxX: sample.MaxX + r, MaxY: sample.MaxY + r,
			}.clip(bounds)
			f.buckets = append(f.buckets, Bucket{
				Index:        len(f.buckets),
				SampleBounds: sample,
				PixelBounds:  pixelBounds,
				pixels:       make([]Pixel, pixelBounds.dx()*pixelBounds.dy()),
			})
		}
	}
	return f, nil
}

// NextBucket returns the next unclaimed bucket in iteration order, or
// ok=false once every bucket has been handed out. Safe for concurrent
// callers; the film-level mutex serializes the handout.
func (f *Film) NextBucket() (*Bucket, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.nextBucket >= len(f.buckets) {
		return nil, false
	}
	b := &f.buckets[f.nextBucket]
	f.nextBucket++
	logging.Log.Debug("bucket handed out",
		zap.Int("bucket", b.Index), zap.Int("remaining", len(f.buckets)-f.nextBucket))
	return b, true
}

// WriteBucketPixels splats every SampleResult the bucket has
// accumulated into the bucket's own local pixel array. It reads only
// the filter table and touches no film-global state, so many buckets
// may run this step concurrently.
func (f *Film) WriteBucketPixels(b *Bucket) {
	radius := f.Filter.Radius
	for _, s := range b.results {
		x0 := int(math.Floor(s.PFilm[0] - radius))
		x1 := int(math.Floor(s.PFilm[0] + radius))
		y0 := int(math.Floor(s.PFilm[1] - radius))
		y1 := int(math.Floor(s.PFilm[1] + radius))
		box := Rect{MinX: x0, MinY: y0, MaxX: x1 + 1, MaxY: y1 + 1}.clip(b.PixelBounds)
		for y := box.MinY; y < box.MaxY; y++ {
			for x := box.MinX; x < box.MaxX; x++ {
				w := f.Filter.Weight(float64(x)-s.PFilm[0], float64(y)-s.PFilm[1])
				if w <= 0 {
					continue
				}
				idx := b.localIndex(x, y)
				p := &b.pixels[idx]
				p.SumRadiance = p.SumRadiance.Add(s.Radiance.Muls(w))
				p.SumNormal = p.SumNormal.Add(s.Normal.Muls(w))
				p.SumAlbedo = p.SumAlbedo.Add(s.Albedo.Muls(w))
				p.SumWeight += w
			}
		}
	}
	logging.Log.Debug("bucket samples splatted",
		zap.Int("bucket", b.Index), zap.Int("samples", len(b.results)))
	b.results = b.results[:0]
}

// MergeBucketPixels adds the bucket's local pixel array into the
// film's global one. Adjacent buckets' PixelBounds overlap by the
// filter radius, so this step is serialized by the film mutex.
func (f *Film) MergeBucketPixels(b *Bucket) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for y := b.PixelBounds.MinY; y < b.PixelBounds.MaxY; y++ {
		for x := b.PixelBounds.MinX; x < b.PixelBounds.MaxX; x++ {
			local := b.pixels[b.localIndex(x, y)]
			if local.SumWeight == 0 {
				continue
			}
			global := &f.pixels[y*f.Width+x]
			global.SumRadiance = global.SumRadiance.Add(local.SumRadiance)
			global.SumNormal = global.SumNormal.Add(local.SumNormal)
			global.SumAlbedo = global.SumAlbedo.Add(local.SumAlbedo)
			global.SumWeight += local.SumWeight
		}
	}
	logging.Log.Debug("bucket merged", zap.Int("bucket", b.Index))
}

// Image renders the film's current pixel array to an 8-bit sRGB
// image.RGBA, converting each pixel's resolved linear radiance with
// the standard gamma-encoding curve.
func (f *Film) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			radiance, _, _ := f.pixels[y*f.Width+x].Color()
			img.SetRGBA(x, y, toSRGB(radiance))
		}
	}
	return img
}

// linearToSRGB applies the piecewise sRGB transfer function to a
// single linear channel clamped to [0, 1].
func linearToSRGB(c float64) float64 {
	if c <= 0 {
		return 0
	}
	if c >= 1 {
		return 1
	}
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}

func toSRGB(linear r3.Vec) color.RGBA {
	return color.RGBA{
		R: uint8(math.Round(255 * linearToSRGB(linear.X))),
		G: uint8(math.Round(255 * linearToSRGB(linear.Y))),
		B: uint8(math.Round(255 * linearToSRGB(linear.Z))),
		A: 255,
	}
}

// WriteToFile encodes the film's current image as an 8-bit sRGB PNG.
func (f *Film) WriteToFile(w io.Writer) error {
	return (&png.Encoder{CompressionLevel: png.NoCompression}).Encode(w, f.Image())
}

// WriteWebP encodes the film's current image as a WebP file, an
// additional export path alongside PNG.
func (f *Film) WriteWebP(w io.Writer) error {
	return nativewebp.Encode(w, f.Image(), nil)
}

// Buckets exposes the film's ordered bucket list, primarily for tests
// and for drivers that want to report progress against a known total.
func (f *Film) Buckets() []Bucket {
	return f.buckets
}
