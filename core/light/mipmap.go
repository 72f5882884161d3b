// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package light

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// mipPyramid is a chain of successively half-resolution copies of an
// environment map, used so InfiniteArea.SampleLi can pick a level whose
// texel footprint roughly matches the solid angle being sampled,
// trading resolution for reduced aliasing/variance on low-probability
// directions. InfiniteArea.Le always reads level 0.
type mipPyramid struct {
	levels []envLevel
}

// envLevel stores one mip level's radiance as floating point triples,
// avoiding the 8-bit clamp a plain image.RGBA would impose on HDR
// environment values.
type envLevel struct {
	width, height int
	pix           []float64 // interleaved r,g,b
}

func (l envLevel) at(x, y int) (r, g, b float64) {
	x = clampInt(x, 0, l.width-1)
	y = clampInt(y, 0, l.height-1)
	i := (y*l.width + x) * 3
	return l.pix[i], l.pix[i+1], l.pix[i+2]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// newMipPyramid builds a pyramid from a base level by repeatedly
// downsampling by 2x with golang.org/x/image/draw's bilinear filter
// until the image is 1x1. The filter operates on a 16-bit-per-channel
// NRGBA64 intermediate (clipping to [0,1] radiance) since draw.Image
// only composites through the image/color interfaces; callers needing
// values outside [0,1] should pre-scale and carry the scale factor
// separately (InfiniteArea does this via its Intensity multiplier,
// applied after lookup rather than baked into the pyramid).
func newMipPyramid(width, height int, pix []float64) *mipPyramid {
	base := envLevel{width: width, height: height, pix: pix}
	levels := []envLevel{base}

	cur := base
	for cur.width > 1 || cur.height > 1 {
		nw := maxInt(1, cur.width/2)
		nh := maxInt(1, cur.height/2)
		next := downsample(cur, nw, nh)
		levels = append(levels, next)
		cur = next
	}
	return &mipPyramid{levels: levels}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func downsample(src envLevel, nw, nh int) envLevel {
	srcImg := image.NewNRGBA64(image.Rect(0, 0, src.width, src.height))
	for y := 0; y < src.height; y++ {
		for x := 0; x < src.width; x++ {
			r, g, b := src.at(x, y)
			srcImg.SetNRGBA64(x, y, color.NRGBA64{
				R: toChannel16(r),
				G: toChannel16(g),
				B: toChannel16(b),
				A: 0xffff,
			})
		}
	}

	dstImg := image.NewNRGBA64(image.Rect(0, 0, nw, nh))
	draw.BiLinear.Scale(dstImg, dstImg.Bounds(), srcImg, srcImg.Bounds(), draw.Src, nil)

	out := envLevel{width: nw, height: nh, pix: make([]float64, nw*nh*3)}
	for y := 0; y < nh; y++ {
		for x := 0; x < nw; x++ {
			c := dstImg.NRGBA64At(x, y)
			i := (y*nw + x) * 3
			out.pix[i] = float64(c.R) / 0xffff
			out.pix[i+1] = float64(c.G) / 0xffff
			out.pix[i+2] = float64(c.B) / 0xffff
		}
	}
	return out
}

func toChannel16(v float64) uint16 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint16(v*0xffff + 0.5)
}

// lookup returns the radiance at normalized (u, v) in [0,1]^2 at the
// given level, clamped to the pyramid's depth, using nearest-texel
// sampling within that level.
func (m *mipPyramid) lookup(u, v float64, level int) (r, g, b float64) {
	if level < 0 {
		level = 0
	}
	if level >= len(m.levels) {
		level = len(m.levels) - 1
	}
	l := m.levels[level]
	x := int(u * float64(l.width))
	y := int(v * float64(l.height))
	return l.at(x, y)
}

// levelForFootprint maps a solid-angle footprint (in steradians) onto a
// mip level: larger footprints (more oblique or low-probability
// samples) select a coarser, lower-variance level.
func (m *mipPyramid) levelForFootprint(solidAngle float64) int {
	if solidAngle <= 0 {
		return 0
	}
	// A footprint covering the whole sphere (4*pi sr) should land near
	// the coarsest level; scale logarithmically between levels.
	frac := solidAngle / (4 * math.Pi)
	level := int(math.Log2(1+frac*float64(len(m.levels)-1)) * float64(len(m.levels)-1))
	return clampInt(level, 0, len(m.levels)-1)
}
