// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

// Package texture supplies spatially varying inputs to materials: a
// constant color and an image-backed texture sampled by UV
// coordinate, decoded through the standard image codecs plus the
// additional formats the rest of the corpus favors (TIFF, BMP, TGA).
package texture

import "github.com/scottlawson/pathtracer/r3"

// Texture maps a surface UV coordinate to a color. Materials that
// accept one fall back to a flat color when none is supplied.
type Texture interface {
	At(u, v float64) r3.Vec
}

// Constant is a Texture that ignores (u, v) and always returns the
// same color, used when a material input has no backing image.
type Constant struct {
	Color r3.Vec
}

var _ Texture = Constant{}

// At implements Texture.
func (c Constant) At(u, v float64) r3.Vec { return c.Color }
