// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package texture

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"

	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/scottlawson/pathtracer/r3"
)

// WrapMode selects how out-of-[0,1] UV coordinates are handled.
type WrapMode int

const (
	WrapRepeat WrapMode = iota
	WrapClamp
)

// Interp selects how a sample between texel centers is reconstructed.
type Interp int

const (
	InterpNearest Interp = iota
	InterpBilinear
)

// Image is a Texture backed by a decoded raster image, grounded on the
// teacher's TextureImage: any format registered with the standard
// image.Decode registry is accepted, which via this package's blank
// imports includes PNG, JPEG, GIF, TIFF, BMP, and TGA.
type Image struct {
	img    image.Image
	Interp Interp
	Wrap   WrapMode
}

var _ Texture = Image{}

// Decode reads and decodes an image from r using the registered
// image.Decode codecs.
func Decode(r io.Reader, interp Interp, wrap WrapMode) (Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return Image{}, fmt.Errorf("texture: decode: %w", err)
	}
	return Image{img: img, Interp: interp, Wrap: wrap}, nil
}

// At implements Texture: samples the image at normalized UV
// coordinates, applying the configured wrap mode and interpolation.
// A nil backing image (the zero value) returns magenta, matching the
// teacher's "missing texture" sentinel.
func (t Image) At(u, v float64) r3.Vec {
	if t.img == nil {
		return r3.Vec{X: 1, Y: 0, Z: 1}
	}
	u, v = t.wrap(u), t.wrap(v)
	v = 1 - v // image row 0 is the top of the texture, v=0 is conventionally the bottom

	bounds := t.img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	x := u * float64(width-1)
	y := v * float64(height-1)

	var c color.Color
	if t.Interp == InterpBilinear {
		c = bilinear(t.img, x, y)
	} else {
		c = t.img.At(bounds.Min.X+int(math.Round(x)), bounds.Min.Y+int(math.Round(y)))
	}
	r, g, b, _ := c.RGBA()
	return r3.Vec{X: float64(r) / 65535, Y: float64(g) / 65535, Z: float64(b) / 65535}
}

func (t Image) wrap(x float64) float64 {
	switch t.Wrap {
	case WrapClamp:
		return math.Min(math.Max(x, 0), 1)
	default:
		return x - math.Floor(x)
	}
}

func bilinear(img image.Image, x, y float64) color.Color {
	b := img.Bounds()
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	c00 := img.At(b.Min.X+clampInt(x0, 0, b.Dx()-1), b.Min.Y+clampInt(y0, 0, b.Dy()-1))
	c10 := img.At(b.Min.X+clampInt(x0+1, 0, b.Dx()-1), b.Min.Y+clampInt(y0, 0, b.Dy()-1))
	c01 := img.At(b.Min.X+clampInt(x0, 0, b.Dx()-1), b.Min.Y+clampInt(y0+1, 0, b.Dy()-1))
	c11 := img.At(b.Min.X+clampInt(x0+1, 0, b.Dx()-1), b.Min.Y+clampInt(y0+1, 0, b.Dy()-1))

	r := lerpChannel(c00, c10, c01, c11, fx, fy, 0)
	g := lerpChannel(c00, c10, c01, c11, fx, fy, 1)
	bch := lerpChannel(c00, c10, c01, c11, fx, fy, 2)
	return color.NRGBA64{R: uint16(r), G: uint16(g), B: uint16(bch), A: 65535}
}

func lerpChannel(c00, c10, c01, c11 color.Color, fx, fy float64, channel int) float64 {
	pick := func(c color.Color) float64 {
		r, g, b, _ := c.RGBA()
		switch channel {
		case 0:
			return float64(r)
		case 1:
			return float64(g)
		default:
			return float64(b)
		}
	}
	top := pick(c00)*(1-fx) + pick(c10)*fx
	bottom := pick(c01)*(1-fx) + pick(c11)*fx
	return top*(1-fy) + bottom*fy
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
