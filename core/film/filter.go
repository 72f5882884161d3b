// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package film

import "math"

// tableSize is the resolution of the precomputed 2D filter table: each
// axis is sampled at tableSize steps across [0, radius].
const tableSize = 16

// FilterMethod selects the reconstruction kernel used when splatting a
// sample into the film, generalizing the teacher's postprocess-only
// ReconFilter into a true per-sample splat filter.
type FilterMethod int

const (
	// FilterNone disables filtering: each sample contributes only to
	// its containing pixel with weight 1, equivalent to Radius 0.
	FilterNone FilterMethod = iota
	FilterGaussian
	FilterMitchell
)

// Filter is a separable 2D reconstruction kernel with a precomputed
// table, built once per Film so splatting never evaluates the kernel
// function directly.
type Filter struct {
	Method FilterMethod
	Radius float64
	table  [tableSize * tableSize]float64
}

// NewFilter builds the Filter for method with the given radius. A
// FilterNone method forces Radius to 0 regardless of the argument.
func NewFilter(method FilterMethod, radius float64) Filter {
	f := Filter{Method: method, Radius: radius}
	if method == FilterNone {
		f.Radius = 0
		return f
	}
	eval := mitchellNetravali
	if method == FilterGaussian {
		eval = gaussian(1.5, radius)
	}
	for y := 0; y < tableSize; y++ {
		for x := 0; x < tableSize; x++ {
			fx := (float64(x) + 0.5) / tableSize * radius
			fy := (float64(y) + 0.5) / tableSize * radius
			f.table[y*tableSize+x] = eval(fx) * eval(fy)
		}
	}
	return f
}

// Weight returns the filter weight for an offset (dx, dy) in pixels
// from the sample's continuous film position, measured against the
// precomputed table. Offsets beyond Radius are not rejected: they
// read the outermost table entry.
func (f Filter) Weight(dx, dy float64) float64 {
	if f.Method == FilterNone {
		// Radius 0 already restricts the splat box to the sample's own
		// pixel, so every offset that reaches here gets full weight.
		return 1
	}
	ix := tableIndex(dx, f.Radius)
	iy := tableIndex(dy, f.Radius)
	return f.table[iy*tableSize+ix]
}

func tableIndex(x, radius float64) int {
	if radius <= 0 {
		return 0
	}
	i := int(math.Abs(x) / radius * tableSize)
	if i < 0 {
		i = 0
	}
	if i > tableSize-1 {
		i = tableSize - 1
	}
	return i
}

// gaussian returns the spec's windowed Gaussian kernel with the given
// alpha and support radius.
func gaussian(alpha, radius float64) func(float64) float64 {
	edge := math.Exp(-alpha * radius * radius)
	return func(x float64) float64 {
		return math.Max(0, math.Exp(-alpha*x*x)-edge)
	}
}

// mitchellNetravali is the separable cubic kernel with B = C = 1/3,
// matching the teacher's ReconFilter of the same parameters but
// re-expressed here so it can drive per-sample splatting directly. x
// is expected in the kernel's native support [0, 2], i.e. callers
// should configure a Mitchell Filter with Radius = 2.
func mitchellNetravali(x float64) float64 {
	const b = 1.0 / 3.0
	const c = 1.0 / 3.0
	x = math.Abs(x)
	if x >= 2 {
		return 0
	}
	x2 := x * x
	x3 := x2 * x
	if x < 1 {
		return ((12-9*b-6*c)*x3 + (-18+12*b+6*c)*x2 + (6 - 2*b)) / 6.0
	}
	return ((-b-6*c)*x3 + (6*b+30*c)*x2 + (-12*b-48*c)*x + (8*b + 24*c)) / 6.0
}
