package r3

// Point2 is a pair of floats used wherever the renderer needs a 2D
// sample or coordinate alongside the 3D types in this package: texture
// UVs, the unit-square samples handed to BSDF/BxDF/distribution
// sampling routines, and lens-sample offsets. It carries no methods of
// its own; every caller either reads X/Y directly or feeds the pair
// into a function that returns a Vec or a float64.
type Point2 struct {
	X float64
	Y float64
}
