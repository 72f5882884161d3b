// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

// Package accel builds and queries a bounding volume hierarchy over a
// scene's shapes.
package accel

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/scottlawson/pathtracer/core/shape"
	"github.com/scottlawson/pathtracer/internal/logging"
	"github.com/scottlawson/pathtracer/r3"
)

// Accelerator answers nearest-hit and any-hit ray queries against a
// collection of shapes without the caller needing to know how they are
// spatially organized.
type Accelerator interface {
	// Nearest finds the closest Intersect hit along r within (tMin, tMax],
	// and also returns which Shape was hit.
	Nearest(r shape.Ray, tMin, tMax float64) (shape.Interaction, shape.Shape, bool)
	// AnyHit reports whether anything blocks r within (tMin, tMax], without
	// necessarily finding the closest hit. Used for shadow rays.
	AnyHit(r shape.Ray, tMin, tMax float64) bool
}

// leafGroup is a linear-scan leaf node, used once a BVH split would leave
// too few shapes per side to be worth subdividing further.
type leafGroup struct {
	shapes []shape.Shape
	bounds shape.AABB
}

func (g *leafGroup) nearest(r shape.Ray, tMin, tMax float64) (shape.Interaction, shape.Shape, bool) {
	hitAnything := false
	var best shape.Interaction
	var bestShape shape.Shape
	closest := tMax
	for _, s := range g.shapes {
		if hit, ok := s.Intersect(r, tMin, closest); ok {
			hitAnything = true
			closest = hit.T
			best = hit
			bestShape = s
		}
	}
	return best, bestShape, hitAnything
}

func (g *leafGroup) anyHit(r shape.Ray, tMin, tMax float64) bool {
	for _, s := range g.shapes {
		if _, ok := s.Intersect(r, tMin, tMax); ok {
			return true
		}
	}
	return false
}

// node is either an interior split (left/right both non-nil, leaf nil)
// or a leaf (leaf non-nil, left/right nil).
type node struct {
	left, right *node
	leaf        *leafGroup
	bounds      shape.AABB
}

// BVH is a bounding volume hierarchy built with the binned Surface Area
// Heuristic. It implements Accelerator.
type BVH struct {
	root *node
}

var _ Accelerator = (*BVH)(nil)

const (
	maxDepth         = 32
	minShapesPerLeaf = 4
	numBins          = 16
)

// Build constructs a BVH over shapes using binned SAH splitting,
// recursing into both children concurrently once the problem is large
// enough to make that worthwhile.
func Build(shapes []shape.Shape) (*BVH, error) {
	if len(shapes) == 0 {
		return nil, fmt.Errorf("accel: cannot build a BVH over zero shapes")
	}
	for i, s := range shapes {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("accel: shape at index %d is invalid: %w", i, err)
		}
	}
	return &BVH{root: build(shapes, 0)}, nil
}

func bounds(shapes []shape.Shape) shape.AABB {
	bb := shapes[0].AABB()
	for _, s := range shapes[1:] {
		bb = bb.Union(s.AABB())
	}
	return bb
}

func build(shapes []shape.Shape, depth int) *node {
	bb := bounds(shapes)

	if depth >= maxDepth || len(shapes) <= minShapesPerLeaf {
		return &node{leaf: &leafGroup{shapes: shapes, bounds: bb}, bounds: bb}
	}

	axis := bb.LongestAxis()

	type shapeInfo struct {
		s        shape.Shape
		bb       shape.AABB
		centroid float64
	}
	infos := make([]shapeInfo, len(shapes))
	for i, s := range shapes {
		b := s.AABB()
		infos[i] = shapeInfo{s: s, bb: b, centroid: axisGet(b.Center(), axis)}
	}

	lo, hi := axisGet(bb.Min, axis), axisGet(bb.Max, axis)
	if hi-lo < 1e-12 {
		logging.Log.Warn("bvh: degenerate bounds along longest axis, falling back to a leaf",
			zap.Int("depth", depth), zap.Int("shapes", len(shapes)), zap.Int("axis", axis))
		return &node{leaf: &leafGroup{shapes: shapes, bounds: bb}, bounds: bb}
	}

	binIndex := func(centroid float64) int {
		idx := int(numBins * (centroid - lo) / (hi - lo))
		if idx < 0 {
			idx = 0
		}
		if idx >= numBins {
			idx = numBins - 1
		}
		return idx
	}

	type bin struct {
		bb    shape.AABB
		count int
		set   bool
	}
	bins := make([]bin, numBins)
	for _, info := range infos {
		idx := binIndex(info.centroid)
		if !bins[idx].set {
			bins[idx].bb = info.bb
			bins[idx].set = true
		} else {
			bins[idx].bb = bins[idx].bb.Union(info.bb)
		}
		bins[idx].count++
	}

	leftCounts := make([]int, numBins)
	rightCounts := make([]int, numBins)
	leftBounds := make([]shape.AABB, numBins)
	rightBounds := make([]shape.AABB, numBins)

	count := 0
	var acc shape.AABB
	accSet := false
	for i := 0; i < numBins; i++ {
		if bins[i].set {
			if !accSet {
				acc = bins[i].bb
				accSet = true
			} else {
				acc = acc.Union(bins[i].bb)
			}
			count += bins[i].count
		}
		leftCounts[i] = count
		leftBounds[i] = acc
	}

	count = 0
	accSet = false
	for i := numBins - 1; i >= 0; i-- {
		if bins[i].set {
			if !accSet {
				acc = bins[i].bb
				accSet = true
			} else {
				acc = acc.Union(bins[i].bb)
			}
			count += bins[i].count
		}
		rightCounts[i] = count
		rightBounds[i] = acc
	}

	totalSA := bb.SurfaceArea()
	bestCost := math.MaxFloat64
	bestSplit := -1
	for i := 0; i < numBins-1; i++ {
		if leftCounts[i] == 0 || rightCounts[i+1] == 0 {
			continue
		}
		pLeft := leftBounds[i].SurfaceArea() / totalSA
		pRight := rightBounds[i+1].SurfaceArea() / totalSA
		cost := 1 + float64(leftCounts[i])*pLeft + float64(rightCounts[i+1])*pRight
		if cost < bestCost {
			bestCost = cost
			bestSplit = i
		}
	}

	var leftShapes, rightShapes []shape.Shape
	if bestSplit == -1 {
		sort.Slice(infos, func(i, j int) bool { return infos[i].centroid < infos[j].centroid })
		mid := len(infos) / 2
		for i := 0; i < mid; i++ {
			leftShapes = append(leftShapes, infos[i].s)
		}
		for i := mid; i < len(infos); i++ {
			rightShapes = append(rightShapes, infos[i].s)
		}
	} else {
		for _, info := range infos {
			if binIndex(info.centroid) <= bestSplit {
				leftShapes = append(leftShapes, info.s)
			} else {
				rightShapes = append(rightShapes, info.s)
			}
		}
		if len(leftShapes) == 0 || len(rightShapes) == 0 {
			sort.Slice(infos, func(i, j int) bool { return infos[i].centroid < infos[j].centroid })
			mid := len(infos) / 2
			leftShapes, rightShapes = nil, nil
			for i := 0; i < mid; i++ {
				leftShapes = append(leftShapes, infos[i].s)
			}
			for i := mid; i < len(infos); i++ {
				rightShapes = append(rightShapes, infos[i].s)
			}
		}
	}

	var left, right *node
	if len(shapes) > 512 {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			left = build(leftShapes, depth+1)
		}()
		go func() {
			defer wg.Done()
			right = build(rightShapes, depth+1)
		}()
		wg.Wait()
	} else {
		left = build(leftShapes, depth+1)
		right = build(rightShapes, depth+1)
	}

	return &node{left: left, right: right, bounds: bb}
}

func axisGet(p r3.Point, axis int) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

func (b *BVH) Nearest(r shape.Ray, tMin, tMax float64) (shape.Interaction, shape.Shape, bool) {
	return nearest(b.root, r, tMin, tMax)
}

func nearest(n *node, r shape.Ray, tMin, tMax float64) (shape.Interaction, shape.Shape, bool) {
	if n == nil || !n.bounds.Hit(r, tMin, tMax) {
		return shape.Interaction{}, nil, false
	}
	if n.leaf != nil {
		return n.leaf.nearest(r, tMin, tMax)
	}

	leftHit, leftShape, leftOK := nearest(n.left, r, tMin, tMax)
	if leftOK {
		tMax = math.Min(tMax, leftHit.T)
	}
	rightHit, rightShape, rightOK := nearest(n.right, r, tMin, tMax)

	switch {
	case leftOK && rightOK:
		if leftHit.T < rightHit.T {
			return leftHit, leftShape, true
		}
		return rightHit, rightShape, true
	case leftOK:
		return leftHit, leftShape, true
	case rightOK:
		return rightHit, rightShape, true
	default:
		return shape.Interaction{}, nil, false
	}
}

func (b *BVH) AnyHit(r shape.Ray, tMin, tMax float64) bool {
	return anyHit(b.root, r, tMin, tMax)
}

func anyHit(n *node, r shape.Ray, tMin, tMax float64) bool {
	if n == nil || !n.bounds.Hit(r, tMin, tMax) {
		return false
	}
	if n.leaf != nil {
		return n.leaf.anyHit(r, tMin, tMax)
	}
	return anyHit(n.left, r, tMin, tMax) || anyHit(n.right, r, tMin, tMax)
}
