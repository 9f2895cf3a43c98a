package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// BoundingBox is an axis-aligned box defined by a center point and per-axis
// half extents.
type BoundingBox struct {
	Center      r3.Vector `json:"center"`
	HalfExtents r3.Vector `json:"half_extents"`
}

// NewBoundingBoxFromPoints computes the axis-aligned bounding box of a point
// set. An empty point set yields a degenerate box at the origin.
func NewBoundingBoxFromPoints(pts []r3.Vector) BoundingBox {
	if len(pts) == 0 {
		return BoundingBox{}
	}
	minPt := r3.Vector{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64}
	maxPt := minPt.Mul(-1)
	for _, p := range pts {
		minPt.X = math.Min(minPt.X, p.X)
		minPt.Y = math.Min(minPt.Y, p.Y)
		minPt.Z = math.Min(minPt.Z, p.Z)
		maxPt.X = math.Max(maxPt.X, p.X)
		maxPt.Y = math.Max(maxPt.Y, p.Y)
		maxPt.Z = math.Max(maxPt.Z, p.Z)
	}
	return BoundingBox{
		Center:      minPt.Add(maxPt).Mul(0.5),
		HalfExtents: maxPt.Sub(minPt).Mul(0.5),
	}
}

// Dims returns the full per-axis extents of the box.
func (b BoundingBox) Dims() r3.Vector {
	return b.HalfExtents.Mul(2)
}

// MaxHalfExtent returns the largest of the three half extents.
func (b BoundingBox) MaxHalfExtent() float64 {
	return math.Max(b.HalfExtents.X, math.Max(b.HalfExtents.Y, b.HalfExtents.Z))
}

// MinHalfExtent returns the smallest of the three half extents.
func (b BoundingBox) MinHalfExtent() float64 {
	return math.Min(b.HalfExtents.X, math.Min(b.HalfExtents.Y, b.HalfExtents.Z))
}

// String returns a human readable string that represents the box.
func (b BoundingBox) String() string {
	return fmt.Sprintf("Position: X:%.1f, Y:%.1f, Z:%.1f | Dims: X:%.1f, Y:%.1f, Z:%.1f",
		b.Center.X, b.Center.Y, b.Center.Z, 2*b.HalfExtents.X, 2*b.HalfExtents.Y, 2*b.HalfExtents.Z)
}
