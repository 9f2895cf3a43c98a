// Package pointcloud defines the point container the shape detector consumes,
// along with helpers for flattening mesh vertex buffers into it and for
// reading and writing PCD scan files at the subsystem boundary.
package pointcloud

import (
	"math"

	"github.com/golang/geo/r3"
)

// MetaData is bookkeeping about what's stored in a point cloud.
type MetaData struct {
	TotalPoints int

	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
}

// NewMetaData returns metadata with the bounds ready to merge points into.
func NewMetaData() MetaData {
	return MetaData{
		MinX: math.MaxFloat64, MaxX: -math.MaxFloat64,
		MinY: math.MaxFloat64, MaxY: -math.MaxFloat64,
		MinZ: math.MaxFloat64, MaxZ: -math.MaxFloat64,
	}
}

// Merge folds the given point into the bounds.
func (meta *MetaData) Merge(v r3.Vector) {
	meta.TotalPoints++
	if v.X > meta.MaxX {
		meta.MaxX = v.X
	}
	if v.Y > meta.MaxY {
		meta.MaxY = v.Y
	}
	if v.Z > meta.MaxZ {
		meta.MaxZ = v.Z
	}
	if v.X < meta.MinX {
		meta.MinX = v.X
	}
	if v.Y < meta.MinY {
		meta.MinY = v.Y
	}
	if v.Z < meta.MinZ {
		meta.MinZ = v.Z
	}
}

// Center returns the center of the bounding box of the merged points.
func (meta MetaData) Center() r3.Vector {
	if meta.TotalPoints == 0 {
		return r3.Vector{}
	}
	return r3.Vector{
		X: (meta.MinX + meta.MaxX) / 2,
		Y: (meta.MinY + meta.MaxY) / 2,
		Z: (meta.MinZ + meta.MaxZ) / 2,
	}
}

// HalfExtents returns the per-axis half sizes of the bounding box.
func (meta MetaData) HalfExtents() r3.Vector {
	if meta.TotalPoints == 0 {
		return r3.Vector{}
	}
	return r3.Vector{
		X: (meta.MaxX - meta.MinX) / 2,
		Y: (meta.MaxY - meta.MinY) / 2,
		Z: (meta.MaxZ - meta.MinZ) / 2,
	}
}

// PointCloud is an ordered, append-only collection of 3D positions. Order is
// preserved from whatever produced the cloud, which downstream consumers rely
// on for deterministic sampling.
type PointCloud struct {
	points []r3.Vector
	meta   MetaData
}

// New returns an empty PointCloud.
func New() *PointCloud {
	return NewWithPrealloc(0)
}

// NewWithPrealloc returns an empty PointCloud with capacity for size points.
func NewWithPrealloc(size int) *PointCloud {
	return &PointCloud{
		points: make([]r3.Vector, 0, size),
		meta:   NewMetaData(),
	}
}

// Size returns the number of points in the cloud.
func (cloud *PointCloud) Size() int {
	return len(cloud.points)
}

// MetaData returns the bounds bookkeeping for the cloud.
func (cloud *PointCloud) MetaData() MetaData {
	return cloud.meta
}

// Add appends a point to the cloud.
func (cloud *PointCloud) Add(v r3.Vector) {
	cloud.points = append(cloud.points, v)
	cloud.meta.Merge(v)
}

// At returns the i-th point in the cloud.
func (cloud *PointCloud) At(i int) r3.Vector {
	return cloud.points[i]
}

// Points returns the backing point slice. Callers must treat it as read-only.
func (cloud *PointCloud) Points() []r3.Vector {
	return cloud.points
}

// Positions implements Mesh so a cloud can be fed back through detection.
func (cloud *PointCloud) Positions() []r3.Vector {
	return cloud.points
}

// Iterate calls fn for each point in order until fn returns false.
func (cloud *PointCloud) Iterate(fn func(v r3.Vector) bool) {
	for _, v := range cloud.points {
		if !fn(v) {
			return
		}
	}
}

// Centroid returns the mean position of all points in the cloud.
func (cloud *PointCloud) Centroid() r3.Vector {
	if len(cloud.points) == 0 {
		return r3.Vector{}
	}
	var sum r3.Vector
	for _, v := range cloud.points {
		sum = sum.Add(v)
	}
	return sum.Mul(1.0 / float64(len(cloud.points)))
}

// Downsample returns a cloud with at most cap points, taken at a fixed stride
// so the spatial distribution of the input is preserved. The input cloud is
// returned unchanged when it is already within the cap.
func (cloud *PointCloud) Downsample(cap int) *PointCloud {
	if cap <= 0 || len(cloud.points) <= cap {
		return cloud
	}
	stride := (len(cloud.points) + cap - 1) / cap
	out := NewWithPrealloc(cap)
	for i := 0; i < len(cloud.points); i += stride {
		out.Add(cloud.points[i])
	}
	return out
}

// Prune returns the subset of clouds that have at least nMin points.
func Prune(clouds []*PointCloud, nMin int) []*PointCloud {
	pruned := make([]*PointCloud, 0, len(clouds))
	for _, c := range clouds {
		if c.Size() >= nMin {
			pruned = append(pruned, c)
		}
	}
	return pruned
}
