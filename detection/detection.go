// Package detection implements primitive shape recognition over scanned
// surface meshes. A detection pass flattens the mesh into a point cloud,
// partitions it into spatially connected clusters, scores every cluster with
// up to three independent strategies (bounding-volume feature heuristics,
// discrete curvature analysis, and iterative-closest-point registration
// against a library of canonical reference shapes), and merges the resulting
// candidates into one ranked, duplicate-free list.
package detection

import (
	"time"

	"github.com/golang/geo/r3"

	"github.com/scanforge/scandetect/spatialmath"
)

// ShapeKind enumerates the primitive archetypes the detector recognizes.
type ShapeKind int

// The closed set of recognizable shapes. ShapeComplex is the catch-all for
// regions that match no primitive; nothing in the core pipeline emits it, but
// consumers may use it to label clusters they classify by other means.
const (
	ShapeSphere ShapeKind = iota
	ShapeCylinder
	ShapeCube
	ShapeCone
	ShapeFlat
	ShapeComplex
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSphere:
		return "sphere"
	case ShapeCylinder:
		return "cylinder"
	case ShapeCube:
		return "cube"
	case ShapeCone:
		return "cone"
	case ShapeFlat:
		return "flat"
	case ShapeComplex:
		return "complex"
	default:
		return "unknown"
	}
}

// Tags identifying which strategy produced a detection.
const (
	AlgorithmFeatures  = "feature-extraction"
	AlgorithmCurvature = "curvature-analysis"
	AlgorithmICP       = "icp"
)

// Detection describes one recognized primitive occurrence within a single
// detection pass. Detections never persist across passes and carry no
// back-reference into the mesh they came from.
type Detection struct {
	// ID is unique within one pass and assigned in cluster order, so two
	// passes over identical input produce identical IDs.
	ID   int
	Kind ShapeKind

	// Center, Rotation and HalfExtents are the estimated pose, derived
	// strictly from the originating cluster's own points.
	Center      r3.Vector
	Rotation    *spatialmath.EulerAngles
	HalfExtents r3.Vector

	// Confidence is in [0,1].
	Confidence float64

	// Algorithm tags the strategy that produced this detection.
	Algorithm string

	Bounds    spatialmath.BoundingBox
	Points    []r3.Vector
	CreatedAt time.Time
}

// Pose returns the detection's pose as a single value.
func (d *Detection) Pose() spatialmath.Pose {
	return spatialmath.NewPose(d.Center, d.Rotation)
}
