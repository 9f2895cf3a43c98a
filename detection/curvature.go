package detection

import (
	"github.com/montanaflynn/stats"

	pc "github.com/scanforge/scandetect/pointcloud"
	"github.com/scanforge/scandetect/spatialmath"
)

// Curvature thresholds: a uniformly rounded surface bends noticeably at every
// step (high mean) and bends by about the same amount everywhere (low
// variance). This is a coarse corroborating signal for spheres, not a primary
// classifier, hence the fixed confidence.
const (
	curvatureMinPoints    = 20
	curvatureMeanFloor    = 0.1
	curvatureVarianceCap  = 0.05
	curvatureConfidence   = 0.7
	degenerateSegmentNorm = 1e-12
)

// analyzeCurvature estimates discrete curvature along the cluster's point
// sequence: for each interior point, one minus the dot product of the unit
// directions into and out of it. The sequence is the cluster's insertion
// order, which is the deterministic mesh-buffer order after extraction and
// stride sampling.
func analyzeCurvature(cluster *pc.PointCloud) (Detection, bool) {
	points := cluster.Points()
	if len(points) < curvatureMinPoints {
		return Detection{}, false
	}
	curvatures := make([]float64, 0, len(points)-2)
	for i := 1; i < len(points)-1; i++ {
		in := points[i].Sub(points[i-1])
		out := points[i+1].Sub(points[i])
		inNorm, outNorm := in.Norm(), out.Norm()
		if inNorm < degenerateSegmentNorm || outNorm < degenerateSegmentNorm {
			continue
		}
		curvatures = append(curvatures, 1-in.Mul(1/inNorm).Dot(out.Mul(1/outNorm)))
	}
	if len(curvatures) == 0 {
		return Detection{}, false
	}

	mean, err := stats.Mean(curvatures)
	if err != nil {
		return Detection{}, false
	}
	variance, err := stats.PopulationVariance(curvatures)
	if err != nil {
		return Detection{}, false
	}
	if mean <= curvatureMeanFloor || variance >= curvatureVarianceCap {
		return Detection{}, false
	}

	bounds := spatialmath.NewBoundingBoxFromPoints(points)
	return Detection{
		Kind:        ShapeSphere,
		Center:      bounds.Center,
		Rotation:    spatialmath.NewEulerAngles(),
		HalfExtents: bounds.HalfExtents,
		Confidence:  curvatureConfidence,
		Algorithm:   AlgorithmCurvature,
		Bounds:      bounds,
		Points:      points,
	}, true
}
