package detection

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/stat"

	pc "github.com/scanforge/scandetect/pointcloud"
	"github.com/scanforge/scandetect/spatialmath"
)

// Feature heuristic constants. The cylinder test looks for one dominant axis
// with the two remaining extents comparable; flat regions are those squashed
// to a sliver along one axis.
const (
	cylinderDominantRatio   = 1.5
	cylinderComparableRatio = 1.2
	cylinderMatchScore      = 0.8
	cylinderMissScore       = 0.3
	flatExtentRatio         = 0.05
	flatScore               = 0.75

	// featureScoreFloor gates archetype selection. It is fixed rather than
	// taken from the caller's minimum confidence: the caller's floor is
	// applied at merge time, and using it here would let the floor change
	// which kind a cluster reads as instead of just whether it survives,
	// breaking the monotonic-filter guarantee.
	featureScoreFloor = 0.6
)

// classifyFeatures scores a cluster against the primitive archetypes using
// bounding-volume heuristics. Shapes are evaluated in a fixed order (flat,
// sphere, cylinder, cube) and the first score clearing the floor wins, so a
// cluster contributes at most one feature detection. Without the ordering a
// spherical cluster would always also read as a cube: its extent ratios are
// all 1.
func classifyFeatures(cluster *pc.PointCloud) (Detection, bool) {
	bounds := spatialmath.NewBoundingBoxFromPoints(cluster.Points())

	type scored struct {
		kind  ShapeKind
		score float64
	}
	candidates := []scored{
		{ShapeFlat, flatnessScore(bounds)},
		{ShapeSphere, sphereScore(cluster.Points(), bounds.Center)},
		{ShapeCylinder, cylinderScore(bounds)},
		{ShapeCube, cubeScore(bounds)},
	}
	for _, c := range candidates {
		if c.score < featureScoreFloor {
			continue
		}
		return Detection{
			Kind:        c.kind,
			Center:      bounds.Center,
			Rotation:    spatialmath.NewEulerAngles(),
			HalfExtents: bounds.HalfExtents,
			Confidence:  c.score,
			Algorithm:   AlgorithmFeatures,
			Bounds:      bounds,
			Points:      cluster.Points(),
		}, true
	}
	return Detection{}, false
}

// sphereScore measures radius dispersion: points of a sphere all sit at the
// same distance from its center, so a low stddev/mean ratio is sphere-like.
func sphereScore(points []r3.Vector, center r3.Vector) float64 {
	if len(points) < 2 {
		return 0
	}
	dists := make([]float64, len(points))
	for i, p := range points {
		dists[i] = p.Sub(center).Norm()
	}
	mean := stat.Mean(dists, nil)
	if mean <= 0 {
		return 0
	}
	sd := stat.StdDev(dists, nil)
	return clampScore(1 - 2*(sd/mean))
}

// cylinderScore checks for one dominant axis with the other two comparable.
func cylinderScore(bounds spatialmath.BoundingBox) float64 {
	maxRatio, minRatio := extentRatioRange(bounds.HalfExtents)
	if maxRatio > cylinderDominantRatio && minRatio < cylinderComparableRatio {
		return cylinderMatchScore
	}
	return cylinderMissScore
}

// cubeScore averages the three pairwise min/max extent ratios; a cube's
// ratios are all near 1.
func cubeScore(bounds spatialmath.BoundingBox) float64 {
	he := bounds.HalfExtents
	pairs := [3][2]float64{{he.X, he.Y}, {he.X, he.Z}, {he.Y, he.Z}}
	sum := 0.0
	for _, pair := range pairs {
		lo, hi := math.Min(pair[0], pair[1]), math.Max(pair[0], pair[1])
		if hi <= 0 {
			return 0
		}
		sum += lo / hi
	}
	return clampScore(sum / 3)
}

// flatnessScore flags clusters squashed to a sliver along one axis.
func flatnessScore(bounds spatialmath.BoundingBox) float64 {
	maxExtent := bounds.MaxHalfExtent()
	if maxExtent <= 0 {
		return 0
	}
	if bounds.MinHalfExtent()/maxExtent < flatExtentRatio {
		return flatScore
	}
	return 0
}

// extentRatioRange returns the largest and smallest of the three pairwise
// max/min extent ratios (each >= 1).
func extentRatioRange(he r3.Vector) (float64, float64) {
	pairs := [3][2]float64{{he.X, he.Y}, {he.X, he.Z}, {he.Y, he.Z}}
	maxRatio, minRatio := 0.0, math.MaxFloat64
	for _, pair := range pairs {
		lo, hi := math.Min(pair[0], pair[1]), math.Max(pair[0], pair[1])
		ratio := math.MaxFloat64
		if lo > 0 {
			ratio = hi / lo
		}
		maxRatio = math.Max(maxRatio, ratio)
		minRatio = math.Min(minRatio, ratio)
	}
	return maxRatio, minRatio
}

func clampScore(s float64) float64 {
	return math.Max(0, math.Min(1, s))
}
