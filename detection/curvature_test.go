package detection

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestAnalyzeCurvatureUniformBend(t *testing.T) {
	// 24 points tracing an octagon three times: constant 45 degree bends
	cluster := cloudOf(octagonLoops(2.0, 3))
	det, ok := analyzeCurvature(cluster)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, det.Kind, test.ShouldEqual, ShapeSphere)
	test.That(t, det.Algorithm, test.ShouldEqual, AlgorithmCurvature)
	test.That(t, det.Confidence, test.ShouldEqual, curvatureConfidence)
	test.That(t, det.Center.Norm(), test.ShouldBeLessThan, 1e-9)
}

func TestAnalyzeCurvatureStraightLine(t *testing.T) {
	pts := make([]r3.Vector, 0, 30)
	for i := 0; i < 30; i++ {
		pts = append(pts, r3.Vector{X: float64(i)})
	}
	_, ok := analyzeCurvature(cloudOf(pts))
	test.That(t, ok, test.ShouldBeFalse)
}

func TestAnalyzeCurvatureTooFewPoints(t *testing.T) {
	_, ok := analyzeCurvature(cloudOf(octagonLoops(2.0, 3)[:19]))
	test.That(t, ok, test.ShouldBeFalse)
}

func TestAnalyzeCurvatureUnevenBends(t *testing.T) {
	// zigzag with wildly varying turn angles: mean is high but so is variance
	pts := make([]r3.Vector, 0, 40)
	for i := 0; i < 40; i++ {
		y := 0.0
		switch i % 4 {
		case 1:
			y = 0.2
		case 2:
			y = 3.0
		case 3:
			y = -2.0
		}
		pts = append(pts, r3.Vector{X: float64(i), Y: y})
	}
	_, ok := analyzeCurvature(cloudOf(pts))
	test.That(t, ok, test.ShouldBeFalse)
}

func TestAnalyzeCurvatureDuplicatePoints(t *testing.T) {
	// coincident consecutive points must not produce NaNs or a panic
	pts := octagonLoops(2.0, 3)
	pts = append(pts, pts[len(pts)-1])
	det, ok := analyzeCurvature(cloudOf(pts))
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, det.Confidence, test.ShouldEqual, curvatureConfidence)
}
