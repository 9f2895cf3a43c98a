package detection

import (
	"context"
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	pc "github.com/scanforge/scandetect/pointcloud"
	"github.com/scanforge/scandetect/spatialmath"
)

const (
	icpMaxIterations  = 50
	icpTolerance      = 0.001
	icpWorkingSetCap  = 500
	icpMinClusterSize = 50
	icpMaxResidual    = 1.0
)

// icpResult reports one registration attempt of a cluster against one
// reference shape.
type icpResult struct {
	// pose is the recovered placement of the canonical shape in mesh space.
	pose       spatialmath.Pose
	residual   float64
	iterations int
	// converged is true only when iteration stopped because the alignment
	// error settled within tolerance, never when the iteration budget ran out.
	converged bool
}

// registerICP iteratively aligns the cluster's points against one canonical
// reference sample. Each iteration pairs every working point with its nearest
// reference point by brute-force search, derives a rigid transform from the
// correspondences, applies it, and measures the mean nearest-neighbor
// distance; iteration stops early once that error settles.
//
// The default transform step recovers translation only, from the centroid
// delta of the correspondences. That mirrors the original system and is a
// deliberate simplification: rotated shapes register with a higher residual
// than an exact solve would give. The full Kabsch solve behind fullRigid
// recovers rotation as well.
func registerICP(ctx context.Context, cluster *pc.PointCloud, ref referenceShape, fullRigid bool) (icpResult, error) {
	bounds := spatialmath.NewBoundingBoxFromPoints(cluster.Points())

	// Reference samples are unit scale; grow them to the cluster's size so
	// registration recovers placement, not scale.
	scale := bounds.MaxHalfExtent()
	if scale <= 0 {
		return icpResult{}, nil
	}
	target := scaleVectors(downsampleVectors(ref.points, icpWorkingSetCap), scale)
	working := downsampleVectors(cluster.Points(), icpWorkingSetCap)

	// Accumulated transform mapping original cluster points into the
	// reference frame: w = rotTotal*p + transTotal.
	rotTotal := identity3()
	var transTotal r3.Vector

	res := icpResult{}
	prevErr := math.MaxFloat64
	for iter := 0; iter < icpMaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return icpResult{}, err
		}
		res.iterations = iter + 1

		correspondences := make([]r3.Vector, len(working))
		for i, w := range working {
			correspondences[i] = nearestVector(target, w)
		}

		var rot *mat.Dense
		var trans r3.Vector
		if fullRigid {
			rot, trans = kabsch(working, correspondences)
		} else {
			trans = centroid(correspondences).Sub(centroid(working))
		}
		for i, w := range working {
			if rot != nil {
				w = matVec(rot, w)
			}
			working[i] = w.Add(trans)
		}
		if rot != nil {
			updated := mat.NewDense(3, 3, nil)
			updated.Mul(rot, rotTotal)
			rotTotal = updated
			transTotal = matVec(rot, transTotal)
		}
		transTotal = transTotal.Add(trans)

		alignErr := 0.0
		for _, w := range working {
			alignErr += w.Distance(nearestVector(target, w))
		}
		alignErr /= float64(len(working))
		res.residual = alignErr

		if math.Abs(prevErr-alignErr) < icpTolerance {
			res.converged = true
			break
		}
		prevErr = alignErr
	}

	// Invert the accumulated transform to place the canonical shape in mesh
	// space: the reference origin maps to -rotTotal^T * transTotal.
	inv := mat.NewDense(3, 3, nil)
	inv.CloneFrom(rotTotal.T())
	res.pose = spatialmath.NewPose(
		matVec(inv, transTotal).Mul(-1),
		spatialmath.RotationMatrixToEulerAngles(inv),
	)
	return res, nil
}

// icpDetection wraps a converged, low-residual registration into a Detection.
func icpDetection(cluster *pc.PointCloud, ref referenceShape, res icpResult) (Detection, bool) {
	if !res.converged || res.residual >= icpMaxResidual {
		return Detection{}, false
	}
	bounds := spatialmath.NewBoundingBoxFromPoints(cluster.Points())
	return Detection{
		Kind:        ref.kind,
		Center:      res.pose.Point,
		Rotation:    res.pose.Orientation,
		HalfExtents: bounds.HalfExtents,
		Confidence:  math.Max(0, 1-res.residual/10),
		Algorithm:   AlgorithmICP,
		Bounds:      bounds,
		Points:      cluster.Points(),
	}, true
}

// kabsch solves the orthogonal Procrustes problem: the rotation and
// translation minimizing the squared distance between paired point sets, via
// SVD of the cross-covariance with a determinant correction against
// reflections.
func kabsch(src, dst []r3.Vector) (*mat.Dense, r3.Vector) {
	cs, cd := centroid(src), centroid(dst)

	h := mat.NewDense(3, 3, nil)
	for i := range src {
		p := src[i].Sub(cs)
		q := dst[i].Sub(cd)
		pv := []float64{p.X, p.Y, p.Z}
		qv := []float64{q.X, q.Y, q.Z}
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				h.Set(r, c, h.At(r, c)+pv[r]*qv[c])
			}
		}
	}

	var svd mat.SVD
	if !svd.Factorize(h, mat.SVDFull) {
		// degenerate correspondence set; fall back to pure translation
		return identity3(), cd.Sub(cs)
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	var vut mat.Dense
	vut.Mul(&v, u.T())
	d := mat.Det(&vut)
	correction := mat.NewDiagDense(3, []float64{1, 1, math.Copysign(1, d)})

	rot := mat.NewDense(3, 3, nil)
	rot.Product(&v, correction, u.T())

	trans := cd.Sub(matVec(rot, cs))
	return rot, trans
}

func centroid(pts []r3.Vector) r3.Vector {
	if len(pts) == 0 {
		return r3.Vector{}
	}
	var sum r3.Vector
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / float64(len(pts)))
}

func nearestVector(pts []r3.Vector, q r3.Vector) r3.Vector {
	best := pts[0]
	bestDist := math.MaxFloat64
	for _, p := range pts {
		if d := q.Sub(p).Norm2(); d < bestDist {
			bestDist = d
			best = p
		}
	}
	return best
}

// downsampleVectors takes every n-th point so at most cap survive; the fixed
// stride keeps the result deterministic.
func downsampleVectors(pts []r3.Vector, limit int) []r3.Vector {
	if len(pts) <= limit {
		out := make([]r3.Vector, len(pts))
		copy(out, pts)
		return out
	}
	stride := (len(pts) + limit - 1) / limit
	out := make([]r3.Vector, 0, limit)
	for i := 0; i < len(pts); i += stride {
		out = append(out, pts[i])
	}
	return out
}

func scaleVectors(pts []r3.Vector, s float64) []r3.Vector {
	for i := range pts {
		pts[i] = pts[i].Mul(s)
	}
	return pts
}

func matVec(m mat.Matrix, v r3.Vector) r3.Vector {
	return r3.Vector{
		X: m.At(0, 0)*v.X + m.At(0, 1)*v.Y + m.At(0, 2)*v.Z,
		Y: m.At(1, 0)*v.X + m.At(1, 1)*v.Y + m.At(1, 2)*v.Z,
		Z: m.At(2, 0)*v.X + m.At(2, 1)*v.Y + m.At(2, 2)*v.Z,
	}
}

func identity3() *mat.Dense {
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
}
