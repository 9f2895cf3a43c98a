package detection

import (
	"math"

	"github.com/golang/geo/r3"

	pc "github.com/scanforge/scandetect/pointcloud"
)

// spherePoints samples n points on a sphere surface with a fibonacci spiral,
// which is deterministic and close to uniform.
func spherePoints(n int, radius float64, center r3.Vector) []r3.Vector {
	golden := math.Pi * (3 - math.Sqrt(5))
	pts := make([]r3.Vector, 0, n)
	for i := 0; i < n; i++ {
		z := 1 - 2*(float64(i)+0.5)/float64(n)
		r := math.Sqrt(1 - z*z)
		theta := golden * float64(i)
		pts = append(pts, center.Add(r3.Vector{
			X: radius * r * math.Cos(theta),
			Y: radius * r * math.Sin(theta),
			Z: radius * z,
		}))
	}
	return pts
}

// rippledSpherePoints samples a sphere like spherePoints but modulates the
// radius with a deterministic ripple, giving a rounded-but-imperfect shell
// whose radius dispersion is tunable via amplitude.
func rippledSpherePoints(n int, radius, amplitude float64, center r3.Vector) []r3.Vector {
	pts := spherePoints(n, 1.0, r3.Vector{})
	for i := range pts {
		pts[i] = center.Add(pts[i].Mul(radius * (1 + amplitude*math.Sin(7*float64(i)))))
	}
	return pts
}

// boxGridPoints fills a box of the given half extents with a grid of points.
func boxGridPoints(half r3.Vector, spacing float64, center r3.Vector) []r3.Vector {
	var pts []r3.Vector
	for x := -half.X; x <= half.X+1e-9; x += spacing {
		for y := -half.Y; y <= half.Y+1e-9; y += spacing {
			for z := -half.Z; z <= half.Z+1e-9; z += spacing {
				pts = append(pts, center.Add(r3.Vector{X: x, Y: y, Z: z}))
			}
		}
	}
	return pts
}

func cloudOf(pts []r3.Vector) *pc.PointCloud {
	cloud := pc.NewWithPrealloc(len(pts))
	for _, p := range pts {
		cloud.Add(p)
	}
	return cloud
}

func meshOf(ptSets ...[]r3.Vector) *pc.BasicMesh {
	var all []r3.Vector
	for _, pts := range ptSets {
		all = append(all, pts...)
	}
	return &pc.BasicMesh{Vertices: all}
}

// octagonLoops traces a flat octagon loops times: every interior point bends
// by the same 45 degrees, so curvature is high and perfectly uniform.
func octagonLoops(radius float64, loops int) []r3.Vector {
	var pts []r3.Vector
	for l := 0; l < loops; l++ {
		for i := 0; i < 8; i++ {
			theta := 2 * math.Pi * float64(i) / 8
			pts = append(pts, r3.Vector{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)})
		}
	}
	return pts
}

func featureOnlyOptions() Options {
	opts := DefaultOptions()
	opts.UseICP = false
	opts.UseCurvatureAnalysis = false
	return opts
}
