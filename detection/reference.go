package detection

import (
	"math"

	"github.com/golang/geo/r3"
)

// referenceShape is one canonical primitive in the reference shape library:
// a deterministic point sampling of the shape's surface at unit scale,
// centered at the origin. The library is built once per Detector and is
// read-only afterwards; every ICP run aligns against the same samples.
type referenceShape struct {
	kind   ShapeKind
	points []r3.Vector
}

func buildReferenceShapes() []referenceShape {
	return []referenceShape{
		{ShapeSphere, sampleSphere()},
		{ShapeCylinder, sampleCylinder()},
		{ShapeCube, sampleCube()},
		{ShapeCone, sampleCone()},
	}
}

// sampleSphere samples a unit sphere on a latitude/longitude grid.
func sampleSphere() []r3.Vector {
	const rings, segments = 14, 28
	points := make([]r3.Vector, 0, rings*segments+2)
	points = append(points, r3.Vector{Z: 1}, r3.Vector{Z: -1})
	for i := 1; i <= rings; i++ {
		phi := math.Pi * float64(i) / float64(rings+1)
		for j := 0; j < segments; j++ {
			theta := 2 * math.Pi * float64(j) / float64(segments)
			points = append(points, r3.Vector{
				X: math.Sin(phi) * math.Cos(theta),
				Y: math.Sin(phi) * math.Sin(theta),
				Z: math.Cos(phi),
			})
		}
	}
	return points
}

// sampleCylinder samples a radius-1 cylinder spanning z in [-1, 1], lateral
// surface plus both end caps.
func sampleCylinder() []r3.Vector {
	const rings, segments, capRings = 14, 24, 3
	points := make([]r3.Vector, 0, (rings+2*capRings)*segments)
	for i := 0; i < rings; i++ {
		z := -1 + 2*float64(i)/float64(rings-1)
		for j := 0; j < segments; j++ {
			theta := 2 * math.Pi * float64(j) / float64(segments)
			points = append(points, r3.Vector{X: math.Cos(theta), Y: math.Sin(theta), Z: z})
		}
	}
	for _, z := range []float64{-1, 1} {
		for i := 1; i <= capRings; i++ {
			r := float64(i) / float64(capRings+1)
			for j := 0; j < segments; j++ {
				theta := 2 * math.Pi * float64(j) / float64(segments)
				points = append(points, r3.Vector{X: r * math.Cos(theta), Y: r * math.Sin(theta), Z: z})
			}
		}
	}
	return points
}

// sampleCube samples the surface of a side-2 cube as a grid per face.
func sampleCube() []r3.Vector {
	const n = 9
	points := make([]r3.Vector, 0, 6*n*n)
	for i := 0; i < n; i++ {
		u := -1 + 2*float64(i)/float64(n-1)
		for j := 0; j < n; j++ {
			v := -1 + 2*float64(j)/float64(n-1)
			points = append(points,
				r3.Vector{X: 1, Y: u, Z: v},
				r3.Vector{X: -1, Y: u, Z: v},
				r3.Vector{X: u, Y: 1, Z: v},
				r3.Vector{X: u, Y: -1, Z: v},
				r3.Vector{X: u, Y: v, Z: 1},
				r3.Vector{X: u, Y: v, Z: -1},
			)
		}
	}
	return points
}

// sampleCone samples a cone with base radius 1 at z=-1 and apex at z=1,
// lateral surface plus the base disk.
func sampleCone() []r3.Vector {
	const rings, segments, baseRings = 14, 24, 3
	points := make([]r3.Vector, 0, (rings+baseRings)*segments+1)
	points = append(points, r3.Vector{Z: 1})
	for i := 0; i < rings; i++ {
		// stop short of the apex so no lateral ring degenerates to a point
		t := float64(i) / float64(rings)
		z := -1 + 2*t
		r := 1 - t
		for j := 0; j < segments; j++ {
			theta := 2 * math.Pi * float64(j) / float64(segments)
			points = append(points, r3.Vector{X: r * math.Cos(theta), Y: r * math.Sin(theta), Z: z})
		}
	}
	for i := 1; i <= baseRings; i++ {
		r := float64(i) / float64(baseRings+1)
		for j := 0; j < segments; j++ {
			theta := 2 * math.Pi * float64(j) / float64(segments)
			points = append(points, r3.Vector{X: r * math.Cos(theta), Y: r * math.Sin(theta), Z: -1})
		}
	}
	return points
}
