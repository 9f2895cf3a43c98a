package spatialmath

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestNewBoundingBoxFromPoints(t *testing.T) {
	test.That(t, NewBoundingBoxFromPoints(nil), test.ShouldResemble, BoundingBox{})

	pts := []r3.Vector{
		{X: -1, Y: 2, Z: 0},
		{X: 3, Y: -2, Z: 4},
		{X: 1, Y: 0, Z: 2},
	}
	box := NewBoundingBoxFromPoints(pts)
	test.That(t, box.Center, test.ShouldResemble, r3.Vector{X: 1, Y: 0, Z: 2})
	test.That(t, box.HalfExtents, test.ShouldResemble, r3.Vector{X: 2, Y: 2, Z: 2})
	test.That(t, box.Dims(), test.ShouldResemble, r3.Vector{X: 4, Y: 4, Z: 4})
}

func TestBoundingBoxExtents(t *testing.T) {
	box := BoundingBox{HalfExtents: r3.Vector{X: 4, Y: 1, Z: 2}}
	test.That(t, box.MaxHalfExtent(), test.ShouldEqual, 4.)
	test.That(t, box.MinHalfExtent(), test.ShouldEqual, 1.)
}
