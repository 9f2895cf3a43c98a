package pointcloud

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestPointCloudBasic(t *testing.T) {
	cloud := New()
	test.That(t, cloud.Size(), test.ShouldEqual, 0)

	cloud.Add(r3.Vector{X: 1, Y: 2, Z: 3})
	cloud.Add(r3.Vector{X: -1, Y: 0, Z: 5})
	cloud.Add(r3.Vector{X: 3, Y: -2, Z: 1})

	test.That(t, cloud.Size(), test.ShouldEqual, 3)
	test.That(t, cloud.At(1), test.ShouldResemble, r3.Vector{X: -1, Y: 0, Z: 5})

	meta := cloud.MetaData()
	test.That(t, meta.TotalPoints, test.ShouldEqual, 3)
	test.That(t, meta.MinX, test.ShouldEqual, -1.)
	test.That(t, meta.MaxX, test.ShouldEqual, 3.)
	test.That(t, meta.MinY, test.ShouldEqual, -2.)
	test.That(t, meta.MaxY, test.ShouldEqual, 2.)
	test.That(t, meta.MinZ, test.ShouldEqual, 1.)
	test.That(t, meta.MaxZ, test.ShouldEqual, 5.)
	test.That(t, meta.Center(), test.ShouldResemble, r3.Vector{X: 1, Y: 0, Z: 3})
	test.That(t, meta.HalfExtents(), test.ShouldResemble, r3.Vector{X: 2, Y: 2, Z: 2})

	count := 0
	cloud.Iterate(func(v r3.Vector) bool {
		count++
		return count < 2
	})
	test.That(t, count, test.ShouldEqual, 2)
}

func TestCentroid(t *testing.T) {
	test.That(t, New().Centroid(), test.ShouldResemble, r3.Vector{})

	cloud := New()
	cloud.Add(r3.Vector{X: 2})
	cloud.Add(r3.Vector{X: 4, Y: 6})
	test.That(t, cloud.Centroid(), test.ShouldResemble, r3.Vector{X: 3, Y: 3})
}

func TestDownsample(t *testing.T) {
	cloud := New()
	for i := 0; i < 1000; i++ {
		cloud.Add(r3.Vector{X: float64(i)})
	}

	// already under the cap: same cloud comes back
	test.That(t, cloud.Downsample(2000), test.ShouldEqual, cloud)

	down := cloud.Downsample(100)
	test.That(t, down.Size(), test.ShouldBeLessThanOrEqualTo, 100)
	test.That(t, down.Size(), test.ShouldBeGreaterThan, 50)
	// fixed stride keeps the span of the data
	test.That(t, down.At(0), test.ShouldResemble, r3.Vector{X: 0})
	test.That(t, down.MetaData().MaxX, test.ShouldBeGreaterThan, 980.)

	// deterministic
	again := cloud.Downsample(100)
	test.That(t, again.Points(), test.ShouldResemble, down.Points())
}

func TestFromMesh(t *testing.T) {
	mesh := &BasicMesh{Vertices: []r3.Vector{{X: 1}, {Y: 2}, {Z: 3}}}
	cloud := FromMesh(mesh)
	test.That(t, cloud.Size(), test.ShouldEqual, 3)
	test.That(t, cloud.Points(), test.ShouldResemble, mesh.Vertices)

	empty := FromMesh(&BasicMesh{})
	test.That(t, empty.Size(), test.ShouldEqual, 0)
}

func TestPrune(t *testing.T) {
	small := New()
	small.Add(r3.Vector{})
	big := New()
	for i := 0; i < 10; i++ {
		big.Add(r3.Vector{X: float64(i)})
	}
	pruned := Prune([]*PointCloud{small, big}, 5)
	test.That(t, pruned, test.ShouldHaveLength, 1)
	test.That(t, pruned[0], test.ShouldEqual, big)
}
