// Package segmentation partitions a scanned point cloud into spatially
// connected regions, each a candidate geometric feature for classification.
package segmentation

import (
	"github.com/golang/geo/r3"

	pc "github.com/scanforge/scandetect/pointcloud"
)

// Clusters keeps track of the segments of a point cloud as they are being
// built. members holds the working-set point indices per cluster, and Indices
// maps each assigned point index to the cluster it belongs to.
type Clusters struct {
	members [][]int
	Indices map[int]int
}

// NewClusters creates an empty Clusters struct.
func NewClusters() *Clusters {
	return &Clusters{members: make([][]int, 0), Indices: make(map[int]int)}
}

// N gives the number of clusters in the partition of the point cloud.
func (c *Clusters) N() int {
	return len(c.members)
}

// AssignCluster assigns the point at index pt to the cluster with the given
// index.
func (c *Clusters) AssignCluster(pt, index int) {
	for index >= len(c.members) {
		c.members = append(c.members, nil)
	}
	c.Indices[pt] = index
	c.members[index] = append(c.members[index], pt)
}

// MergeClusters moves all the points in cluster "from" to the cluster "to".
func (c *Clusters) MergeClusters(from, to int) {
	if from == to {
		return
	}
	for _, pt := range c.members[from] {
		c.Indices[pt] = to
	}
	c.members[to] = append(c.members[to], c.members[from]...)
	c.members[from] = nil
}

// Build materializes the clusters as point clouds over the given working set,
// dropping clusters smaller than nMin. Cluster order follows creation order
// and member order follows assignment order, so output is deterministic for a
// fixed input.
func (c *Clusters) Build(points []r3.Vector, nMin int) []*pc.PointCloud {
	clouds := make([]*pc.PointCloud, 0, len(c.members))
	for _, member := range c.members {
		if len(member) < nMin {
			continue
		}
		cloud := pc.NewWithPrealloc(len(member))
		for _, pt := range member {
			cloud.Add(points[pt])
		}
		clouds = append(clouds, cloud)
	}
	return clouds
}
