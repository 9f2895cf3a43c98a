package segmentation

import (
	"github.com/golang/geo/r3"

	pc "github.com/scanforge/scandetect/pointcloud"
)

// Config specifies the parameters for radius clustering.
type Config struct {
	// Radius is the neighbor distance threshold: two points closer than this
	// belong to the same connected region.
	Radius float64 `json:"radius"`
	// MinClusterSize is the smallest cluster worth classifying.
	MinClusterSize int `json:"min_cluster_size"`
	// MaxSamples caps the working set; larger inputs are down-sampled at a
	// fixed stride before clustering to bound the quadratic neighbor search.
	MaxSamples int `json:"max_samples"`
}

// DefaultConfig returns the clustering parameters used by the detector unless
// a caller overrides them.
func DefaultConfig() Config {
	return Config{
		Radius:         5.0,
		MinClusterSize: 100,
		MaxSamples:     15000,
	}
}

// RadiusClustering partitions the point cloud into connected components of
// its proximity graph, grouping points within the configured radius of each
// other. Described in the paper "A Clustering Method for Efficient
// Segmentation of 3D Laser Data" by Klasing et al. 2008. No ordering is
// guaranteed among the returned clusters.
func RadiusClustering(cloud *pc.PointCloud, cfg Config) []*pc.PointCloud {
	working := cloud.Downsample(cfg.MaxSamples)
	points := working.Points()
	clusters := NewClusters()
	c := 0
	for i := range points {
		// skip if point already is assigned a cluster
		if _, ok := clusters.Indices[i]; ok {
			continue
		}
		// if not assigned, see if any of its neighbors are assigned a cluster
		nn := findNeighborsInRadius(points, i, cfg.Radius)
		for _, neighbor := range nn {
			ptIndex, ptOk := clusters.Indices[i]
			neighborIndex, neighborOk := clusters.Indices[neighbor]
			switch {
			case ptOk && neighborOk:
				if ptIndex != neighborIndex {
					clusters.MergeClusters(ptIndex, neighborIndex)
				}
			case !ptOk && neighborOk:
				clusters.AssignCluster(i, neighborIndex)
			case ptOk && !neighborOk:
				clusters.AssignCluster(neighbor, ptIndex)
			}
		}
		// if none of the neighbors were assigned a cluster, create a new
		// cluster and assign all neighbors to it
		if _, ok := clusters.Indices[i]; !ok {
			clusters.AssignCluster(i, c)
			for _, neighbor := range nn {
				clusters.AssignCluster(neighbor, c)
			}
			c++
		}
	}
	return clusters.Build(points, cfg.MinClusterSize)
}

// findNeighborsInRadius is brute-force by design; the working-set cap keeps
// the quadratic scan bounded.
func findNeighborsInRadius(points []r3.Vector, origin int, radius float64) []int {
	var neighbors []int
	for i := range points {
		if i == origin {
			continue
		}
		if points[origin].Distance(points[i]) <= radius {
			neighbors = append(neighbors, i)
		}
	}
	return neighbors
}
