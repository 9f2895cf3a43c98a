package pointcloud

import "github.com/golang/geo/r3"

// Mesh is the minimal surface the detector needs from an already-parsed scan:
// a flat vertex position buffer. Decoding mesh file formats happens upstream.
type Mesh interface {
	Positions() []r3.Vector
}

// BasicMesh is a Mesh backed directly by a vertex slice.
type BasicMesh struct {
	Vertices []r3.Vector
}

// Positions returns the vertex buffer.
func (m *BasicMesh) Positions() []r3.Vector {
	return m.Vertices
}

// FromMesh flattens a mesh's position buffer into a PointCloud, preserving
// buffer order.
func FromMesh(m Mesh) *PointCloud {
	positions := m.Positions()
	cloud := NewWithPrealloc(len(positions))
	for _, v := range positions {
		cloud.Add(v)
	}
	return cloud
}
