package spatialmath

import "github.com/golang/geo/r3"

// Pose is a position in 3D space along with an orientation.
type Pose struct {
	Point       r3.Vector
	Orientation *EulerAngles
}

// NewPose takes a position and orientation and returns a Pose.
func NewPose(point r3.Vector, o *EulerAngles) Pose {
	if o == nil {
		o = NewEulerAngles()
	}
	return Pose{Point: point, Orientation: o}
}

// NewZeroPose returns a pose at the origin with no rotation.
func NewZeroPose() Pose {
	return NewPose(r3.Vector{}, nil)
}
