// Package spatialmath implements the small amount of 3D pose math the shape
// detector needs: Euler angle orientations, rigid poses, and axis-aligned
// bounding boxes.
package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// EulerAngles are three angles (in radians) used to represent the rotation of
// an object in 3D Euclidean space. The Tait-Bryan angle formalism is used,
// with rotations around the z, y, and x axes (extrinsic zyx order).
type EulerAngles struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// NewEulerAngles creates an empty EulerAngles struct.
func NewEulerAngles() *EulerAngles {
	return &EulerAngles{Roll: 0, Pitch: 0, Yaw: 0}
}

// Quaternion returns the orientation in quaternion representation.
func (ea *EulerAngles) Quaternion() quat.Number {
	cy := math.Cos(ea.Yaw / 2)
	sy := math.Sin(ea.Yaw / 2)
	cp := math.Cos(ea.Pitch / 2)
	sp := math.Sin(ea.Pitch / 2)
	cr := math.Cos(ea.Roll / 2)
	sr := math.Sin(ea.Roll / 2)

	return quat.Number{
		Real: cr*cp*cy + sr*sp*sy,
		Imag: sr*cp*cy - cr*sp*sy,
		Jmag: cr*sp*cy + sr*cp*sy,
		Kmag: cr*cp*sy - sr*sp*cy,
	}
}

// QuatToEulerAngles converts a quaternion to the euler angle representation.
func QuatToEulerAngles(q quat.Number) *EulerAngles {
	angles := EulerAngles{}

	// roll (x-axis rotation)
	sinrCosp := 2 * (q.Real*q.Imag + q.Jmag*q.Kmag)
	cosrCosp := 1 - 2*(q.Imag*q.Imag+q.Jmag*q.Jmag)
	angles.Roll = math.Atan2(sinrCosp, cosrCosp)

	// pitch (y-axis rotation)
	sinp := 2 * (q.Real*q.Jmag - q.Kmag*q.Imag)
	if math.Abs(sinp) >= 1 {
		angles.Pitch = math.Copysign(math.Pi/2, sinp)
	} else {
		angles.Pitch = math.Asin(sinp)
	}

	// yaw (z-axis rotation)
	sinyCosp := 2 * (q.Real*q.Kmag + q.Imag*q.Jmag)
	cosyCosp := 1 - 2*(q.Jmag*q.Jmag+q.Kmag*q.Kmag)
	angles.Yaw = math.Atan2(sinyCosp, cosyCosp)

	return &angles
}

// RotationMatrixToEulerAngles decomposes a 3x3 rotation matrix into euler
// angles, guarding against gimbal lock at pitch = ±pi/2.
func RotationMatrixToEulerAngles(m mat.Matrix) *EulerAngles {
	angles := EulerAngles{}
	sinp := -m.At(2, 0)
	if math.Abs(sinp) >= 1-1e-9 {
		// gimbal lock, roll and yaw are coupled; fold everything into yaw
		angles.Pitch = math.Copysign(math.Pi/2, sinp)
		angles.Roll = 0
		angles.Yaw = math.Atan2(-m.At(0, 1), m.At(1, 1))
		return &angles
	}
	angles.Pitch = math.Asin(sinp)
	angles.Roll = math.Atan2(m.At(2, 1), m.At(2, 2))
	angles.Yaw = math.Atan2(m.At(1, 0), m.At(0, 0))
	return &angles
}

// EulerAnglesAlmostEqual reports whether two orientations agree to within tol
// radians on each angle.
func EulerAnglesAlmostEqual(a, b *EulerAngles, tol float64) bool {
	return math.Abs(a.Roll-b.Roll) < tol &&
		math.Abs(a.Pitch-b.Pitch) < tol &&
		math.Abs(a.Yaw-b.Yaw) < tol
}
