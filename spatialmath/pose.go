package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose is a position in world coordinates plus an orientation.
type Pose struct {
	point       r3.Vector
	orientation quat.Number
}

// NewPose creates a pose from a point and an orientation quaternion. The quaternion is stored as
// given; callers that need unit length should Normalize first.
func NewPose(point r3.Vector, orientation quat.Number) Pose {
	return Pose{point: point, orientation: orientation}
}

// NewPoseFromPoint creates a pose at point with no rotation.
func NewPoseFromPoint(point r3.Vector) Pose {
	return NewPose(point, NewZeroQuaternion())
}

// NewZeroPose returns the identity pose.
func NewZeroPose() Pose {
	return NewPoseFromPoint(r3.Vector{})
}

// Point returns the position.
func (p Pose) Point() r3.Vector {
	return p.point
}

// Quaternion returns the orientation.
func (p Pose) Quaternion() quat.Number {
	return p.orientation
}

func (p Pose) String() string {
	return fmt.Sprintf("{X:%.3f Y:%.3f Z:%.3f | W:%.4f X:%.4f Y:%.4f Z:%.4f}",
		p.point.X, p.point.Y, p.point.Z,
		p.orientation.Real, p.orientation.Imag, p.orientation.Jmag, p.orientation.Kmag)
}

// PoseAlmostEqual returns whether two poses are within tol of each other, comparing
// orientations up to sign.
func PoseAlmostEqual(a, b Pose, tol float64) bool {
	return a.point.Sub(b.point).Norm() <= tol && QuaternionAlmostEqual(a.orientation, b.orientation, tol)
}

// Interpolate returns the pose a fraction `by` of the way from `from` to `to`: linear in position,
// shortest-arc slerp in orientation.
func Interpolate(from, to Pose, by float64) Pose {
	point := from.point.Mul(1 - by).Add(to.point.Mul(by))
	return NewPose(point, Slerp(from.orientation, to.orientation, by))
}
