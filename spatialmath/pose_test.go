package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func TestInterpolate(t *testing.T) {
	from := NewZeroPose()
	to := NewPose(r3.Vector{X: 2}, q90z)

	mid := Interpolate(from, to, 0.5)
	test.That(t, mid.Point(), test.ShouldResemble, r3.Vector{X: 1})
	test.That(t, QuaternionAlmostEqual(mid.Quaternion(), q45z, 1e-12), test.ShouldBeTrue)

	test.That(t, Interpolate(from, to, 0), test.ShouldResemble, from)
	test.That(t, Interpolate(from, to, 1), test.ShouldResemble, to)
}

func TestPoseAlmostEqual(t *testing.T) {
	p := NewPose(r3.Vector{X: 1, Y: 2, Z: 3}, q45x)
	test.That(t, PoseAlmostEqual(p, NewPose(r3.Vector{X: 1, Y: 2, Z: 3}, Flip(q45x)), 1e-9), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(p, NewPose(r3.Vector{X: 1, Y: 2, Z: 3.1}, q45x), 1e-9), test.ShouldBeFalse)
	test.That(t, PoseAlmostEqual(p, NewPoseFromPoint(r3.Vector{X: 1, Y: 2, Z: 3}), 1e-9), test.ShouldBeFalse)
}

func TestPoseString(t *testing.T) {
	test.That(t, NewZeroPose().String(), test.ShouldContainSubstring, "W:1.0000")
}

func TestAngularVelocityFromQuatRate(t *testing.T) {
	// Spinning about +z at 2 rad/s while yawed 90 degrees: qdot = 1/2 q*(0,0,0,2).
	wz := 2.0
	qdot := quat.Scale(0.5, quat.Mul(q90z, quat.Number{Kmag: wz}))

	body := QuatRateToBodyAngVel(q90z, qdot)
	test.That(t, body.X, test.ShouldAlmostEqual, 0)
	test.That(t, body.Y, test.ShouldAlmostEqual, 0)
	test.That(t, body.Z, test.ShouldAlmostEqual, wz)

	// Yaw about z commutes with a yaw orientation, so the world rate is the same.
	world := QuatRateToWorldAngVel(q90z, qdot)
	test.That(t, world.Z, test.ShouldAlmostEqual, wz)

	// Rolled 90 degrees about x, body z spin shows up about world -y.
	q90x := (&R4AA{Theta: math.Pi / 2, RX: 1}).ToQuat()
	qdot = quat.Scale(0.5, quat.Mul(q90x, quat.Number{Kmag: wz}))
	world = QuatRateToWorldAngVel(q90x, qdot)
	test.That(t, world.X, test.ShouldAlmostEqual, 0)
	test.That(t, world.Y, test.ShouldAlmostEqual, -wz)
	test.That(t, world.Z, test.ShouldAlmostEqual, 0)
}
