package smb

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/smbmpc/autodiff"
	"go.viam.com/smbmpc/spatialmath"
)

// rk4 integrates FlowMap for constant input.
func rk4(state, input []float64, dt float64, steps int) []float64 {
	x := append([]float64{}, state...)
	flow := func(s []float64) []float64 { return FlowMap[float64](autodiff.Real{}, s, input) }
	axpy := func(a float64, d []float64) []float64 {
		out := make([]float64, len(x))
		for i := range x {
			out[i] = x[i] + a*d[i]
		}
		return out
	}
	for n := 0; n < steps; n++ {
		k1 := flow(x)
		k2 := flow(axpy(dt/2, k1))
		k3 := flow(axpy(dt/2, k2))
		k4 := flow(axpy(dt, k3))
		for i := range x {
			x[i] += dt / 6 * (k1[i] + 2*k2[i] + 2*k3[i] + k4[i])
		}
	}
	return x
}

func TestArcPoseMatchesFlowMap(t *testing.T) {
	start := spatialmath.NewPose(r3.Vector{X: 1, Y: -1, Z: 0.2}, spatialmath.NewYawR4AA(0.7).ToQuat())
	for _, tc := range []struct {
		name     string
		v, omega float64
	}{
		{"left", 1, 0.5},
		{"right", 0.8, -1.2},
		{"straight", 1.5, 0},
		{"spin", 0, 2},
		{"reverse", -1, 0.3},
	} {
		t.Run(tc.name, func(t *testing.T) {
			duration := 2.0
			integrated := rk4(StateFromPose(start), InputFromVelocities(tc.v, tc.omega), duration/2000, 2000)
			closed := ArcPose(start, tc.v, tc.omega, duration)
			test.That(t, spatialmath.PoseAlmostEqual(PoseFromState(integrated), closed, 1e-9), test.ShouldBeTrue)
		})
	}
}

func TestArcPoseTilted(t *testing.T) {
	// driving on a wall: yaw turns about the body z axis
	start := spatialmath.NewPose(r3.Vector{}, (&spatialmath.R4AA{Theta: math.Pi / 2, RX: 1}).ToQuat())
	integrated := rk4(StateFromPose(start), InputFromVelocities(1, 1), 1e-3, 1000)
	test.That(t, spatialmath.PoseAlmostEqual(PoseFromState(integrated), ArcPose(start, 1, 1, 1), 1e-9),
		test.ShouldBeTrue)
}

func TestNewArcTrajectory(t *testing.T) {
	start := spatialmath.NewZeroPose()
	traj, err := NewArcTrajectory(start, 1, math.Pi/2, 1, 5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, traj.TimeTrajectory, test.ShouldResemble, []float64{0, 0.25, 0.5, 0.75, 1})
	test.That(t, ValidateTargetTrajectories(traj), test.ShouldBeNil)
	test.That(t, traj.StateTrajectory[0], test.ShouldResemble, StateFromPose(start))

	// a quarter circle of radius 2/pi
	end := traj.Pose(4)
	radius := 2 / math.Pi
	test.That(t, end.Point().X, test.ShouldAlmostEqual, radius)
	test.That(t, end.Point().Y, test.ShouldAlmostEqual, radius)
	test.That(t, spatialmath.Yaw(end.Quaternion()), test.ShouldAlmostEqual, math.Pi/2)

	single, err := NewArcTrajectory(start, 1, 0, 3, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, single.TimeTrajectory, test.ShouldResemble, []float64{0})

	_, err = NewArcTrajectory(start, 1, 0, 3, 0)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewArcTrajectory(start, 1, 0, math.NaN(), 4)
	test.That(t, err, test.ShouldNotBeNil)
}
