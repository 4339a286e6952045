package smb

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/smbmpc/spatialmath"
)

// below this yaw rate an arc is treated as a straight line
const straightArcEpsilon = 1e-9

// ArcPose returns the pose reached after driving for t seconds from start at constant forward speed
// v and yaw rate omega. This is the exact solution of FlowMap for constant input.
func ArcPose(start spatialmath.Pose, v, omega, t float64) spatialmath.Pose {
	heading := omega * t

	// displacement in the start frame
	var local r3.Vector
	if math.Abs(omega) < straightArcEpsilon {
		local = r3.Vector{X: v * t}
	} else {
		radius := v / omega
		local = r3.Vector{X: radius * math.Sin(heading), Y: radius * (1 - math.Cos(heading))}
	}

	q := start.Quaternion()
	x, y, z := spatialmath.RotatePoint(q, local.X, local.Y, local.Z)
	return spatialmath.NewPose(
		start.Point().Add(r3.Vector{X: x, Y: y, Z: z}),
		quat.Mul(q, spatialmath.NewYawR4AA(heading).ToQuat()),
	)
}

// NewArcTrajectory samples the constant-input arc from start over duration at samples evenly
// spaced times, starting at time zero.
func NewArcTrajectory(start spatialmath.Pose, v, omega, duration float64, samples int) (*TargetTrajectories, error) {
	if samples < 1 {
		return nil, errors.Errorf("arc trajectory needs at least one sample, got %d", samples)
	}
	if duration < 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return nil, errors.Errorf("arc trajectory duration must be finite and non-negative, got %v", duration)
	}

	times := make([]float64, samples)
	if samples > 1 {
		floats.Span(times, 0, duration)
	}
	traj := &TargetTrajectories{
		TimeTrajectory:  times,
		StateTrajectory: make([][]float64, samples),
	}
	for i, t := range times {
		traj.StateTrajectory[i] = StateFromPose(ArcPose(start, v, omega, t))
	}
	return traj, nil
}
