package smb

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/smbmpc/autodiff"
	"go.viam.com/smbmpc/spatialmath"
)

// ReadPosition returns the position stored in a state or parameter vector.
func ReadPosition[T any](state []T) autodiff.Vec3[T] {
	return autodiff.Vec3[T]{
		X: state[positionOffset],
		Y: state[positionOffset+1],
		Z: state[positionOffset+2],
	}
}

// ReadRotation returns the orientation stored in a state or parameter vector.
func ReadRotation[T any](state []T) autodiff.Quat[T] {
	return autodiff.Quat[T]{
		X: state[orientationOffset],
		Y: state[orientationOffset+1],
		Z: state[orientationOffset+2],
		W: state[orientationOffset+3],
	}
}

// ReadLinVel returns the forward speed of an input vector.
func ReadLinVel[T any](input []T) T {
	return input[linVelIndex]
}

// ReadAngVel returns the yaw rate of an input vector.
func ReadAngVel[T any](input []T) T {
	return input[angVelIndex]
}

// PoseFromState converts the first StateDim entries of a state or parameter vector into a Pose.
func PoseFromState(state []float64) spatialmath.Pose {
	p := ReadPosition(state)
	q := ReadRotation(state)
	return spatialmath.NewPose(
		r3.Vector{X: p.X, Y: p.Y, Z: p.Z},
		quat.Number{Real: q.W, Imag: q.X, Jmag: q.Y, Kmag: q.Z},
	)
}

// StateFromPose returns the flat state vector for a pose.
func StateFromPose(pose spatialmath.Pose) []float64 {
	pt := pose.Point()
	q := pose.Quaternion()
	return []float64{pt.X, pt.Y, pt.Z, q.Imag, q.Jmag, q.Kmag, q.Real}
}

// InputFromVelocities returns the input vector for a forward speed and yaw rate.
func InputFromVelocities(v, omega float64) []float64 {
	input := make([]float64, InputDim)
	input[linVelIndex] = v
	input[angVelIndex] = omega
	return input
}
