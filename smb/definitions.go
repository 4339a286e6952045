// Package smb implements the continuous-time models an MPC solver needs to drive a
// differential-drive base: a unicycle flow map, a weighted pose-tracking cost, and the resolver
// that turns a time-stamped reference trajectory into the pose the cost tracks at a given time.
//
// Model code is generic over an autodiff.Field so the same arithmetic is evaluated with float64
// values and with dual numbers when a linearisation is needed.
//
// States are flat vectors [px py pz qx qy qz qw] with the orientation quaternion in (x, y, z, w)
// order. Inputs are [v, omega]: forward speed along body x and yaw rate about body z.
package smb

// Model dimensions.
const (
	StateDim = 7
	InputDim = 2
	CostDim  = 8
)

// Offsets into state and input vectors.
const (
	positionOffset    = 0
	orientationOffset = 3

	linVelIndex = 0
	angVelIndex = 1
)

// Offsets into the cost residual.
const (
	positionErrorOffset    = 0
	orientationErrorOffset = 3
	inputErrorOffset       = 6
)
