package smb

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/dual"

	"go.viam.com/smbmpc/autodiff"
	"go.viam.com/smbmpc/logging"
)

// FlowMap returns the time derivative of state under input for a unicycle base.
//
// The body moves at speed v along its own x axis and yaws at omega about its own z axis:
//
//	pdot = q * (v, 0, 0) * conj(q)
//	qdot = q * (0, 0, omega/2 | 0)
//
// The quaternion is used as stored; nothing is normalised.
func FlowMap[T any](f autodiff.Field[T], state, input []T) []T {
	return FlowMapTo(f, make([]T, StateDim), state, input)
}

// FlowMapTo is FlowMap writing into dst, which must hold StateDim entries.
func FlowMapTo[T any](f autodiff.Field[T], dst, state, input []T) []T {
	zero := f.Const(0)
	vx := ReadLinVel(input)
	omegaZ := ReadAngVel(input)
	currentRotation := ReadRotation(state)

	// base frame velocity into the world frame
	linearVelocity := autodiff.Vec3[T]{X: vx, Y: zero, Z: zero}
	positionDerivative := autodiff.QuatRotate(f, currentRotation, linearVelocity)

	deltaRotation := autodiff.Quat[T]{X: zero, Y: zero, Z: f.Scale(0.5, omegaZ), W: zero}
	orientationDerivative := autodiff.QuatMul(f, currentRotation, deltaRotation)

	copy(dst[positionOffset:positionOffset+3], positionDerivative.Slice())
	copy(dst[orientationOffset:orientationOffset+4], orientationDerivative.Coeffs())
	return dst
}

// FlowLinearization is the flow value at a point together with its first derivatives.
type FlowLinearization struct {
	Value []float64
	// Dfdx is StateDim x StateDim.
	Dfdx *mat.Dense
	// Dfdu is StateDim x InputDim.
	Dfdu *mat.Dense
}

// SystemDynamics evaluates FlowMap for a solver. It holds no state.
type SystemDynamics struct {
	logger logging.Logger
}

// NewSystemDynamics returns the unicycle dynamics.
func NewSystemDynamics(logger logging.Logger) *SystemDynamics {
	logger.Debugw("created system dynamics", "state_dim", StateDim, "input_dim", InputDim)
	return &SystemDynamics{logger: logger}
}

// StateDim returns the length of state vectors.
func (sd *SystemDynamics) StateDim() int {
	return StateDim
}

// InputDim returns the length of input vectors.
func (sd *SystemDynamics) InputDim() int {
	return InputDim
}

// Flow evaluates the state derivative. The model is time invariant; time is accepted for the
// solver interface.
func (sd *SystemDynamics) Flow(time float64, state, input []float64) ([]float64, error) {
	if err := checkStateInput(state, input); err != nil {
		return nil, errors.Wrap(err, "invalid dynamics arguments")
	}
	return FlowMap[float64](autodiff.Real{}, state, input), nil
}

// LinearApproximation evaluates the flow and its Jacobians with respect to state and input.
func (sd *SystemDynamics) LinearApproximation(time float64, state, input []float64) (*FlowLinearization, error) {
	if err := checkStateInput(state, input); err != nil {
		return nil, errors.Wrap(err, "invalid dynamics arguments")
	}
	point := append(append(make([]float64, 0, StateDim+InputDim), state...), input...)
	out := make([]dual.Number, StateDim)
	value, jac := autodiff.Jacobian(point, func(x []dual.Number) []dual.Number {
		return FlowMapTo[dual.Number](autodiff.Dual{}, out, x[:StateDim], x[StateDim:])
	})
	return &FlowLinearization{
		Value: value,
		Dfdx:  mat.DenseCopyOf(jac.Slice(0, StateDim, 0, StateDim)),
		Dfdu:  mat.DenseCopyOf(jac.Slice(0, StateDim, StateDim, StateDim+InputDim)),
	}, nil
}
