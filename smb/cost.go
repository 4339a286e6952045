package smb

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/dual"

	"go.viam.com/smbmpc/autodiff"
	"go.viam.com/smbmpc/logging"
)

// CostWeights scale the three parts of the tracking residual.
type CostWeights struct {
	// Position is 3x3.
	Position *mat.Dense
	// Orientation is 3x3.
	Orientation *mat.Dense
	// Input is InputDim x InputDim.
	Input *mat.Dense
}

// Validate checks that every weight matrix is present and square of the right size.
func (w CostWeights) Validate() error {
	return multierr.Combine(
		checkWeight("position", w.Position, 3),
		checkWeight("orientation", w.Orientation, 3),
		checkWeight("input", w.Input, InputDim),
	)
}

func checkWeight(name string, m *mat.Dense, n int) error {
	if m == nil || m.IsEmpty() {
		return errors.Errorf("%s weight is missing", name)
	}
	if r, c := m.Dims(); r != n || c != n {
		return errors.Errorf("%s weight is %dx%d, expected %dx%d", name, r, c, n, n)
	}
	return nil
}

func (w CostWeights) clone() CostWeights {
	return CostWeights{
		Position:    mat.DenseCopyOf(w.Position),
		Orientation: mat.DenseCopyOf(w.Orientation),
		Input:       mat.DenseCopyOf(w.Input),
	}
}

// IdentityCostWeights returns unit weights on every residual component.
func IdentityCostWeights() CostWeights {
	return CostWeights{
		Position:    identity(3),
		Orientation: identity(3),
		Input:       identity(InputDim),
	}
}

func identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// CostVector returns the weighted tracking residual for a state and input against the reference
// pose in parameters:
//
//	[ Wp (p - p_ref) ; Wo vec(conj(q_ref) * q) ; Wi u ]
//
// The orientation error is the vector part of the rotation from the reference to the current
// orientation, expressed in the reference frame. It vanishes for q = q_ref and for q = -q_ref.
func CostVector[T any](f autodiff.Field[T], w *CostWeights, state, input, parameters []T) []T {
	return CostVectorTo(f, make([]T, CostDim), w, state, input, parameters)
}

// CostVectorTo is CostVector writing into dst, which must hold CostDim entries.
func CostVectorTo[T any](f autodiff.Field[T], dst []T, w *CostWeights, state, input, parameters []T) []T {
	currentPosition := ReadPosition(state)
	currentOrientation := ReadRotation(state)
	desiredPosition := ReadPosition(parameters)
	desiredOrientation := ReadRotation(parameters)

	positionDelta := autodiff.SubVec(f, currentPosition, desiredPosition)
	orientationDelta := autodiff.QuatMul(f, autodiff.QuatConj(f, desiredOrientation), currentOrientation)

	pd := [3]T{positionDelta.X, positionDelta.Y, positionDelta.Z}
	od := [3]T{orientationDelta.X, orientationDelta.Y, orientationDelta.Z}
	autodiff.MatVecTo(f, dst[positionErrorOffset:positionErrorOffset+3], w.Position, pd[:])
	autodiff.MatVecTo(f, dst[orientationErrorOffset:orientationErrorOffset+3], w.Orientation, od[:])
	autodiff.MatVecTo(f, dst[inputErrorOffset:inputErrorOffset+InputDim], w.Input, input[:InputDim])
	return dst
}

// CostQuadratic is the Gauss-Newton approximation of the squared residual norm at a point.
type CostQuadratic struct {
	Value float64
	// Dfdx and Dfdu are the gradients with respect to state and input.
	Dfdx *mat.VecDense
	Dfdu *mat.VecDense
	// Dfdxx and Dfduu approximate the Hessians as 2 J^T J.
	Dfdxx *mat.SymDense
	Dfduu *mat.SymDense
	// Dfdux is InputDim x StateDim.
	Dfdux *mat.Dense
}

// Cost is the pose-tracking cost. Its weights are fixed at construction, so a Cost may be shared
// between goroutines.
type Cost struct {
	weights CostWeights
	logger  logging.Logger
}

// NewCost returns a Cost using copies of the given weights.
func NewCost(weights CostWeights, logger logging.Logger) (*Cost, error) {
	if err := weights.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid cost weights")
	}
	c := &Cost{weights: weights.clone(), logger: logger}
	logger.Debugw("created tracking cost",
		"position", formatMatrix(c.weights.Position),
		"orientation", formatMatrix(c.weights.Orientation),
		"input", formatMatrix(c.weights.Input),
	)
	return c, nil
}

// Weights returns a copy of the weights in use.
func (c *Cost) Weights() CostWeights {
	return c.weights.clone()
}

// StateDim returns the length of state vectors.
func (c *Cost) StateDim() int {
	return StateDim
}

// InputDim returns the length of input vectors.
func (c *Cost) InputDim() int {
	return InputDim
}

// ParameterDim returns the length of parameter vectors.
func (c *Cost) ParameterDim() int {
	return StateDim
}

// GetParameters resolves the reference pose at time.
func (c *Cost) GetParameters(time float64, traj *TargetTrajectories) []float64 {
	return GetParameters(time, traj)
}

// CostVectorFunction evaluates the weighted residual. The cost is time invariant.
func (c *Cost) CostVectorFunction(time float64, state, input, parameters []float64) ([]float64, error) {
	if err := c.check(state, input, parameters); err != nil {
		return nil, err
	}
	return CostVector[float64](autodiff.Real{}, &c.weights, state, input, parameters), nil
}

// Value returns the squared norm of the residual.
func (c *Cost) Value(time float64, state, input, parameters []float64) (float64, error) {
	residual, err := c.CostVectorFunction(time, state, input, parameters)
	if err != nil {
		return 0, err
	}
	return floats.Dot(residual, residual), nil
}

// QuadraticApproximation returns the value, gradients, and Gauss-Newton Hessians of the squared
// residual norm, differentiating the residual with dual numbers. parameters are held constant.
func (c *Cost) QuadraticApproximation(time float64, state, input, parameters []float64) (*CostQuadratic, error) {
	if err := c.check(state, input, parameters); err != nil {
		return nil, err
	}
	point := append(append(make([]float64, 0, StateDim+InputDim), state...), input...)
	params := autodiff.Lift[dual.Number](autodiff.Dual{}, parameters)
	out := make([]dual.Number, CostDim)
	residual, jac := autodiff.Jacobian(point, func(x []dual.Number) []dual.Number {
		return CostVectorTo[dual.Number](autodiff.Dual{}, out, &c.weights, x[:StateDim], x[StateDim:], params)
	})

	jx := jac.Slice(0, CostDim, 0, StateDim)
	ju := jac.Slice(0, CostDim, StateDim, StateDim+InputDim)
	r := mat.NewVecDense(CostDim, residual)

	quad := &CostQuadratic{
		Value: floats.Dot(residual, residual),
		Dfdx:  mat.NewVecDense(StateDim, nil),
		Dfdu:  mat.NewVecDense(InputDim, nil),
		Dfdxx: mat.NewSymDense(StateDim, nil),
		Dfduu: mat.NewSymDense(InputDim, nil),
		Dfdux: mat.NewDense(InputDim, StateDim, nil),
	}
	quad.Dfdx.MulVec(jx.T(), r)
	quad.Dfdx.ScaleVec(2, quad.Dfdx)
	quad.Dfdu.MulVec(ju.T(), r)
	quad.Dfdu.ScaleVec(2, quad.Dfdu)
	quad.Dfdxx.SymOuterK(2, jx.T())
	quad.Dfduu.SymOuterK(2, ju.T())
	quad.Dfdux.Mul(ju.T(), jx)
	quad.Dfdux.Scale(2, quad.Dfdux)
	return quad, nil
}

func formatMatrix(m mat.Matrix) string {
	return fmt.Sprintf("%v", mat.Formatted(m, mat.Squeeze()))
}

func (c *Cost) check(state, input, parameters []float64) error {
	return errors.Wrap(multierr.Combine(checkStateInput(state, input), checkParameters(parameters)),
		"invalid cost arguments")
}
