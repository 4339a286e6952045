package smb

// Dynamics is what a solver needs from a system model.
type Dynamics interface {
	StateDim() int
	InputDim() int
	Flow(time float64, state, input []float64) ([]float64, error)
	LinearApproximation(time float64, state, input []float64) (*FlowLinearization, error)
}

// CostFunction is what a solver needs from a parameterised least-squares cost.
type CostFunction interface {
	StateDim() int
	InputDim() int
	ParameterDim() int
	GetParameters(time float64, traj *TargetTrajectories) []float64
	CostVectorFunction(time float64, state, input, parameters []float64) ([]float64, error)
	Value(time float64, state, input, parameters []float64) (float64, error)
	QuadraticApproximation(time float64, state, input, parameters []float64) (*CostQuadratic, error)
}

var (
	_ Dynamics     = (*SystemDynamics)(nil)
	_ CostFunction = (*Cost)(nil)
)
