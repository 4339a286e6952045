package smb

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/smbmpc/utils"
)

// UnitQuaternionTolerance is how far from 1 the norm of a stored orientation may be before
// validation rejects it.
const UnitQuaternionTolerance = 1e-6

func checkStateInput(state, input []float64) error {
	var err error
	if len(state) != StateDim {
		err = multierr.Append(err, utils.NewDimensionMismatchError("state", StateDim, len(state)))
	}
	if len(input) != InputDim {
		err = multierr.Append(err, utils.NewDimensionMismatchError("input", InputDim, len(input)))
	}
	return err
}

func checkParameters(parameters []float64) error {
	if len(parameters) != StateDim {
		return utils.NewDimensionMismatchError("parameters", StateDim, len(parameters))
	}
	return nil
}

// ValidateState checks that state has StateDim finite entries and a unit orientation.
func ValidateState(state []float64) error {
	if len(state) != StateDim {
		return utils.NewDimensionMismatchError("state", StateDim, len(state))
	}
	var err error
	for i, v := range state {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			err = multierr.Append(err, errors.Errorf("state[%d] is not finite: %v", i, v))
		}
	}
	if err != nil {
		return err
	}
	q := ReadRotation(state)
	norm := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if !utils.Float64AlmostEqual(norm, 1, UnitQuaternionTolerance) {
		return errors.Errorf("state orientation has norm %v, expected a unit quaternion", norm)
	}
	return nil
}

// ValidateInput checks that input has InputDim finite entries.
func ValidateInput(input []float64) error {
	if len(input) != InputDim {
		return utils.NewDimensionMismatchError("input", InputDim, len(input))
	}
	var err error
	for i, v := range input {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			err = multierr.Append(err, errors.Errorf("input[%d] is not finite: %v", i, v))
		}
	}
	return err
}

// ValidateTargetTrajectories checks the preconditions GetParameters relies on: at least one
// sample, one time per state, non-decreasing finite times, and valid states. Every problem found is
// reported.
func ValidateTargetTrajectories(traj *TargetTrajectories) error {
	if traj == nil {
		return errors.New("target trajectories are nil")
	}
	if len(traj.StateTrajectory) == 0 {
		return errors.New("target trajectories have no states")
	}
	if len(traj.TimeTrajectory) != len(traj.StateTrajectory) {
		return errors.Errorf("target trajectories have %d times but %d states",
			len(traj.TimeTrajectory), len(traj.StateTrajectory))
	}

	var err error
	for i, t := range traj.TimeTrajectory {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			err = multierr.Append(err, errors.Errorf("time %d is not finite: %v", i, t))
			continue
		}
		if i > 0 && t < traj.TimeTrajectory[i-1] {
			err = multierr.Append(err, errors.Errorf("time %d (%v) is before time %d (%v)",
				i, t, i-1, traj.TimeTrajectory[i-1]))
		}
	}
	for i, state := range traj.StateTrajectory {
		if stateErr := ValidateState(state); stateErr != nil {
			err = multierr.Append(err, errors.Wrapf(stateErr, "state %d", i))
		}
	}
	return err
}
