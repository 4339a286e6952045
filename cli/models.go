package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/smbmpc/logging"
	"go.viam.com/smbmpc/smb"
	"go.viam.com/smbmpc/spatialmath"
	"go.viam.com/smbmpc/utils"
)

// newLogger writes to the app's error stream so logs never mix with command output.
func newLogger(c *cli.Context) logging.Logger {
	level := logging.WARN
	if c.Bool(debugFlag) {
		level = logging.DEBUG
	}
	return logging.NewWriterLogger("smbmpc", level, c.App.ErrWriter)
}

func formatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', 6, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatMatrix(m mat.Matrix) string {
	return fmt.Sprintf("  %.6g", mat.Formatted(m, mat.Prefix("  "), mat.Squeeze()))
}

// stateAndInput reads and validates the --state and --input flags.
func stateAndInput(c *cli.Context) ([]float64, []float64, error) {
	state := c.Float64Slice(stateFlag)
	input := c.Float64Slice(inputFlag)
	if err := multierr.Combine(smb.ValidateState(state), smb.ValidateInput(input)); err != nil {
		return nil, nil, errors.Wrap(err, "invalid state or input")
	}
	return state, input, nil
}

// ParamsAction resolves the reference pose of a trajectory at each requested time.
func ParamsAction(c *cli.Context) error {
	logger := newLogger(c)
	traj, err := smb.ReadTargetTrajectories(c.Path(trajectoryFlag))
	if err != nil {
		return err
	}
	rm, err := smb.NewReferenceManager(traj, logger)
	if err != nil {
		return err
	}
	for _, t := range c.Float64Slice(timeFlag) {
		params := rm.Parameters(t)
		printf(c.App.Writer, "t=%g %s %s", t, formatVector(params), smb.PoseFromState(params))
	}
	return nil
}

// ShowAction prints a trajectory.
func ShowAction(c *cli.Context) error {
	traj, err := smb.ReadTargetTrajectories(c.Path(trajectoryFlag))
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", traj)
	return nil
}

// FlowAction evaluates the dynamics.
func FlowAction(c *cli.Context) error {
	state, input, err := stateAndInput(c)
	if err != nil {
		return err
	}
	sd := smb.NewSystemDynamics(newLogger(c))

	if !c.Bool(jacobiansFlag) {
		flow, err := sd.Flow(0, state, input)
		if err != nil {
			return err
		}
		printf(c.App.Writer, "flow: %s", formatVector(flow))
		return nil
	}

	lin, err := sd.LinearApproximation(0, state, input)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "flow: %s", formatVector(lin.Value))
	printf(c.App.Writer, "dfdx:\n%s", formatMatrix(lin.Dfdx))
	printf(c.App.Writer, "dfdu:\n%s", formatMatrix(lin.Dfdu))
	return nil
}

// CostAction evaluates the tracking cost.
func CostAction(c *cli.Context) error {
	logger := newLogger(c)
	state, input, err := stateAndInput(c)
	if err != nil {
		return err
	}

	cfg := smb.DefaultCostConfig()
	if c.IsSet(costConfigFlag) {
		if cfg, err = smb.ReadCostConfig(c.Path(costConfigFlag)); err != nil {
			return err
		}
	}
	cost, err := smb.NewCost(cfg.Weights(), logger)
	if err != nil {
		return err
	}

	var params []float64
	switch {
	case c.IsSet(paramsFlag) && c.IsSet(trajectoryFlag):
		return errors.Errorf("only one of --%s or --%s may be given", paramsFlag, trajectoryFlag)
	case c.IsSet(paramsFlag):
		params = c.Float64Slice(paramsFlag)
		if err := smb.ValidateState(params); err != nil {
			return errors.Wrap(err, "invalid reference pose")
		}
	case c.IsSet(trajectoryFlag):
		traj, err := smb.ReadTargetTrajectories(c.Path(trajectoryFlag))
		if err != nil {
			return err
		}
		params = cost.GetParameters(c.Float64(timeFlag), traj)
	default:
		return errors.Errorf("one of --%s or --%s is required", paramsFlag, trajectoryFlag)
	}

	if !c.Bool(quadraticFlag) {
		residual, err := cost.CostVectorFunction(0, state, input, params)
		if err != nil {
			return err
		}
		value, err := cost.Value(0, state, input, params)
		if err != nil {
			return err
		}
		printf(c.App.Writer, "residual: %s", formatVector(residual))
		printf(c.App.Writer, "value: %g", value)
		return nil
	}

	quad, err := cost.QuadraticApproximation(0, state, input, params)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "value: %g", quad.Value)
	printf(c.App.Writer, "dfdx: %s", formatVector(quad.Dfdx.RawVector().Data))
	printf(c.App.Writer, "dfdu: %s", formatVector(quad.Dfdu.RawVector().Data))
	printf(c.App.Writer, "dfdxx:\n%s", formatMatrix(quad.Dfdxx))
	printf(c.App.Writer, "dfduu:\n%s", formatMatrix(quad.Dfduu))
	printf(c.App.Writer, "dfdux:\n%s", formatMatrix(quad.Dfdux))
	return nil
}

// ArcAction writes a constant-input arc as a target trajectory.
func ArcAction(c *cli.Context) error {
	logger := newLogger(c)
	start := spatialmath.NewPose(
		r3.Vector{X: c.Float64(arcFlagX), Y: c.Float64(arcFlagY)},
		spatialmath.NewYawR4AA(utils.DegToRad(c.Float64(arcFlagYaw))).ToQuat(),
	)
	traj, err := smb.NewArcTrajectory(start,
		c.Float64(arcFlagSpeed), c.Float64(arcFlagYawRate), c.Float64(arcFlagDuration), c.Int(arcFlagSamples))
	if err != nil {
		return err
	}
	logger.Debugw("generated arc", "start", start, "samples", traj.Len())

	if !c.IsSet(outFlag) {
		return smb.WriteTargetTrajectories(c.App.Writer, traj)
	}
	//nolint:gosec
	f, err := os.Create(c.Path(outFlag))
	if err != nil {
		return errors.Wrap(err, "cannot create output file")
	}
	defer goutils.UncheckedErrorFunc(f.Close)
	if err := smb.WriteTargetTrajectories(f, traj); err != nil {
		return err
	}
	printf(c.App.Writer, "wrote %d samples to %s", traj.Len(), c.Path(outFlag))
	return nil
}
