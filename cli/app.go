// Package cli contains the smbmpc command line: evaluating the base models and generating,
// resolving, and plotting reference trajectories.
package cli

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	debugFlag      = "debug"
	costConfigFlag = "cost-config"
	trajectoryFlag = "trajectory"
	timeFlag       = "time"
	stateFlag      = "state"
	inputFlag      = "input"
	paramsFlag     = "params"
	jacobiansFlag  = "jacobians"
	quadraticFlag  = "quadratic"
	outFlag        = "out"

	arcFlagSpeed    = "v"
	arcFlagYawRate  = "omega"
	arcFlagDuration = "duration"
	arcFlagSamples  = "samples"
	arcFlagX        = "x"
	arcFlagY        = "y"
	arcFlagYaw      = "yaw"

	plotFlagResolution = "resolution"
)

var app = &cli.App{
	Name:            "smbmpc",
	Usage:           "evaluate the differential-drive MPC models",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    debugFlag,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
	},
	Commands: []*cli.Command{
		{
			Name:      "params",
			Usage:     "resolve the reference pose of a trajectory at one or more times",
			UsageText: "smbmpc params --trajectory FILE --time 0.5 --time 1.5",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:     trajectoryFlag,
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "JSON target trajectories `FILE`",
				},
				&cli.Float64SliceFlag{
					Name:     timeFlag,
					Required: true,
					Usage:    "query time in seconds; may be repeated",
				},
			},
			Action: ParamsAction,
		},
		{
			Name:  "show",
			Usage: "print the samples of a trajectory as a table",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:     trajectoryFlag,
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "JSON target trajectories `FILE`",
				},
			},
			Action: ShowAction,
		},
		{
			Name:  "flow",
			Usage: "evaluate the state derivative for a state and input",
			Flags: []cli.Flag{
				&cli.Float64SliceFlag{
					Name:     stateFlag,
					Required: true,
					Usage:    "state as px,py,pz,qx,qy,qz,qw",
				},
				&cli.Float64SliceFlag{
					Name:     inputFlag,
					Required: true,
					Usage:    "input as v,omega",
				},
				&cli.BoolFlag{
					Name:  jacobiansFlag,
					Usage: "also print the derivatives with respect to state and input",
				},
			},
			Action: FlowAction,
		},
		{
			Name:  "cost",
			Usage: "evaluate the tracking cost against a reference pose",
			Flags: []cli.Flag{
				&cli.Float64SliceFlag{
					Name:     stateFlag,
					Required: true,
					Usage:    "state as px,py,pz,qx,qy,qz,qw",
				},
				&cli.Float64SliceFlag{
					Name:     inputFlag,
					Required: true,
					Usage:    "input as v,omega",
				},
				&cli.Float64SliceFlag{
					Name:  paramsFlag,
					Usage: "reference pose as px,py,pz,qx,qy,qz,qw",
				},
				&cli.PathFlag{
					Name:  trajectoryFlag,
					Usage: "resolve the reference from this JSON trajectory `FILE` instead of --params",
				},
				&cli.Float64Flag{
					Name:  timeFlag,
					Usage: "query time used with --trajectory",
				},
				&cli.PathFlag{
					Name:  costConfigFlag,
					Usage: "JSON cost weights `FILE`; unit weights when omitted",
				},
				&cli.BoolFlag{
					Name:  quadraticFlag,
					Usage: "also print the gradients and Gauss-Newton Hessians",
				},
			},
			Action: CostAction,
		},
		{
			Name:  "arc",
			Usage: "generate a constant-input arc as a JSON target trajectory",
			Flags: []cli.Flag{
				&cli.Float64Flag{Name: arcFlagSpeed, Value: 1, Usage: "forward speed in m/s"},
				&cli.Float64Flag{Name: arcFlagYawRate, Usage: "yaw rate in rad/s"},
				&cli.Float64Flag{Name: arcFlagDuration, Value: 5, Usage: "duration in seconds"},
				&cli.IntFlag{Name: arcFlagSamples, Value: 11, Usage: "number of samples"},
				&cli.Float64Flag{Name: arcFlagX, Usage: "start x in m"},
				&cli.Float64Flag{Name: arcFlagY, Usage: "start y in m"},
				&cli.Float64Flag{Name: arcFlagYaw, Usage: "start heading in degrees"},
				&cli.PathFlag{Name: outFlag, Usage: "write to `FILE` instead of stdout"},
			},
			Action: ArcAction,
		},
		{
			Name:  "plot",
			Usage: "plot the samples of a trajectory and the reference resolved between them",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:     trajectoryFlag,
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "JSON target trajectories `FILE`",
				},
				&cli.PathFlag{
					Name:  outFlag,
					Value: "trajectory.png",
					Usage: "output image `FILE`; the extension picks the format",
				},
				&cli.IntFlag{
					Name:  plotFlagResolution,
					Value: 200,
					Usage: "number of resolved points drawn",
				},
			},
			Action: PlotAction,
		},
		{
			Name:   "version",
			Usage:  "print version info for this program",
			Action: VersionAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}

func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}
