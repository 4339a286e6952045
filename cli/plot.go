package cli

import (
	"image/color"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"go.viam.com/smbmpc/logging"
	"go.viam.com/smbmpc/smb"
)

// PlotAction draws the xy path of a trajectory's samples and of the reference resolved between
// them.
func PlotAction(c *cli.Context) error {
	logger := newLogger(c)
	traj, err := smb.ReadTargetTrajectories(c.Path(trajectoryFlag))
	if err != nil {
		return err
	}
	p, err := trajectoryPlot(traj, c.Int(plotFlagResolution), logger)
	if err != nil {
		return err
	}
	out := c.Path(outFlag)
	if err := p.Save(6*vg.Inch, 6*vg.Inch, out); err != nil {
		return errors.Wrapf(err, "cannot save plot to %q", out)
	}
	printf(c.App.Writer, "wrote %s", out)
	return nil
}

func trajectoryPlot(traj *smb.TargetTrajectories, resolution int, logger logging.Logger) (*plot.Plot, error) {
	if resolution < 2 {
		return nil, errors.Errorf("plot resolution must be at least 2, got %d", resolution)
	}
	rm, err := smb.NewReferenceManager(traj, logger)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = "Reference trajectory"
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"
	p.Add(plotter.NewGrid())

	samplePts := make(plotter.XYs, traj.Len())
	for i := range samplePts {
		pt := traj.Pose(i).Point()
		samplePts[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}

	start := traj.TimeTrajectory[0]
	span := traj.TimeTrajectory[traj.Len()-1] - start
	resolvedPts := make(plotter.XYs, resolution)
	for i := range resolvedPts {
		params := rm.Parameters(start + span*float64(i)/float64(resolution-1))
		resolvedPts[i] = plotter.XY{X: params[0], Y: params[1]}
	}

	line, err := plotter.NewLine(resolvedPts)
	if err != nil {
		return nil, err
	}
	line.Color = color.RGBA{B: 200, A: 255}
	line.Width = vg.Points(1)

	scatter, err := plotter.NewScatter(samplePts)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Color = color.RGBA{R: 200, A: 255}

	p.Add(line, scatter)
	p.Legend.Add("resolved", line)
	p.Legend.Add("samples", scatter)
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}
