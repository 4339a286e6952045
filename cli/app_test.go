package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.viam.com/test"

	"go.viam.com/smbmpc/smb"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runAppStreams(t, args...)
	return out, err
}

func runAppStreams(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run(append([]string{"smbmpc"}, args...))
	return out.String(), errOut.String(), err
}

func writeArc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arc.json")
	out, err := runApp(t, "arc", "--v", "1", "--omega", "0", "--duration", "5", "--samples", "11", "--out", path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "wrote 11 samples")
	return path
}

func TestArcCommand(t *testing.T) {
	path := writeArc(t)
	traj, err := smb.ReadTargetTrajectories(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, traj.Len(), test.ShouldEqual, 11)
	test.That(t, traj.TimeTrajectory[10], test.ShouldEqual, 5.)
	test.That(t, traj.Pose(10).Point().X, test.ShouldAlmostEqual, 5)

	out, err := runApp(t, "arc", "--samples", "2", "--omega", "1")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, `"state_trajectory"`)

	_, err = runApp(t, "arc", "--samples", "0")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestDebugLogsGoToErrWriter(t *testing.T) {
	out, errOut, err := runAppStreams(t, "--debug", "arc", "--samples", "3", "--omega", "0.5")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "generated arc")
	test.That(t, errOut, test.ShouldContainSubstring, "cli/models.go")

	traj, err := smb.DecodeTargetTrajectories(strings.NewReader(out))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, traj.Len(), test.ShouldEqual, 3)
}

func TestParamsCommand(t *testing.T) {
	path := writeArc(t)
	out, err := runApp(t, "params", "--trajectory", path, "--time", "2.5", "--time", "100")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "t=2.5 [2.5 ")
	test.That(t, out, test.ShouldContainSubstring, "t=100 [5 ")

	_, err = runApp(t, "params", "--trajectory", filepath.Join(t.TempDir(), "nope.json"), "--time", "1")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cannot open target trajectories")
}

func TestShowCommand(t *testing.T) {
	out, err := runApp(t, "show", "--trajectory", writeArc(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "X:5.000, Y:0.000, Z:0.000")
}

func TestFlowCommand(t *testing.T) {
	out, err := runApp(t, "flow", "--state", "0,0,0,0,0,0,1", "--input", "1,0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "flow: [1 0 0")

	out, err = runApp(t, "flow", "--state", "0,0,0,0,0,0,1", "--input", "1,0.5", "--jacobians")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "dfdx:")
	test.That(t, out, test.ShouldContainSubstring, "dfdu:")

	_, err = runApp(t, "flow", "--state", "0,0,0,0,0,0,2", "--input", "1")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unit quaternion")
	test.That(t, err.Error(), test.ShouldContainSubstring, "input has dimension 1")
}

func TestCostCommand(t *testing.T) {
	out, err := runApp(t, "cost",
		"--state", "1,2,0,0,0,0,1", "--input", "0,0", "--params", "1,2,0,0,0,0,1")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "value: 0\n")

	configPath := filepath.Join(t.TempDir(), "cost.json")
	test.That(t, os.WriteFile(configPath, []byte(`{"q_position": [2, 2, 2], "q_orientation": [1, 1, 1], "r": [1, 1]}`), 0o600),
		test.ShouldBeNil)
	out, err = runApp(t, "cost", "--cost-config", configPath,
		"--state", "1,0,0,0,0,0,1", "--input", "0,0", "--params", "0,0,0,0,0,0,1")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "residual: [2 0 0 0 0 0 0 0]")
	test.That(t, out, test.ShouldContainSubstring, "value: 4\n")

	out, err = runApp(t, "cost", "--trajectory", writeArc(t), "--time", "1",
		"--state", "0,0,0,0,0,0,1", "--input", "0,0", "--quadratic")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "value: 1\n")
	test.That(t, out, test.ShouldContainSubstring, "dfdux:")

	_, err = runApp(t, "cost", "--state", "0,0,0,0,0,0,1", "--input", "0,0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "one of --params or --trajectory is required")
}

func TestPlotCommand(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "arc.png")
	stdout, err := runApp(t, "plot", "--trajectory", writeArc(t), "--out", out, "--resolution", "50")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, stdout, test.ShouldContainSubstring, "wrote")

	info, err := os.Stat(out)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, info.Size(), test.ShouldBeGreaterThan, 0)

	_, err = runApp(t, "plot", "--trajectory", writeArc(t), "--out", out, "--resolution", "1")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestVersionCommand(t *testing.T) {
	out, err := runApp(t, "version")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "Git=")
}

func TestValidationErrorsReturnFromRun(t *testing.T) {
	exitCodes := []int{}
	prevExiter := cli.OsExiter
	cli.OsExiter = func(code int) { exitCodes = append(exitCodes, code) }
	defer func() { cli.OsExiter = prevExiter }()

	_, err := runApp(t, "flow", "--state", "0,0,0,0,0,0,2", "--input", "1")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "invalid state or input")
	test.That(t, multierr.Errors(err), test.ShouldHaveLength, 1)

	broken := filepath.Join(t.TempDir(), "broken.json")
	test.That(t, os.WriteFile(broken, []byte(`{"time_trajectory": [1, 0, NaN], "state_trajectory": [[0,0,0,0,0,0,1],[0,0,0,0,0,0,1],[0,0,0,0,0,0,3]]}`), 0o600),
		test.ShouldBeNil)
	_, err = runApp(t, "show", "--trajectory", broken)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cannot parse target trajectories")

	broken = filepath.Join(t.TempDir(), "unsorted.json")
	test.That(t, os.WriteFile(broken, []byte(`{"time_trajectory": [1, 0], "state_trajectory": [[0,0,0,0,0,0,1],[0,0,0,0,0,0,2]]}`), 0o600),
		test.ShouldBeNil)
	_, err = runApp(t, "params", "--trajectory", broken, "--time", "0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "invalid target trajectories")
	test.That(t, err.Error(), test.ShouldContainSubstring, "is before time 0")
	test.That(t, err.Error(), test.ShouldContainSubstring, "state 1")

	configPath := filepath.Join(t.TempDir(), "cost.json")
	test.That(t, os.WriteFile(configPath, []byte(`{"q_position": [1, 1]}`), 0o600), test.ShouldBeNil)
	_, err = runApp(t, "cost", "--cost-config", configPath,
		"--state", "0,0,0,0,0,0,1", "--input", "0,0", "--params", "0,0,0,0,0,0,1")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "invalid cost config")

	test.That(t, exitCodes, test.ShouldBeEmpty)
}
