package cli

import (
	"runtime/debug"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// VersionAction prints the git revision this binary was built from and the gonum version it uses.
func VersionAction(c *cli.Context) error {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return errors.New("error reading build info")
	}
	if c.Bool(debugFlag) {
		printf(c.App.Writer, "%s", info.String())
	}
	settings := make(map[string]string, len(info.Settings))
	for _, setting := range info.Settings {
		settings[setting.Key] = setting.Value
	}
	version := "?"
	if rev, ok := settings["vcs.revision"]; ok && len(rev) >= 8 {
		version = rev[:8]
		if settings["vcs.modified"] == "true" {
			version += "+"
		}
	}
	gonumVersion := "?"
	for _, dep := range info.Deps {
		if dep.Path == "gonum.org/v1/gonum" {
			gonumVersion = dep.Version
		}
	}
	printf(c.App.Writer, "Git=%s gonum=%s", version, gonumVersion)
	return nil
}
