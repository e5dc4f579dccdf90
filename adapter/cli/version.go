package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/felixgeelhaar/optiflow/adapter/cli.Version=..." at release time.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// CurrentBuild returns the linker-provided build data. Local builds without
// ldflags fall back to the VCS revision recorded by the Go toolchain.
func CurrentBuild() BuildInfo {
	info := BuildInfo{Version: Version, Commit: Commit, BuildDate: BuildDate, GoVersion: runtime.Version()}
	if info.Commit != "none" {
		return info
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.Commit = s.Value
			case "vcs.time":
				info.BuildDate = s.Value
			}
		}
	}
	return info
}

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		build := CurrentBuild()
		if versionShort {
			fmt.Fprintln(out, build.Version)
			return
		}
		fmt.Fprintf(out, "optiflow %s (%s)\n", build.Version, build.GoVersion)
		fmt.Fprintf(out, "  commit: %s\n", build.Commit)
		fmt.Fprintf(out, "  built:  %s\n", build.BuildDate)
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version")
	rootCmd.AddCommand(versionCmd)
}
