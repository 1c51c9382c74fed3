package version

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the semantic version of the controller.
	Version = "0.1.0"
	// Commit is the short git SHA, or "none".
	Commit = "none"
	// BuildTime is the UTC build timestamp, or "unknown".
	BuildTime = "unknown"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Short returns the semantic version.
func Short() string {
	return Version
}

// Full returns the version with commit, build time and toolchain.
func Full() string {
	commit, built, goVersion := Commit, BuildTime, "unknown"

	if info, ok := readBuildInfo(); ok {
		goVersion = info.GoVersion

		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && commit == "none" && len(s.Value) >= 7:
				commit = s.Value[:7]
			case s.Key == "vcs.time" && built == "unknown":
				built = s.Value
			}
		}
	}

	return fmt.Sprintf("sumo %s (commit %s, built %s, %s)", Version, commit, built, goVersion)
}
