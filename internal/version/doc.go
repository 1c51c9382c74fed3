// Package version reports which build of the controller is running.
//
// Version, Commit and BuildTime are set with -ldflags at release time. Local
// builds fall back to the VCS stamp the Go toolchain embeds.
package version
