// Package version provides build version information.
package version

// Version is the release version. Overridden at build time using ldflags.
var Version = "development"

// Commit is the git commit hash. Overridden at build time using ldflags.
var Commit = "unknown"

// String returns the version including the commit hash when known.
func String() string {
	if Commit != "unknown" && Commit != "" {
		return Version + "+" + Commit
	}
	return Version
}
