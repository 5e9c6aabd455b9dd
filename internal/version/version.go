// Package version holds build metadata set at link time with -ldflags.
package version

var (
	// Version is the current application version
	Version = "0.1.0-dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)
