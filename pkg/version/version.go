// Package version reports build information injected at link time.
package version

// Set with -ldflags "-X github.com/rshade/contentlist/pkg/version.version=..."
//
//nolint:gochecknoglobals // Link-time variables.
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the release version, "dev" for local builds.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// String returns the one-line version description.
func String() string {
	return version + " (commit " + gitCommit + ", built " + buildDate + ")"
}
