// Package version carries build-time identification, stamped via -ldflags.
// The values are recorded with every processing run so an output database can
// always be traced back to the binary that produced it.
package version

var (
	// Version is the release version, "dev" for unstamped builds.
	Version = "dev"
	// GitSHA is the commit the binary was built from.
	GitSHA = "unknown"
	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// String renders the full build identification.
func String() string {
	return Version + " (" + GitSHA + ", built " + BuildTime + ")"
}
