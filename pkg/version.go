// Package parkphotos holds application-level metadata.
package parkphotos

var (
	// Version is set by build flags.
	Version = "v0.1.0"

	// Build is set by build flags to the build timestamp.
	Build = "n/a"
)
