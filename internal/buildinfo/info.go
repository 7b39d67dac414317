// Package buildinfo carries release metadata stamped in with -ldflags -X.
package buildinfo

var (
	// Version is the release tag.
	Version = "dev"
	// Commit is the short git hash the binary was built from.
	Commit = "none"
	// Date is the build time.
	Date = "unknown"
)
