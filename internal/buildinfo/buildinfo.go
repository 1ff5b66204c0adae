// Package buildinfo holds version metadata stamped in at link time.
package buildinfo

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
