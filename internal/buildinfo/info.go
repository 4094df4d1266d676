// Package buildinfo carries the release metadata stamped into the reckon
// binary.
package buildinfo

import "fmt"

// Set via -ldflags "-X github.com/cleared-dev/reckon/internal/buildinfo.Version=..." at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String is the text printed by `reckon --version`.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
