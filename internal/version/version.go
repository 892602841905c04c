// Package version exposes swarmie's version string, embedded from the
// VERSION file at build time.
package version

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var versionContent string

// Get returns the swarmie version, with whitespace trimmed.
func Get() string {
	return strings.TrimSpace(versionContent)
}
