// Package settings provides build metadata, runtime configuration, and
// context helpers used across the csvx CLI.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "csvx"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds the settings of a single invocation.
type Run struct {
	MinLogLevel int8
	LogFile     string
	Interactive bool
	NoColor     bool
	InputPath   string // "-" for stdin
}

// NewCliParams returns the defaults for a CLI invocation: info level logging,
// non-interactive output read from stdin.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		InputPath:   "-",
	}
}
