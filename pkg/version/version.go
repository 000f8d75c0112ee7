// Package version provides version information for the codefuse CLI.
package version

import (
	"fmt"
	"runtime"
)

// These variables are populated at build time using -ldflags.
// Example:
// go build -ldflags "-X 'codefuse/pkg/version.Version=1.2.3' -X 'codefuse/pkg/version.Commit=abcdefg' -X 'codefuse/pkg/version.BuildTime=2024-04-27T15:04:05Z'"
var (
	Version   = "dev"     // Semantic version of the application
	Commit    = "none"    // Git commit hash
	BuildTime = "unknown" // Build timestamp
)

// AppName is reported in logs and version output.
const AppName = "codefuse"

// Info contains comprehensive version information.
type Info struct {
	Version   string `yaml:"version"`
	GitCommit string `yaml:"commit"`
	BuildTime string `yaml:"buildTime"`
	GoVersion string `yaml:"goVersion"`
	Platform  string `yaml:"platform"`
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns the version information in a single line, e.g.
// codefuse version 1.2.3 (commit: abcdefg) built at 2024-04-27T15:04:05Z with go1.22.4 on linux/amd64
func (i Info) String() string {
	return fmt.Sprintf(
		"%s version %s (commit: %s) built at %s with %s on %s",
		AppName,
		i.Version,
		i.GitCommit,
		i.BuildTime,
		i.GoVersion,
		i.Platform,
	)
}
