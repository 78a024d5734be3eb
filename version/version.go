// Package version reports build information and the version stamped into
// generated file headers.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/arbgen/errors"
)

// Build information. These variables are set at build time via ldflags.
var (
	// CommitHash is the git commit hash when the binary was built
	CommitHash = "dev"

	// BuildTime is when the binary was built
	BuildTime = "unknown"

	// Version is the semantic version (if tagged)
	Version = "dev"
)

// Info contains version and build information
type Info struct {
	CommitHash string `json:"commit_hash" yaml:"commit_hash"`
	BuildTime  string `json:"build_time" yaml:"build_time"`
	Version    string `json:"version" yaml:"version"`
	GoVersion  string `json:"go_version" yaml:"go_version"`
	Platform   string `json:"platform" yaml:"platform"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    resolve(),
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// resolve falls back to the module version when installed with go install.
func resolve() string {
	if Version != "dev" {
		return Version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return Version
}

// String returns a human-readable version string
func (i Info) String() string {
	if i.Version != "dev" {
		return fmt.Sprintf("arbgen %s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildTime)
	}
	return fmt.Sprintf("arbgen dev (commit %s, built %s)", i.CommitHash, i.BuildTime)
}

// Short returns a short version string with just the commit hash
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}

// Header is the version written into generated file headers. Dev builds
// stamp "dev".
func Header() string {
	return Get().Version
}

// Compatible reports whether output written by generator version written
// can be left alone by version current: both parse as semver and share a
// major version. A "dev" on either side is always compatible.
func Compatible(written, current string) (bool, error) {
	if written == "dev" || current == "dev" {
		return true, nil
	}
	w, err := semver.NewVersion(written)
	if err != nil {
		return false, errors.Wrapf(err, "parse header version %q", written)
	}
	c, err := semver.NewVersion(current)
	if err != nil {
		return false, errors.Wrapf(err, "parse version %q", current)
	}
	return w.Major() == c.Major(), nil
}
