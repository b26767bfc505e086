package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Set at build time using -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
)

// Info describes the build of this module.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	IsDirty   bool   `json:"is_dirty"`
}

// IsRelease reports whether the build carries a clean release version.
func (i Info) IsRelease() bool {
	return i.Version != "dev" && !i.IsDirty
}

// String renders the version with its short commit, e.g. "1.4.0-3f2a9c1".
func (i Info) String() string {
	parts := []string{i.Version}
	if i.GitCommit != "" {
		parts = append(parts, i.GitCommit)
	}
	if i.IsDirty {
		parts = append(parts, "dirty")
	}
	return strings.Join(parts, "-")
}

// Get returns the build information, filling gaps from the embedded VCS
// settings when ldflags were not supplied.
func Get() Info {
	info := Info{Version: Version, GitCommit: GitCommit}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = strings.TrimPrefix(bi.Main.Version, "v")
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = shortCommit(s.Value)
			}
		case "vcs.modified":
			info.IsDirty = s.Value == "true"
		}
	}
	return info
}

// UserAgent returns "serialization/<version>" for telemetry identification.
func UserAgent() string {
	return fmt.Sprintf("serialization/%s", Get().Version)
}

func shortCommit(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
