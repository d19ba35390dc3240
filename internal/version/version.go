// Where: internal/version/version.go
// What: Version string for --version.
// Why: Prefer a release tag injected at link time, fall back to VCS build info.
package version

import (
	"runtime/debug"
	"strings"
)

// Version is set with -ldflags "-X github.com/sciurus/dockhub/internal/version.Version=v1.2.3".
var Version = ""

var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the linked version, the module version, or the short
// VCS revision (suffixed with "-dirty" for modified trees), in that order.
// It returns "dev" when none is known.
func GetVersion() string {
	if v := strings.TrimSpace(Version); v != "" {
		return v
	}
	info, ok := readBuildInfo()
	if !ok {
		return "dev"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if revision == "" {
		return "dev"
	}
	if modified {
		return revision + "-dirty"
	}
	return revision
}
