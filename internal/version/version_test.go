package version

import (
	"runtime/debug"
	"testing"
)

func stubBuildInfo(t *testing.T, info *debug.BuildInfo, ok bool) {
	t.Helper()
	prev := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, ok }
	t.Cleanup(func() { readBuildInfo = prev })
}

func TestGetVersionPrefersLinkedVersion(t *testing.T) {
	prev := Version
	Version = "v1.2.3"
	t.Cleanup(func() { Version = prev })

	if got := GetVersion(); got != "v1.2.3" {
		t.Fatalf("GetVersion() = %q", got)
	}
}

func TestGetVersionFromVCS(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.modified", Value: "true"},
		},
	}, true)

	if got := GetVersion(); got != "0123456-dirty" {
		t.Fatalf("GetVersion() = %q", got)
	}
}

func TestGetVersionWithoutBuildInfo(t *testing.T) {
	stubBuildInfo(t, nil, false)

	if got := GetVersion(); got != "dev" {
		t.Fatalf("GetVersion() = %q", got)
	}
}
