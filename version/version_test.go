package version

import (
	"strings"
	"testing"
)

func saveAndRestore() func() {
	origVersion, origCommit, origBuildTime := Version, GitCommit, BuildTime
	return func() {
		Version = origVersion
		GitCommit = origCommit
		BuildTime = origBuildTime
	}
}

func TestGet_Defaults(t *testing.T) {
	defer saveAndRestore()()
	Version, GitCommit, BuildTime = "dev", "", ""

	info := Get()
	if info.Version != "dev" {
		t.Errorf("Version = %q, want dev", info.Version)
	}
	if info.IsRelease {
		t.Error("dev build should not be a release")
	}
}

func TestGet_Release(t *testing.T) {
	defer saveAndRestore()()
	Version, GitCommit, BuildTime = "1.2.0", "3fa9c1d", "2026-01-15T10:00:00Z"

	info := Get()
	if !info.IsRelease {
		t.Error("tagged build should be a release")
	}
	if info.GitCommit != "3fa9c1d" {
		t.Errorf("GitCommit = %q, want 3fa9c1d", info.GitCommit)
	}
}

func TestShort(t *testing.T) {
	defer saveAndRestore()()
	Version, GitCommit = "1.2.0", "3fa9c1d"

	got := Short()
	if !strings.HasPrefix(got, "1.2.0") {
		t.Errorf("Short() = %q, want 1.2.0 prefix", got)
	}
	if !strings.Contains(got, "3fa9c1d") {
		t.Errorf("Short() = %q, missing commit", got)
	}
}
