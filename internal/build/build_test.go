package build

import "testing"

func TestVersion(t *testing.T) {
	if Version() == "" {
		t.Fatal("Version() returned an empty string")
	}

	old := version
	version = "9.9.9"
	defer func() { version = old }()
	if got := Version(); got != "9.9.9" {
		t.Errorf("Version() = %q, want ldflags override 9.9.9", got)
	}
}

func TestBuildMetadataDefaults(t *testing.T) {
	if GitCommit() == "" || BuildDate() == "" {
		t.Error("build metadata should default to a placeholder, not empty")
	}
}
