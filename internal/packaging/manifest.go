package packaging

import (
	"encoding/json"
	"fmt"
	"os"
)

// ManifestFileName is the mod manifest file name in a project root.
const ManifestFileName = "Manifest.json"

// DefaultModVersion is used when the manifest has no modVersion.
const DefaultModVersion = "0.0.0"

// Manifest is the subset of Manifest.json the packager reads.
type Manifest struct {
	ModName    string `json:"modName"`
	ModVersion string `json:"modVersion"`
	ModAuthor  string `json:"modAuthor"`
}

// ReadManifest loads a manifest file. A missing or empty modVersion becomes
// DefaultModVersion.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid JSON in manifest %s: %w", path, err)
	}

	if m.ModVersion == "" {
		m.ModVersion = DefaultModVersion
	}
	return &m, nil
}
