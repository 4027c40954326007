package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/hosmod/hosmod/internal/debug"
	"github.com/hosmod/hosmod/internal/template/placeholder"
)

// ProjectFileName is the per-project settings file written by the scaffold.
const ProjectFileName = "hosmod.yaml"

// DefaultOutputDir is where the build writes the mod assembly.
const DefaultOutputDir = "output/net48"

// ProjectSettings are the values a scaffolded project records about itself.
type ProjectSettings struct {
	ModName         string `mapstructure:"mod_name" yaml:"mod_name"`
	ModFolderName   string `mapstructure:"mod_folder_name" yaml:"mod_folder_name"`
	PackagePrefix   string `mapstructure:"package_prefix" yaml:"package_prefix"`
	ProjectFilename string `mapstructure:"project_filename" yaml:"project_filename"`
	OutputDLLName   string `mapstructure:"output_dll_name" yaml:"output_dll_name"`
	OutputDir       string `mapstructure:"output_dir" yaml:"output_dir"`
}

const projectFileHeader = "# Project settings read by \"hosmod deploy\" and \"hosmod get-dlls\".\n"

// SettingsFromValues derives project settings from the substitution values.
func SettingsFromValues(values placeholder.Values) ProjectSettings {
	return ProjectSettings{
		ModName:         values["mod_name"],
		ModFolderName:   values["mod_folder_name"],
		PackagePrefix:   values["package_prefix"],
		ProjectFilename: values["project_filename"],
		OutputDLLName:   values["output_dll_name"],
		OutputDir:       DefaultOutputDir,
	}
}

// WriteProject encodes settings to ProjectFileName in root, replacing any
// existing file, and returns the file path.
func WriteProject(root string, settings ProjectSettings) (string, error) {
	path := filepath.Join(root, ProjectFileName)

	data, err := yaml.Marshal(settings)
	if err != nil {
		return "", NewScaffoldError("failed to encode project settings", err)
	}
	if err := os.WriteFile(path, append([]byte(projectFileHeader), data...), 0644); err != nil {
		return "", NewScaffoldError(fmt.Sprintf("failed to write %s", path), err)
	}

	debug.Debug("[app] Wrote project settings to %s", path)
	return path, nil
}

// LoadProject reads ProjectFileName from root.
func LoadProject(root string) (*ProjectSettings, error) {
	path := filepath.Join(root, ProjectFileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, NewArtifactMissingError("project settings", path)
		}
		return nil, NewValidationError(fmt.Sprintf("failed to access %s", path), err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("output_dir", DefaultOutputDir)

	if err := v.ReadInConfig(); err != nil {
		return nil, NewValidationError(fmt.Sprintf("failed to read %s", path), err)
	}

	var s ProjectSettings
	if err := v.Unmarshal(&s); err != nil {
		return nil, NewValidationError(fmt.Sprintf("invalid project settings in %s", path), err)
	}

	if s.ModFolderName == "" {
		s.ModFolderName = s.ModName
	}

	missing := []struct{ key, value string }{
		{"mod_folder_name", s.ModFolderName},
		{"package_prefix", s.PackagePrefix},
		{"project_filename", s.ProjectFilename},
		{"output_dll_name", s.OutputDLLName},
	}
	for _, m := range missing {
		if m.value == "" {
			return nil, NewValidationError(fmt.Sprintf("%s: %s is required", path, m.key), nil)
		}
	}

	debug.DebugJSON("[app] Project settings", s)
	return &s, nil
}

// OutputDLLPath returns the built assembly path under root.
func (s *ProjectSettings) OutputDLLPath(root string) string {
	return filepath.Join(root, filepath.FromSlash(s.OutputDir), s.OutputDLLName)
}
