package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnv(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvFileName), []byte(content), 0644))
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvModsPath, EnvManagedDir, EnvDotnet, EnvILSpy, EnvNuGetURL,
		EnvHarmonyPackage, EnvNuGetTimeout, EnvLogFile, EnvLogMaxSize, EnvLogMaxBackups, EnvLogMaxAge} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(LoadOptions{SearchDirs: []string{t.TempDir()}})
	require.NoError(t, err)

	want := DefaultConfig()
	assert.Equal(t, want.DotnetPath, cfg.DotnetPath)
	assert.Equal(t, want.ILSpyPath, cfg.ILSpyPath)
	assert.Equal(t, want.NuGet, cfg.NuGet)
	assert.Equal(t, want.Log, cfg.Log)
	assert.Empty(t, cfg.ModsPath)
	assert.Empty(t, cfg.ManagedDir)
	assert.Empty(t, cfg.EnvFiles)
}

func TestLoad_ClosestEnvFileWins(t *testing.T) {
	clearEnv(t)

	parent := t.TempDir()
	project := filepath.Join(parent, "IronTanks")
	writeEnv(t, parent, "HOS_MODS_PATH=/parent/mods\nHOS_MANAGED_DIR=/parent/managed\n")
	writeEnv(t, project, "HOS_MODS_PATH=/project/mods\nHOSMOD_NUGET_TIMEOUT=15s\n")

	cfg, err := Load(LoadOptions{SearchDirs: []string{project, parent}})
	require.NoError(t, err)

	assert.Equal(t, "/project/mods", cfg.ModsPath)
	assert.Equal(t, "/parent/managed", cfg.ManagedDir)
	assert.Equal(t, 15*time.Second, cfg.NuGet.Timeout)
	assert.Equal(t, []string{
		filepath.Join(project, EnvFileName),
		filepath.Join(parent, EnvFileName),
	}, cfg.EnvFiles)
}

func TestLoad_EnvironmentBeatsEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvModsPath, "/env/mods")

	dir := t.TempDir()
	writeEnv(t, dir, "HOS_MODS_PATH=/file/mods\nHOS_MANAGED_DIR=/file/managed\n")

	cfg, err := Load(LoadOptions{SearchDirs: []string{dir}})
	require.NoError(t, err)
	assert.Equal(t, "/env/mods", cfg.ModsPath)
	assert.Equal(t, "/file/managed", cfg.ManagedDir)

	cfg, err = Load(LoadOptions{SearchDirs: []string{dir}, SkipEnvironment: true})
	require.NoError(t, err)
	assert.Equal(t, "/file/mods", cfg.ModsPath)
}

func TestLoad_QuotedValues(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	writeEnv(t, dir, "# game install\nHOS_MANAGED_DIR=\"/games/Hex of Steel/Hex of Steel_Data/Managed\"\n")

	cfg, err := Load(LoadOptions{SearchDirs: []string{dir}})
	require.NoError(t, err)
	assert.Equal(t, "/games/Hex of Steel/Hex of Steel_Data/Managed", cfg.ManagedDir)
}

func TestLoad_ValidationFailure(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	writeEnv(t, dir, "HOSMOD_NUGET_URL=ftp://example.com\n")

	_, err := Load(LoadOptions{SearchDirs: []string{dir}})
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, ConfigValidationFailed, cfgErr.Type)
	assert.Equal(t, EnvNuGetURL, cfgErr.Key)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"defaults valid", func(*Config) {}, ""},
		{"empty dotnet", func(c *Config) { c.DotnetPath = "" }, EnvDotnet},
		{"empty ilspy", func(c *Config) { c.ILSpyPath = "" }, EnvILSpy},
		{"relative feed", func(c *Config) { c.NuGet.BaseURL = "/feed" }, EnvNuGetURL},
		{"empty package", func(c *Config) { c.NuGet.HarmonyPackageID = "" }, EnvHarmonyPackage},
		{"zero timeout", func(c *Config) { c.NuGet.Timeout = 0 }, EnvNuGetTimeout},
		{"negative size", func(c *Config) { c.Log.MaxSizeMB = -1 }, EnvLogMaxSize},
		{"negative backups", func(c *Config) { c.Log.MaxBackups = -1 }, EnvLogMaxBackups},
		{"negative age", func(c *Config) { c.Log.MaxAgeDays = -1 }, EnvLogMaxAge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := Validate(cfg)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Key)
		})
	}
}

func TestConfigError_Message(t *testing.T) {
	err := invalidValue(EnvNuGetTimeout, "timeout must be positive")
	assert.Equal(t, "invalid configuration: HOSMOD_NUGET_TIMEOUT: timeout must be positive", err.Error())

	cause := errors.New("bad line")
	err2 := unreadableEnvFile("/p/.env", cause)
	assert.Equal(t, "invalid configuration: /p/.env: cannot parse .env file: bad line", err2.Error())
	assert.ErrorIs(t, err2, cause)

	err3 := &ConfigError{Type: ConfigInvalid, Key: EnvModsPath, Source: "/p/.env", Message: "invalid path"}
	assert.Equal(t, "invalid configuration: HOS_MODS_PATH in /p/.env: invalid path", err3.Error())
}

func TestClosestEnvFile(t *testing.T) {
	assert.Equal(t, EnvFileName, LoadOptions{}.ClosestEnvFile())
	assert.Equal(t, filepath.Join("/p", EnvFileName), LoadOptions{SearchDirs: []string{"/p", "/"}}.ClosestEnvFile())
}

func TestLoad_ExpandsPathSettings(t *testing.T) {
	clearEnv(t)
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	dir := t.TempDir()
	t.Chdir(dir)
	writeEnv(t, dir, "HOS_MODS_PATH=~/hos/MODS\nHOS_MANAGED_DIR=  game/Managed  \nHOSMOD_LOG_FILE=logs/hosmod.log\n")

	cfg, err := Load(LoadOptions{SearchDirs: []string{dir}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "hos", "MODS"), cfg.ModsPath)
	assert.Equal(t, filepath.Join(dir, "game", "Managed"), cfg.ManagedDir)
	assert.Equal(t, filepath.Join(dir, "logs", "hosmod.log"), cfg.Log.File)
	assert.Equal(t, filepath.Join(dir, EnvFileName), cfg.EnvFile)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/mods")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "mods"), got)

	got, err = ExpandPath("")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = ExpandPath("rel")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}
