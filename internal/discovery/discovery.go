// Package discovery locates the Hex of Steel MODS and Managed directories.
//
// Both lookups are an ordered candidate list checked with a predicate; the
// first candidate that satisfies it wins. An explicit override, when set,
// is always the first candidate.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hosmod/hosmod/internal/debug"
)

const (
	// ModsPathEnv overrides the MODS directory.
	ModsPathEnv = "HOS_MODS_PATH"
	// ManagedDirEnv overrides the Managed directory.
	ManagedDirEnv = "HOS_MANAGED_DIR"

	studio = "War Frogs Studio"
	game   = "Hex of Steel"
)

// Predicate decides whether a candidate path is acceptable.
type Predicate func(path string) bool

// IsDir accepts existing directories.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Lookup describes one discovery: what is being looked for, how to override
// it and the ordered candidates.
type Lookup struct {
	Description string
	EnvVar      string
	EnvFile     string
	Candidates  []string
}

// NotFoundError is returned when no candidate satisfies the predicate.
type NotFoundError struct {
	Description string
	EnvVar      string
	// EnvFile is the .env file the override belongs in; empty means unknown.
	EnvFile    string
	Candidates []string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "could not locate %s.\nChecked the following paths:\n", e.Description)
	if len(e.Candidates) == 0 {
		b.WriteString(" - (no predefined locations)\n")
	}
	for _, c := range e.Candidates {
		fmt.Fprintf(&b, " - %s\n", c)
	}
	envFile := "the closest .env file"
	if e.EnvFile != "" {
		envFile = e.EnvFile
	}
	fmt.Fprintf(&b, "Set %s in your environment or in %s to override the detection.", e.EnvVar, envFile)
	return b.String()
}

// FirstExisting returns the first candidate accepted by pred.
func FirstExisting(candidates []string, pred Predicate) (string, bool) {
	for _, c := range candidates {
		if pred(c) {
			return c, true
		}
	}
	return "", false
}

// Resolve runs the lookup with pred and returns the first accepted candidate.
func (l Lookup) Resolve(pred Predicate) (string, error) {
	if path, ok := FirstExisting(l.Candidates, pred); ok {
		debug.Debug("[discovery] %s resolved to %s", l.Description, path)
		return path, nil
	}
	return "", &NotFoundError{
		Description: l.Description,
		EnvVar:      l.EnvVar,
		EnvFile:     l.EnvFile,
		Candidates:  l.Candidates,
	}
}

// Environment supplies the inputs the candidate lists depend on.
type Environment struct {
	// Home is the user's home directory.
	Home string
	// Getenv reads platform environment variables such as ProgramFiles.
	Getenv func(string) string
	// EnvFile is named in not-found errors as the place for overrides.
	EnvFile string
}

// SystemEnvironment returns the environment of the running process.
func SystemEnvironment() Environment {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "~"
	}
	return Environment{Home: home, Getenv: os.Getenv}
}

// ModsDir builds the MODS directory lookup. override is tried first when set.
func ModsDir(env Environment, override string) Lookup {
	h := env.Home
	candidates := []string{
		filepath.Join(h, ".var", "app", "com.valvesoftware.Steam", "config", "unity3d", studio, game, "MODS"),
		filepath.Join(h, ".config", "unity3d", studio, game, "MODS"),
		filepath.Join(h, "Library", "Application Support", studio, game, "MODS"),
		filepath.Join(h, "AppData", "LocalLow", studio, game, "MODS"),
		filepath.Join(h, game, "MODS"),
	}
	return Lookup{
		Description: "the Hex of Steel MODS directory",
		EnvVar:      ModsPathEnv,
		EnvFile:     env.EnvFile,
		Candidates:  withOverride(env, override, candidates),
	}
}

// ManagedDir builds the game's Managed directory lookup.
func ManagedDir(env Environment, override string) Lookup {
	h := env.Home
	data := filepath.Join(game, game+"_Data", "Managed")
	macBundle := filepath.Join(game+".app", "Contents", "Resources", "Data", "Managed")

	candidates := []string{
		filepath.Join(h, ".var", "app", "com.valvesoftware.Steam", ".steam", "steam", "steamapps", "common", data),
		filepath.Join(h, ".steam", "steam", "steamapps", "common", data),
		filepath.Join(h, ".local", "share", "Steam", "steamapps", "common", data),
		filepath.Join(h, "SteamLibrary", "steamapps", "common", data),
		filepath.Join("/Applications", macBundle),
		filepath.Join(h, "Library", "Application Support", "Steam", "steamapps", "common", game, macBundle),
		filepath.Join(h, "Library", "Application Support", studio, game, game+"_Data", "Managed"),
	}

	getenv := env.Getenv
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	for _, root := range []string{getenv("ProgramFiles(x86)"), getenv("ProgramFiles"), "C:/Program Files (x86)"} {
		if root == "" {
			continue
		}
		candidates = append(candidates, filepath.Join(root, "Steam", "steamapps", "common", data))
	}
	candidates = append(candidates, filepath.Join(h, game+"_Data", "Managed"))

	return Lookup{
		Description: "the Hex of Steel Managed directory",
		EnvVar:      ManagedDirEnv,
		EnvFile:     env.EnvFile,
		Candidates:  withOverride(env, override, candidates),
	}
}

// withOverride prepends override (with ~ expanded) and removes duplicates
// while keeping the first occurrence.
func withOverride(env Environment, override string, candidates []string) []string {
	all := candidates
	if override != "" {
		all = append([]string{expandHome(env.Home, override)}, candidates...)
	}

	seen := make(map[string]struct{}, len(all))
	unique := make([]string, 0, len(all))
	for _, c := range all {
		c = filepath.Clean(c)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		unique = append(unique, c)
	}
	return unique
}

func expandHome(home, path string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		return filepath.Join(home, path[2:])
	}
	return path
}
