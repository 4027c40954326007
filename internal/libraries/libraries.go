// Package libraries maintains a project's Libraries directory: the game
// assemblies a mod compiles against plus the Harmony patching library.
package libraries

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hosmod/hosmod/internal/debug"
	"github.com/hosmod/hosmod/internal/fsutil"
)

// DirName is the Libraries directory inside a project root.
const DirName = "Libraries"

// HarmonyDLL is the Harmony assembly file name.
const HarmonyDLL = "0Harmony.dll"

// GameAssembly is the main game assembly; it is also the decompiler input.
const GameAssembly = "Assembly-CSharp.dll"

// RequiredDLLs are copied from the game's Managed directory on every refresh.
var RequiredDLLs = []string{
	GameAssembly,
	"Newtonsoft.Json.dll",
	"PhotonUnityNetworking.dll",
	"LeTai.TranslucentImage.dll",
	"Unity.TextMeshPro.dll",
	"UnityEngine.dll",
	"UnityEngine.AudioModule.dll",
	"UnityEngine.CoreModule.dll",
	"UnityEngine.ImageConversionModule.dll",
	"UnityEngine.TextRenderingModule.dll",
	"UnityEngine.UI.dll",
	"UnityEngine.UIModule.dll",
}

// HarmonyFetcher downloads the Harmony assembly and reports its version.
type HarmonyFetcher interface {
	FetchHarmony(ctx context.Context) (version string, data []byte, err error)
}

// HarmonyFetcherFunc adapts a function to HarmonyFetcher.
type HarmonyFetcherFunc func(ctx context.Context) (string, []byte, error)

// FetchHarmony implements HarmonyFetcher.
func (f HarmonyFetcherFunc) FetchHarmony(ctx context.Context) (string, []byte, error) {
	return f(ctx)
}

// MissingDLLError reports a required assembly absent from the Managed directory.
type MissingDLLError struct {
	Name string
	Path string
}

// Error implements the error interface.
func (e *MissingDLLError) Error() string {
	return fmt.Sprintf("required DLL %q not found at %s", e.Name, e.Path)
}

// Result summarizes a refresh.
type Result struct {
	Dir            string
	HarmonyVersion string // empty when the existing Harmony was kept
	Removed        []string
	Copied         []string
}

// Refresh rebuilds projectRoot/Libraries from managedDir. Harmony is fetched
// only when absent; every other DLL is removed before the required set is
// copied.
func Refresh(ctx context.Context, projectRoot, managedDir string, fetcher HarmonyFetcher) (*Result, error) {
	if !fsutil.IsDir(managedDir) {
		return nil, fmt.Errorf("managed directory %s is not a directory", managedDir)
	}

	dir := filepath.Join(projectRoot, DirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	result := &Result{Dir: dir}
	debug.DebugSection("Libraries refresh")
	debug.DebugValue("[libraries] Directory", dir)
	debug.DebugValue("[libraries] Managed", managedDir)

	harmonyPath := filepath.Join(dir, HarmonyDLL)
	if !fsutil.Exists(harmonyPath) {
		version, data, err := fetcher.FetchHarmony(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to download Harmony: %w", err)
		}
		if err := os.WriteFile(harmonyPath, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", harmonyPath, err)
		}
		result.HarmonyVersion = version
		debug.Debug("[libraries] Downloaded Harmony %s", version)
	}

	removed, err := removeStale(dir)
	if err != nil {
		return nil, err
	}
	result.Removed = removed

	for _, name := range RequiredDLLs {
		src := filepath.Join(managedDir, name)
		if !fsutil.Exists(src) {
			return nil, &MissingDLLError{Name: name, Path: src}
		}
		if err := fsutil.CopyFile(src, filepath.Join(dir, name)); err != nil {
			return nil, fmt.Errorf("failed to copy %s: %w", name, err)
		}
		result.Copied = append(result.Copied, name)
	}

	return result, nil
}

// removeStale deletes every *.dll in dir except Harmony. The extension is
// matched case-insensitively on every platform.
func removeStale(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var removed []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(name), ".dll") {
			continue
		}
		if strings.EqualFold(name, HarmonyDLL) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return nil, fmt.Errorf("failed to remove %s: %w", name, err)
		}
		removed = append(removed, name)
	}
	return removed, nil
}
