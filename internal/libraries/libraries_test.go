package libraries

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func managedDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range RequiredDLLs {
		writeFile(t, filepath.Join(dir, name), "managed:"+name)
	}
	writeFile(t, filepath.Join(dir, "System.dll"), "not required")
	return dir
}

type countingFetcher struct {
	calls int
	err   error
}

func (f *countingFetcher) FetchHarmony(ctx context.Context) (string, []byte, error) {
	f.calls++
	if f.err != nil {
		return "", nil, f.err
	}
	return "2.3.3", []byte("harmony"), nil
}

func TestRefresh_FreshProject(t *testing.T) {
	project := t.TempDir()
	fetcher := &countingFetcher{}

	result, err := Refresh(context.Background(), project, managedDir(t), fetcher)
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, "2.3.3", result.HarmonyVersion)
	assert.Equal(t, RequiredDLLs, result.Copied)

	data, err := os.ReadFile(filepath.Join(project, DirName, HarmonyDLL))
	require.NoError(t, err)
	assert.Equal(t, "harmony", string(data))

	for _, name := range RequiredDLLs {
		assert.FileExists(t, filepath.Join(project, DirName, name))
	}
	assert.NoFileExists(t, filepath.Join(project, DirName, "System.dll"))
}

func TestRefresh_KeepsHarmonyAndRemovesStale(t *testing.T) {
	project := t.TempDir()
	libs := filepath.Join(project, DirName)
	writeFile(t, filepath.Join(libs, HarmonyDLL), "pinned")
	writeFile(t, filepath.Join(libs, "Old.Plugin.DLL"), "stale")
	writeFile(t, filepath.Join(libs, "notes.txt"), "keep")
	writeFile(t, filepath.Join(libs, "UnityEngine.dll"), "old engine")

	fetcher := &countingFetcher{}
	result, err := Refresh(context.Background(), project, managedDir(t), fetcher)
	require.NoError(t, err)

	assert.Equal(t, 0, fetcher.calls)
	assert.Empty(t, result.HarmonyVersion)
	assert.ElementsMatch(t, []string{"Old.Plugin.DLL", "UnityEngine.dll"}, result.Removed)

	data, err := os.ReadFile(filepath.Join(libs, HarmonyDLL))
	require.NoError(t, err)
	assert.Equal(t, "pinned", string(data))

	data, err = os.ReadFile(filepath.Join(libs, "UnityEngine.dll"))
	require.NoError(t, err)
	assert.Equal(t, "managed:UnityEngine.dll", string(data))

	assert.FileExists(t, filepath.Join(libs, "notes.txt"))
	assert.NoFileExists(t, filepath.Join(libs, "Old.Plugin.DLL"))
}

func TestRefresh_MissingRequiredDLL(t *testing.T) {
	managed := managedDir(t)
	require.NoError(t, os.Remove(filepath.Join(managed, "UnityEngine.UI.dll")))

	_, err := Refresh(context.Background(), t.TempDir(), managed, &countingFetcher{})

	var missing *MissingDLLError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "UnityEngine.UI.dll", missing.Name)
	assert.Equal(t, filepath.Join(managed, "UnityEngine.UI.dll"), missing.Path)
}

func TestRefresh_FetchFailure(t *testing.T) {
	boom := errors.New("offline")
	_, err := Refresh(context.Background(), t.TempDir(), managedDir(t), &countingFetcher{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestRefresh_ManagedNotDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "Managed")
	writeFile(t, file, "")

	_, err := Refresh(context.Background(), t.TempDir(), file, &countingFetcher{})
	assert.Error(t, err)
}

func TestHarmonyFetcherFunc(t *testing.T) {
	f := HarmonyFetcherFunc(func(ctx context.Context) (string, []byte, error) {
		return "1.0", []byte("x"), nil
	})
	v, data, err := f.FetchHarmony(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.0", v)
	assert.Equal(t, "x", string(data))
}
