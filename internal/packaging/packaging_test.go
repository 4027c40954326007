package packaging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkdir(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0755))
}

func touch(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, "iron-tanks-v1.2.0-", Prefix("iron-tanks", "1.2.0"))
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, root string)
		want  string
	}{
		{
			name:  "missing root",
			setup: func(t *testing.T, root string) {},
			want:  "id-v1.2.0-1",
		},
		{
			name:  "empty root",
			setup: func(t *testing.T, root string) { mkdir(t, root) },
			want:  "id-v1.2.0-1",
		},
		{
			name: "max based with gap and non-numeric",
			setup: func(t *testing.T, root string) {
				for _, n := range []string{"1", "2", "7", "abc"} {
					mkdir(t, filepath.Join(root, "id-v1.2.0-"+n))
				}
			},
			want: "id-v1.2.0-8",
		},
		{
			name: "file extension stripped",
			setup: func(t *testing.T, root string) {
				mkdir(t, filepath.Join(root, "id-v1.2.0-1"))
				touch(t, filepath.Join(root, "id-v1.2.0-3.zip"), "zip")
			},
			want: "id-v1.2.0-4",
		},
		{
			name: "multi-dot file truncated at first dot",
			setup: func(t *testing.T, root string) {
				mkdir(t, filepath.Join(root, "id-v1.2.0-2"))
				touch(t, filepath.Join(root, "id-v1.2.0-9.tar.gz"), "tgz")
			},
			want: "id-v1.2.0-10",
		},
		{
			name: "dotted file suffix counts leading digits",
			setup: func(t *testing.T, root string) {
				touch(t, filepath.Join(root, "id-v1.2.0-4.1.zip"), "zip")
			},
			want: "id-v1.2.0-5",
		},
		{
			name: "file with non-numeric head ignored",
			setup: func(t *testing.T, root string) {
				touch(t, filepath.Join(root, "id-v1.2.0-x9.zip"), "zip")
			},
			want: "id-v1.2.0-1",
		},
		{
			name: "directory with dot is not stripped",
			setup: func(t *testing.T, root string) {
				mkdir(t, filepath.Join(root, "id-v1.2.0-5.old"))
			},
			want: "id-v1.2.0-1",
		},
		{
			name: "other versions and packages ignored",
			setup: func(t *testing.T, root string) {
				mkdir(t, filepath.Join(root, "id-v1.1.0-9"))
				mkdir(t, filepath.Join(root, "other-v1.2.0-9"))
				mkdir(t, filepath.Join(root, "id-v1.2.0-"))
			},
			want: "id-v1.2.0-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := filepath.Join(t.TempDir(), "package")
			tt.setup(t, root)

			got := Allocate(root, "id", "1.2.0")
			assert.Equal(t, filepath.Join(root, tt.want), got)
		})
	}
}

func TestAllocate_RootIsFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "package")
	touch(t, root, "not a dir")

	assert.Equal(t, filepath.Join(root, "id-v0.0.1-1"), Allocate(root, "id", "0.0.1"))
}

func TestReadManifest(t *testing.T) {
	dir := t.TempDir()

	withVersion := filepath.Join(dir, "a.json")
	touch(t, withVersion, `{"modName": "Iron Tanks", "modVersion": "1.4.2"}`)
	m, err := ReadManifest(withVersion)
	require.NoError(t, err)
	assert.Equal(t, "1.4.2", m.ModVersion)
	assert.Equal(t, "Iron Tanks", m.ModName)

	noVersion := filepath.Join(dir, "b.json")
	touch(t, noVersion, `{"modName": "Iron Tanks"}`)
	m, err = ReadManifest(noVersion)
	require.NoError(t, err)
	assert.Equal(t, DefaultModVersion, m.ModVersion)

	broken := filepath.Join(dir, "c.json")
	touch(t, broken, `{`)
	_, err = ReadManifest(broken)
	assert.Error(t, err)
}

func TestPrepareAndStage(t *testing.T) {
	project := t.TempDir()
	manifest := filepath.Join(project, ManifestFileName)
	dll := filepath.Join(project, "output", "net48", "IronTanks.dll")
	touch(t, manifest, `{"modVersion": "1.0.0"}`)
	touch(t, dll, "MZ")
	touch(t, filepath.Join(project, "assets", "Sprites", "tank.png"), "png")

	packageRoot := filepath.Join(project, "package")
	mkdir(t, filepath.Join(packageRoot, "iron-tanks-v1.0.0-1"))

	layout, err := Prepare(packageRoot, "iron-tanks", "1.0.0", "Iron Tanks")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(packageRoot, "iron-tanks-v1.0.0-2"), layout.PackageDir)
	assert.DirExists(t, layout.LibrariesDir)

	require.NoError(t, layout.Stage(manifest, dll, filepath.Join(project, "assets")))

	assert.FileExists(t, filepath.Join(layout.ModRoot, ManifestFileName))
	assert.FileExists(t, filepath.Join(layout.LibrariesDir, "IronTanks.dll"))
	assert.FileExists(t, filepath.Join(layout.ModRoot, "Sprites", "tank.png"))
}

func TestStage_NoAssets(t *testing.T) {
	project := t.TempDir()
	manifest := filepath.Join(project, ManifestFileName)
	dll := filepath.Join(project, "Mod.dll")
	touch(t, manifest, `{}`)
	touch(t, dll, "MZ")

	layout, err := Prepare(filepath.Join(project, "package"), "mod", "0.0.0", "Mod")
	require.NoError(t, err)
	require.NoError(t, layout.Stage(manifest, dll, filepath.Join(project, "assets")))
}

func TestInstall_ReplacesExisting(t *testing.T) {
	modRoot := filepath.Join(t.TempDir(), "pkg", "Iron Tanks")
	touch(t, filepath.Join(modRoot, ManifestFileName), "new")

	installRoot := filepath.Join(t.TempDir(), "MODS")
	touch(t, filepath.Join(installRoot, "Iron Tanks", "stale.txt"), "old")

	target, err := Install(modRoot, installRoot)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(installRoot, "Iron Tanks"), target)
	assert.FileExists(t, filepath.Join(target, ManifestFileName))
	assert.NoFileExists(t, filepath.Join(target, "stale.txt"))
}
