package scaffolds

import (
	"io/fs"
	"testing"
)

func TestDefault_ContainsProjectFiles(t *testing.T) {
	tmpl := Default()

	for _, name := range []string{
		"Manifest.json",
		"TemplateScript.cs",
		"template_project.csproj",
		"template_project.sln",
		".gitignore",
		"Properties/AssemblyInfo.cs",
	} {
		if _, err := fs.Stat(tmpl, name); err != nil {
			t.Errorf("embedded template is missing %s: %v", name, err)
		}
	}
}

func TestDefault_IsRooted(t *testing.T) {
	if _, err := fs.Stat(Default(), "default"); err == nil {
		t.Error("Default() should be rooted inside the default directory")
	}
}
