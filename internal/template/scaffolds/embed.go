// Package scaffolds embeds the default Hex of Steel mod project template.
package scaffolds

import (
	"embed"
	"io/fs"
)

//go:embed all:default
var scaffoldsFS embed.FS

// Default returns the default mod template rooted at its top directory.
func Default() fs.FS {
	sub, err := fs.Sub(scaffoldsFS, "default")
	if err != nil {
		// The embedded directory is fixed at build time.
		panic(err)
	}
	return sub
}
