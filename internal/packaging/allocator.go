// Package packaging allocates build output directories, reads the mod
// manifest, stages built artifacts and installs staged mods.
package packaging

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hosmod/hosmod/internal/debug"
)

// Prefix returns the package directory prefix shared by every build of
// version: "<packageID>-v<version>-".
func Prefix(packageID, version string) string {
	return packageID + "-v" + version + "-"
}

// Allocate returns the path of the next unused package directory under
// packageRoot for version. The index is one greater than the highest numeric
// suffix among entries sharing the prefix; gaps are not reused. For files,
// the suffix is truncated at its first dot before the digit test. A missing or
// unreadable packageRoot counts as having no prior builds.
func Allocate(packageRoot, packageID, version string) string {
	prefix := Prefix(packageID, version)
	highest := HighestIndex(packageRoot, prefix)
	next := prefix + strconv.Itoa(highest+1)

	debug.Debug("[packaging] Allocate: root=%s prefix=%s highest=%d next=%s", packageRoot, prefix, highest, next)
	return filepath.Join(packageRoot, next)
}

// HighestIndex returns the largest numeric suffix among entries of dir
// whose names start with prefix, or 0 when there is none.
func HighestIndex(dir, prefix string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}

	highest := 0
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}

		suffix := name[len(prefix):]
		if !entry.IsDir() {
			// Truncate at the first dot: "pfx-3.tar.gz" counts as 3.
			if i := strings.IndexByte(suffix, '.'); i >= 0 {
				suffix = suffix[:i]
			}
		}

		if n, ok := parseIndex(suffix); ok && n > highest {
			highest = n
		}
	}
	return highest
}

// parseIndex accepts a non-empty run of ASCII digits.
func parseIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
