package generator

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hosmod/hosmod/internal/debug"
	"github.com/hosmod/hosmod/internal/fsutil"
)

// Writer writes files to the filesystem.
type Writer interface {
	// WriteFile writes content to a file with the specified permissions.
	WriteFile(path string, content []byte, mode os.FileMode) error

	// CreateDir creates a directory and any necessary parent directories.
	CreateDir(path string) error

	// Exists checks if a file or directory exists at the given path.
	Exists(path string) bool

	// CopyMetadata applies mode and modification time from a source file.
	CopyMetadata(path string, info fs.FileInfo) error
}

// FileWriter implements Writer for filesystem operations.
type FileWriter struct{}

// NewFileWriter creates a new FileWriter.
func NewFileWriter() Writer {
	return &FileWriter{}
}

// WriteFile writes content to a file with the specified permissions.
// Creates parent directories if they don't exist.
// Writes atomically using a temporary file and rename.
func (w *FileWriter) WriteFile(path string, content []byte, mode os.FileMode) error {
	debug.Debug("[generator] Writing file: %s (size: %d bytes, mode: %o)", path, len(content), mode)

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := w.CreateDir(dir); err != nil {
			return newGeneratorError(GeneratorWriteFailed,
				"failed to create parent directory",
				path,
				err)
		}
	}

	// Embedded templates are read-only; generated files stay owner-writable.
	fileMode := mode.Perm() | 0600

	tempFile := path + ".tmp"
	f, err := os.OpenFile(tempFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileMode)
	if err != nil {
		return newGeneratorError(GeneratorWriteFailed,
			"failed to create temporary file",
			path,
			err)
	}

	_, err = f.Write(content)
	closeErr := f.Close()

	if err != nil {
		_ = os.Remove(tempFile)
		return newGeneratorError(GeneratorWriteFailed,
			"failed to write file content",
			path,
			err)
	}

	if closeErr != nil {
		_ = os.Remove(tempFile)
		return newGeneratorError(GeneratorWriteFailed,
			"failed to close file",
			path,
			closeErr)
	}

	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return newGeneratorError(GeneratorWriteFailed,
			"failed to rename temporary file",
			path,
			err)
	}

	return nil
}

// CreateDir creates a directory and any necessary parent directories.
// Uses 0755 permissions for created directories.
func (w *FileWriter) CreateDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return newGeneratorError(GeneratorWriteFailed,
			"failed to create directory",
			path,
			err)
	}
	return nil
}

// Exists checks if a file or directory exists at the given path.
func (w *FileWriter) Exists(path string) bool {
	return fsutil.Exists(path)
}

// CopyMetadata applies mode and modification time from info to path.
func (w *FileWriter) CopyMetadata(path string, info fs.FileInfo) error {
	if err := fsutil.PreserveMetadata(path, info); err != nil {
		return newGeneratorError(GeneratorWriteFailed, "failed to preserve file metadata", path, err)
	}
	return nil
}
