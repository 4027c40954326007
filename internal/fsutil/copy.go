// Package fsutil provides the file and directory copy primitives shared by
// the renderer, the Libraries refresh, packaging and installation.
package fsutil

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hosmod/hosmod/internal/debug"
)

// CopyFile copies src to dst, creating parent directories, and carries over
// the permission bits and modification time of src.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("source is a directory: %s", src)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer func() { _ = srcFile.Close() }()

	if dir := filepath.Dir(dst); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create parent directory: %w", err)
		}
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm()|0600)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return fmt.Errorf("failed to copy file content: %w", err)
	}
	if err := dstFile.Close(); err != nil {
		return fmt.Errorf("failed to close destination file: %w", err)
	}

	return PreserveMetadata(dst, info)
}

// PreserveMetadata applies the mode and modification time from info to path.
// A zero modification time (embedded files) leaves the time untouched.
func PreserveMetadata(path string, info fs.FileInfo) error {
	if err := os.Chmod(path, info.Mode().Perm()|0600); err != nil {
		return fmt.Errorf("failed to set mode on %s: %w", path, err)
	}
	if mt := info.ModTime(); !mt.IsZero() {
		if err := os.Chtimes(path, mt, mt); err != nil {
			return fmt.Errorf("failed to set times on %s: %w", path, err)
		}
	}
	return nil
}

// CopyTree copies the contents of src into dst, merging with anything already
// present in dst. Existing files are overwritten.
func CopyTree(src, dst string) error {
	debug.Debug("[fsutil] CopyTree: %s -> %s", src, dst)
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			return nil
		}

		if err := CopyFile(path, target); err != nil {
			return fmt.Errorf("failed to copy %s: %w", path, err)
		}
		return nil
	})
}

// ReplaceTree removes dst if it exists and copies src to it.
func ReplaceTree(src, dst string) error {
	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("failed to remove %s: %w", dst, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create parent of %s: %w", dst, err)
	}
	return CopyTree(src, dst)
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Exists reports whether anything exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
