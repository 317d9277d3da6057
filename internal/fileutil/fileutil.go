// Package fileutil provides file copy and existence helpers.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sentinel errors for file utility operations.
var (
	ErrEmptyPath  = errors.New("path cannot be empty")
	ErrNotRegular = errors.New("not a regular file")
	ErrSameFile   = errors.New("source and destination are the same file")
)

// CopyFile copies src to dst, replacing dst if it exists, and carries over
// the permission bits and modification time of src. The access time of dst
// is set to the modification time of src.
//
// The parent directory of dst must already exist.
func CopyFile(src, dst string) error {
	if src == "" || dst == "" {
		return ErrEmptyPath
	}

	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegular, src)
	}
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(info, dstInfo) {
		return fmt.Errorf("%w: %s", ErrSameFile, dst)
	}

	in, err := os.Open(src) // #nosec G304 -- paths come from the build plan
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer func() { _ = in.Close() }()

	// Written beside dst and renamed over it: a read-only dst left by an
	// earlier copy of a read-only source cannot be reopened for writing.
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing destination: %w", err)
	}

	perm := info.Mode().Perm()
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("setting mode: %w", err)
	}
	if err := os.Chtimes(tmpPath, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("setting times: %w", err)
	}
	if err := replace(tmpPath, dst); err != nil {
		return fmt.Errorf("replacing destination: %w", err)
	}
	return nil
}

// replace renames tmp over dst. Windows refuses to rename over a read-only
// file, so dst is removed and the rename retried once.
func replace(tmp, dst string) error {
	err := os.Rename(tmp, dst)
	if err == nil {
		return nil
	}
	if _, rmErr := RemoveIfExists(dst); rmErr != nil {
		return err
	}
	return os.Rename(tmp, dst)
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// RemoveIfExists deletes path, treating a missing file as success.
// Reports whether a file was actually removed.
func RemoveIfExists(path string) (bool, error) {
	err := os.Remove(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
