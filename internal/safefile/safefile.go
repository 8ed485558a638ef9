// Package safefile reads configuration files without following symlinks or
// blocking on special files.
package safefile

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNotRegularFile is returned for symlinks, FIFOs, devices, sockets and
// directories.
var ErrNotRegularFile = errors.New("not a regular file")

// ErrTooLarge is returned by ReadRegular when a file exceeds its size limit.
var ErrTooLarge = errors.New("file too large")

// OpenRegular opens path only if it names a regular file.
//
// The path is checked with Lstat before opening so a symlink is rejected
// rather than followed, and the opened descriptor is checked again in case
// the file was swapped in between. The caller must close the returned file.
func OpenRegular(path string) (*os.File, os.FileInfo, error) {
	linkInfo, err := os.Lstat(path)
	if err != nil {
		return nil, nil, err
	}
	if !linkInfo.Mode().IsRegular() {
		return nil, nil, ErrNotRegularFile
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, ErrNotRegularFile
	}
	return f, info, nil
}

// ReadRegular reads a whole regular file of at most maxSize bytes.
// A file that grows past maxSize while being read is rejected too.
func ReadRegular(path string, maxSize int64) ([]byte, error) {
	f, info, err := OpenRegular(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if info.Size() > maxSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, info.Size(), maxSize)
	}

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, maxSize)
	}
	return data, nil
}

// SanitizePathError strips the path from an *os.PathError so error messages
// shown to users do not leak file system layout.
func SanitizePathError(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%s: %w", pathErr.Op, pathErr.Err)
	}
	return err
}
