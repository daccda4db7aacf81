// Package output writes fixture artifacts to disk.
package output

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// EnsureDir creates dir and its parents. An existing directory is not an error.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return nil
}

// WriteFile truncates dir/name and writes data through a buffered writer.
// The file handle is released before returning, on success or failure.
func WriteFile(dir, name string, data []byte) (path string, err error) {
	path = filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return path, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close %s: %w", path, cerr))
		}
	}()

	w := bufio.NewWriter(f)
	if _, err := w.Write(data); err != nil {
		return path, fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return path, fmt.Errorf("flush %s: %w", path, err)
	}
	return path, nil
}
