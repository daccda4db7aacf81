package output

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// BundlePath returns the archive path used for dir: a sibling <dir>.tar.zst.
// Relative directories such as "." are resolved first so the archive gets
// the directory's real name.
func BundlePath(dir string) string {
	return bundleRoot(dir) + ".tar.zst"
}

func bundleRoot(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return filepath.Clean(dir)
	}
	return abs
}

// Bundle packs the named files from dir into a zstd-compressed tar at dest
// and returns the archive size.
func Bundle(dest, dir string, names []string) (size int64, err error) {
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return 0, fmt.Errorf("open bundle %s: %w", dest, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close bundle %s: %w", dest, cerr))
		}
	}()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return 0, fmt.Errorf("zstd writer: %w", err)
	}
	tw := tar.NewWriter(enc)

	for _, name := range names {
		if err := addFile(tw, dir, name); err != nil {
			_ = enc.Close()
			return 0, err
		}
	}
	if err := tw.Close(); err != nil {
		_ = enc.Close()
		return 0, fmt.Errorf("finish tar: %w", err)
	}
	if err := enc.Close(); err != nil {
		return 0, fmt.Errorf("finish zstd: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat bundle %s: %w", dest, err)
	}
	return info.Size(), nil
}

func addFile(tw *tar.Writer, dir, name string) error {
	path := filepath.Join(dir, name)
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("bundle %s: %w", path, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("bundle %s: %w", path, err)
	}
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("bundle header %s: %w", path, err)
	}
	hdr.Name = filepath.ToSlash(filepath.Join(filepath.Base(bundleRoot(dir)), name))

	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("bundle header %s: %w", path, err)
	}
	if _, err := io.Copy(tw, src); err != nil {
		return fmt.Errorf("bundle copy %s: %w", path, err)
	}
	return nil
}
