package shared

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// EnsureDir creates dir and any missing parents.
//
// Returns true when the directory did not exist before the call.
func EnsureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%w: %s exists and is not a directory", ErrIOFailure, dir)
		}
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("%w: failed to stat %s: %v", ErrIOFailure, dir, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("%w: failed to create %s: %v", ErrIOFailure, dir, err)
	}
	return true, nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FileExists reports whether anything exists at path.
func FileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// CopyFile copies src to dst, keeping the source permissions and modification time.
//
// dst is created exclusively, so an existing file is never overwritten. A partially written
// destination is removed when the copy fails.
func CopyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: failed to open source: %v", ErrIOFailure, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("%w: failed to stat source: %v", ErrIOFailure, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("%w: failed to create destination: %v", ErrIOFailure, err)
	}

	defer func() {
		if err != nil {
			out.Close()
			os.Remove(dst)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return fmt.Errorf("%w: failed to copy data: %v", ErrIOFailure, err)
	}

	if err = out.Close(); err != nil {
		return fmt.Errorf("%w: failed to close destination: %v", ErrIOFailure, err)
	}

	if err = os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("%w: failed to preserve modification time: %v", ErrIOFailure, err)
	}

	return nil
}
