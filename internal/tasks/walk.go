package tasks

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/desertthunder/songpick/internal/shared"
)

// visitFunc receives one directory and its non-directory entries in name order.
type visitFunc func(dir string, files []fs.DirEntry) error

// walkTree visits root and, when recursive, its subdirectories top-down: a directory's files are
// visited before its subdirectories. ctx is checked before each directory is read.
//
// Unreadable directories are passed to onErr and skipped. Errors returned by visit stop the walk.
func walkTree(ctx context.Context, root string, recursive bool, visit visitFunc, onErr func(dir string, err error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if onErr != nil {
			onErr(root, err)
		}
		return nil
	}

	var files []fs.DirEntry
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		} else {
			files = append(files, entry)
		}
	}

	if err := visit(root, files); err != nil {
		return err
	}
	if !recursive {
		return nil
	}

	for _, dir := range dirs {
		if err := walkTree(ctx, filepath.Join(root, dir), recursive, visit, onErr); err != nil {
			return err
		}
	}
	return nil
}

// collectAudio returns the supported audio files below root in walk order.
func collectAudio(ctx context.Context, root string, recursive bool, onErr func(dir string, err error)) ([]string, error) {
	var paths []string
	err := walkTree(ctx, root, recursive, func(dir string, files []fs.DirEntry) error {
		for _, f := range files {
			if shared.IsSupportedAudio(f.Name()) {
				paths = append(paths, filepath.Join(dir, f.Name()))
			}
		}
		return nil
	}, onErr)
	return paths, err
}
