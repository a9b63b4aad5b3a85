package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEnsureDir(t *testing.T) {
	t.Run("creates missing directories", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "b")

		created, err := EnsureDir(dir)
		if err != nil {
			t.Fatalf("EnsureDir failed: %v", err)
		}
		if !created {
			t.Error("expected created to be true")
		}
		if !IsDir(dir) {
			t.Error("expected directory to exist")
		}
	})

	t.Run("existing directory", func(t *testing.T) {
		created, err := EnsureDir(t.TempDir())
		if err != nil {
			t.Fatalf("EnsureDir failed: %v", err)
		}
		if created {
			t.Error("expected created to be false")
		}
	})

	t.Run("path is a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := EnsureDir(path); !errors.Is(err, ErrIOFailure) {
			t.Errorf("expected ErrIOFailure, got %v", err)
		}
	})
}

func TestCopyFile(t *testing.T) {
	t.Run("copies data and modification time", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src.mp3")
		dst := filepath.Join(dir, "dst.mp3")

		if err := os.WriteFile(src, []byte("audio data"), 0644); err != nil {
			t.Fatal(err)
		}
		mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
		if err := os.Chtimes(src, mtime, mtime); err != nil {
			t.Fatal(err)
		}

		if err := CopyFile(src, dst); err != nil {
			t.Fatalf("CopyFile failed: %v", err)
		}

		data, err := os.ReadFile(dst)
		if err != nil {
			t.Fatalf("failed to read copy: %v", err)
		}
		if string(data) != "audio data" {
			t.Errorf("unexpected content %q", data)
		}

		info, err := os.Stat(dst)
		if err != nil {
			t.Fatal(err)
		}
		if !info.ModTime().Equal(mtime) {
			t.Errorf("expected mtime %v, got %v", mtime, info.ModTime())
		}
	})

	t.Run("never overwrites", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src.mp3")
		dst := filepath.Join(dir, "dst.mp3")
		os.WriteFile(src, []byte("new"), 0644)
		os.WriteFile(dst, []byte("old"), 0644)

		if err := CopyFile(src, dst); !errors.Is(err, ErrIOFailure) {
			t.Errorf("expected ErrIOFailure, got %v", err)
		}

		data, _ := os.ReadFile(dst)
		if string(data) != "old" {
			t.Errorf("destination was overwritten: %q", data)
		}
	})

	t.Run("missing source", func(t *testing.T) {
		dir := t.TempDir()
		err := CopyFile(filepath.Join(dir, "missing.mp3"), filepath.Join(dir, "dst.mp3"))
		if !errors.Is(err, ErrIOFailure) {
			t.Errorf("expected ErrIOFailure, got %v", err)
		}
		if FileExists(filepath.Join(dir, "dst.mp3")) {
			t.Error("destination should not be created")
		}
	})
}
