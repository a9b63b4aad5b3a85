// package testing contains shared testing utilities
package testing

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/songpick/internal/models"
	"github.com/desertthunder/songpick/internal/shared"
)

// ProgressCall is one recorded Progress invocation.
type ProgressCall struct {
	Current int
	Total   int
}

// RecordingReporter records every progress and message call in order.
//
// OnProgress, when set, runs after each recorded progress call; tests use it to cancel a run midway.
type RecordingReporter struct {
	mu         sync.Mutex
	Progresses []ProgressCall
	Messages   []string
	OnProgress func(current, total int)
}

func (r *RecordingReporter) Progress(current, total int) {
	r.mu.Lock()
	r.Progresses = append(r.Progresses, ProgressCall{Current: current, Total: total})
	hook := r.OnProgress
	r.mu.Unlock()

	if hook != nil {
		hook(current, total)
	}
}

func (r *RecordingReporter) Message(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, msg)
}

// LastProgress returns the most recent progress call, or a zero value when none was made.
func (r *RecordingReporter) LastProgress() ProgressCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Progresses) == 0 {
		return ProgressCall{}
	}
	return r.Progresses[len(r.Progresses)-1]
}

// MockExtractor serves metadata from a map keyed by file path.
//
// Paths missing from the map fail with [shared.ErrNotFound]. Calls counts extractions per path.
type MockExtractor struct {
	mu    sync.Mutex
	Data  map[string]*models.MusicMetadata
	Calls map[string]int
}

func NewMockExtractor(data map[string]*models.MusicMetadata) *MockExtractor {
	return &MockExtractor{Data: data, Calls: make(map[string]int)}
}

func (m *MockExtractor) Extract(path string) (*models.MusicMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls[path]++

	md, ok := m.Data[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrNotFound, path)
	}
	copied := *md
	copied.Filepath = path
	copied.Filename = filepath.Base(path)
	return &copied, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// WriteFile creates dir/name with content, creating parent directories, and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}

// Touch writes an empty-ish fixture at dir/name and sets its modification time.
func Touch(t *testing.T, dir, name string, mtime time.Time) string {
	t.Helper()
	path := WriteFile(t, dir, name, "audio:"+name)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("Failed to set times on %s: %v", path, err)
	}
	return path
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("File should not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
