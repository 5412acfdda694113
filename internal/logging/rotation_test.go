package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func newSmallWriter(t *testing.T, limit int64, backups int, compress bool) *RotatingWriter {
	t.Helper()
	rw, err := NewRotatingWriter(filepath.Join(t.TempDir(), LogFileName), RotationConfig{
		MaxBackups: backups,
		Compress:   compress,
	})
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}
	rw.limit = limit
	t.Cleanup(func() { rw.Close() })
	return rw
}

func TestNewRotatingWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", LogFileName)

	rw, err := NewRotatingWriter(path, DefaultRotationConfig())
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}
	defer rw.Close()

	if rw.Path() != path {
		t.Errorf("Path() = %q, want %q", rw.Path(), path)
	}
	if rw.limit != 5<<20 {
		t.Errorf("limit = %d, want %d", rw.limit, 5<<20)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

func TestRotatingWriter_AppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), LogFileName)
	if err := os.WriteFile(path, []byte("old line\n"), 0644); err != nil {
		t.Fatal(err)
	}

	rw, err := NewRotatingWriter(path, RotationConfig{})
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}
	if rw.Size() != int64(len("old line\n")) {
		t.Errorf("Size() = %d, want %d", rw.Size(), len("old line\n"))
	}
	fmt.Fprintln(rw, "new line")
	rw.Close()

	content, _ := os.ReadFile(path)
	if string(content) != "old line\nnew line\n" {
		t.Errorf("content = %q", content)
	}
}

func TestRotatingWriter_Rotates(t *testing.T) {
	rw := newSmallWriter(t, 20, 2, false)

	for i := 0; i < 5; i++ {
		if _, err := fmt.Fprintf(rw, "line-%02d-xxxxxxxx\n", i); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}

	for _, p := range []string{rw.Path(), rw.Path() + ".1", rw.Path() + ".2"} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %s to exist: %v", p, err)
		}
	}
	if _, err := os.Stat(rw.Path() + ".3"); !os.IsNotExist(err) {
		t.Error("expected backups beyond MaxBackups to be removed")
	}

	current, _ := os.ReadFile(rw.Path())
	if !strings.Contains(string(current), "line-04") {
		t.Errorf("current file = %q, want latest line", current)
	}
	newest, _ := os.ReadFile(rw.Path() + ".1")
	if !strings.Contains(string(newest), "line-03") {
		t.Errorf(".1 = %q, want previous line", newest)
	}
}

func TestRotatingWriter_NoBackups(t *testing.T) {
	rw := newSmallWriter(t, 10, 0, false)

	fmt.Fprintln(rw, "first-line")
	fmt.Fprintln(rw, "second-line")

	if _, err := os.Stat(rw.Path() + ".1"); !os.IsNotExist(err) {
		t.Error("expected no backup files with MaxBackups=0")
	}
}

func TestRotatingWriter_Compression(t *testing.T) {
	rw := newSmallWriter(t, 10, 1, true)

	fmt.Fprintln(rw, "first-line")
	fmt.Fprintln(rw, "second-line")

	gz := rw.Path() + ".1.gz"
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(gz); err == nil {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("expected %s to be created", gz)
}

func TestRotatingWriter_Concurrency(t *testing.T) {
	rw := newSmallWriter(t, 0, 0, false)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				fmt.Fprintf(rw, "writer %d line %d\n", n, j)
			}
		}(i)
	}
	wg.Wait()
	rw.Close()

	content, err := os.ReadFile(rw.Path())
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(content), "\n"); got != 500 {
		t.Errorf("line count = %d, want 500", got)
	}
}

func TestRotatingWriter_Close(t *testing.T) {
	rw := newSmallWriter(t, 0, 0, false)

	if err := rw.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if err := rw.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
	if _, err := rw.Write([]byte("x")); err == nil {
		t.Error("Write after Close should fail")
	}
}

func TestNewLoggerWithRotation(t *testing.T) {
	if _, err := NewLoggerWithRotation("", LevelInfo, DefaultRotationConfig()); err == nil {
		t.Error("expected error for empty directory")
	}

	dir := t.TempDir()
	logger, err := NewLoggerWithRotation(dir, LevelInfo, DefaultRotationConfig())
	if err != nil {
		t.Fatalf("NewLoggerWithRotation failed: %v", err)
	}
	logger.Info("hello")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}

	if lines := readLines(t, dir); len(lines) != 1 {
		t.Errorf("expected 1 line, got %d", len(lines))
	}
}
