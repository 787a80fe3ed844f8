package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestMatchExtension(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		extensions []string
		want       bool
	}{
		{"matching extension", "/docs/report.txt", []string{".txt", ".md"}, true},
		{"non-matching extension", "/docs/report.pdf", []string{".txt", ".md"}, false},
		{"case insensitive", "/docs/REPORT.TXT", []string{".txt"}, true},
		{"empty list matches all", "/docs/report.bin", nil, true},
		{"no extension", "/docs/README", []string{".txt"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchExtension(tt.path, tt.extensions); got != tt.want {
				t.Errorf("matchExtension(%q, %v) = %v, want %v", tt.path, tt.extensions, got, tt.want)
			}
		})
	}
}

// collector records processed and removed paths behind a mutex.
type collector struct {
	mu        sync.Mutex
	processed []string
	removed   []string
}

func (c *collector) process(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.processed = append(c.processed, path)
}

func (c *collector) remove(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removed = append(c.removed, path)
}

func (c *collector) waitProcessed(t *testing.T, path string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		c.mu.Lock()
		for _, p := range c.processed {
			if p == path {
				c.mu.Unlock()
				return
			}
		}
		c.mu.Unlock()
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("file %s was not processed within %v", path, timeout)
}

func TestWatcher_initialSync(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing.txt")
	if err := os.WriteFile(existing, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	skipped := filepath.Join(dir, "image.png")
	if err := os.WriteFile(skipped, []byte{0x89}, 0644); err != nil {
		t.Fatal(err)
	}

	col := &collector{}
	w := NewWatcher([]string{dir}, []string{".txt"}, true, col.process, col.remove,
		WithDebounce(30*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	col.waitProcessed(t, existing, 2*time.Second)

	col.mu.Lock()
	defer col.mu.Unlock()
	for _, p := range col.processed {
		if p == skipped {
			t.Errorf("file with excluded extension was processed: %s", p)
		}
	}
}

func TestWatcher_createAndRemove(t *testing.T) {
	dir := t.TempDir()
	col := &collector{}
	w := NewWatcher([]string{dir}, []string{".md"}, true, col.process, col.remove,
		WithDebounce(30*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	created := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(created, []byte("# notes"), 0644); err != nil {
		t.Fatal(err)
	}
	col.waitProcessed(t, created, 2*time.Second)

	if err := os.Remove(created); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		col.mu.Lock()
		n := len(col.removed)
		col.mu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}

	col.mu.Lock()
	defer col.mu.Unlock()
	if len(col.removed) == 0 || col.removed[0] != created {
		t.Errorf("expected remove callback for %s, got %v", created, col.removed)
	}
}

func TestWatcher_missingRoot(t *testing.T) {
	col := &collector{}
	w := NewWatcher([]string{"/nonexistent/watch/root"}, nil, false, col.process, col.remove)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err == nil {
		w.Stop()
		t.Error("Start() with missing root should return an error")
	}
}

func TestWatcher_stopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	col := &collector{}
	w := NewWatcher([]string{dir}, nil, false, col.process, col.remove)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	w.Stop()
	w.Stop()
}
