package reload

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchFiresOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("app:\n  log_level: info\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan string, 1)
	done := make(chan struct{})
	go func() {
		_ = Watch(ctx, path, slog.Default(), func(p string) {
			select {
			case fired <- p:
			default:
			}
		})
		close(done)
	}()

	// Give the watcher time to register before the write.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("app:\n  log_level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-fired:
		if filepath.Base(p) != "config.yaml" {
			t.Errorf("callback path = %q", p)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("callback never fired")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("x: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan string, 1)
	go func() {
		_ = Watch(ctx, path, slog.Default(), func(p string) {
			select {
			case fired <- p:
			default:
			}
		})
	}()

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("y: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-fired:
		t.Fatalf("callback fired for sibling file: %q", p)
	case <-time.After(500 * time.Millisecond):
	}
}
