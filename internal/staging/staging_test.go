package staging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWithFile(t *testing.T) {
	t.Run("writes_then_removes", func(t *testing.T) {
		dir := t.TempDir()
		var seen string

		err := WithFile(dir, "husband", []byte("payload"), func(path string) error {
			seen = path
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if string(data) != "payload" {
				t.Errorf("expected payload, got %q", data)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if filepath.Dir(seen) != dir {
			t.Errorf("expected file under %s, got %s", dir, seen)
		}
		if !strings.HasPrefix(filepath.Base(seen), "husband-") || !strings.HasSuffix(seen, ".db") {
			t.Errorf("unexpected scratch name %s", seen)
		}
		if _, err := os.Stat(seen); !os.IsNotExist(err) {
			t.Errorf("expected scratch file to be removed, stat err: %v", err)
		}
	})

	t.Run("removes_on_error", func(t *testing.T) {
		dir := t.TempDir()
		boom := errors.New("boom")
		var seen string

		err := WithFile(dir, "wife", []byte("x"), func(path string) error {
			seen = path
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected callback error, got %v", err)
		}
		if _, err := os.Stat(seen); !os.IsNotExist(err) {
			t.Errorf("expected scratch file to be removed, stat err: %v", err)
		}
	})

	t.Run("removes_on_panic", func(t *testing.T) {
		dir := t.TempDir()
		var seen string

		func() {
			defer func() { _ = recover() }()
			_ = WithFile(dir, "wife", []byte("x"), func(path string) error {
				seen = path
				panic("extract blew up")
			})
		}()

		if _, err := os.Stat(seen); !os.IsNotExist(err) {
			t.Errorf("expected scratch file to be removed, stat err: %v", err)
		}
	})

	t.Run("unique_paths", func(t *testing.T) {
		dir := t.TempDir()
		paths := make(map[string]bool)
		for i := 0; i < 5; i++ {
			_ = WithFile(dir, "husband", nil, func(path string) error {
				paths[path] = true
				return nil
			})
		}
		if len(paths) != 5 {
			t.Errorf("expected 5 distinct paths, got %d", len(paths))
		}
	})

	t.Run("missing_dir", func(t *testing.T) {
		called := false
		err := WithFile(filepath.Join(t.TempDir(), "nope"), "husband", nil, func(string) error {
			called = true
			return nil
		})
		if err == nil {
			t.Fatal("expected error for missing scratch dir")
		}
		if called {
			t.Error("callback should not run without a scratch file")
		}
	})
}
