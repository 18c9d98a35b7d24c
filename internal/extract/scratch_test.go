package extract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWithScratchFile(t *testing.T) {
	dir := t.TempDir()

	var seen string
	got, err := WithScratchFile(dir, ".7z", nil, func(path string) (int, error) {
		seen = path
		if !strings.HasSuffix(path, ".7z") {
			t.Errorf("scratch path %q lacks suffix", path)
		}
		if filepath.Dir(path) != dir {
			t.Errorf("scratch file created in %q, want %q", filepath.Dir(path), dir)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("scratch file missing inside body: %v", err)
		}
		if info.Size() != 0 {
			t.Errorf("scratch file not empty: %d bytes", info.Size())
		}
		return 42, os.WriteFile(path, []byte("payload"), 0644)
	})
	if err != nil {
		t.Fatalf("WithScratchFile() error = %v", err)
	}
	if got != 42 {
		t.Errorf("WithScratchFile() = %d, want 42", got)
	}

	assertNotExist(t, seen)
	assertEmptyDir(t, dir)
}

func TestWithScratchFile_BodyError(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("boom")

	_, err := WithScratchFile(dir, ".7z", nil, func(path string) (string, error) {
		return "", boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected body error, got %v", err)
	}

	assertEmptyDir(t, dir)
}

func TestWithScratchFile_Panic(t *testing.T) {
	dir := t.TempDir()

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("expected panic to propagate")
			}
		}()
		_, _ = WithScratchFile(dir, ".7z", nil, func(path string) (struct{}, error) {
			panic("decoder exploded")
		})
	}()

	assertEmptyDir(t, dir)
}

func TestWithScratchFile_BodyRemovesFile(t *testing.T) {
	dir := t.TempDir()
	log := &recordingLogger{}

	_, err := WithScratchFile(dir, "", log, func(path string) (bool, error) {
		return true, os.Remove(path)
	})
	if err != nil {
		t.Fatalf("WithScratchFile() error = %v", err)
	}
	if n := log.count("WARN"); n != 0 {
		t.Errorf("expected no warnings for an already removed file, got %d", n)
	}
}

func TestWithScratchFile_DeleteFailureIsWarning(t *testing.T) {
	dir := t.TempDir()
	log := &recordingLogger{}

	var blocked string
	got, err := WithScratchFile(dir, ".7z", log, func(path string) (string, error) {
		// A non-empty directory in place of the file cannot be removed.
		blocked = path
		if err := os.Remove(path); err != nil {
			return "", err
		}
		if err := os.Mkdir(path, 0755); err != nil {
			return "", err
		}
		return "ok", os.WriteFile(filepath.Join(path, "keep"), []byte("x"), 0644)
	})
	if err != nil {
		t.Fatalf("deletion failure must not be returned, got %v", err)
	}
	if got != "ok" {
		t.Errorf("WithScratchFile() = %q, want ok", got)
	}
	if n := log.count("WARN failed to delete scratch file"); n != 1 {
		t.Errorf("expected one deletion warning, got %d: %v", n, log.lines)
	}

	if err := os.RemoveAll(blocked); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
}

func TestWithScratchFile_CreateFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does", "not", "exist")

	called := false
	_, err := WithScratchFile(missing, ".7z", nil, func(path string) (int, error) {
		called = true
		return 0, nil
	})
	if err == nil {
		t.Fatal("expected error for missing scratch directory")
	}
	if called {
		t.Error("body must not run when the scratch file cannot be created")
	}
}
