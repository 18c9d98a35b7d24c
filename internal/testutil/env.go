// Package testutil builds archives and isolated directories for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Dirs are the isolated directories created by SetupTestEnv.
type Dirs struct {
	Base       string
	Repository string
	Temp       string
	Work       string
}

// SetupTestEnv points every PTINSTALL_* directory variable at a fresh
// temporary tree and makes it the working directory, so tests never touch
// the user's repository or pick up a stray ptinstall.lua.
//
// It uses t.Setenv and t.Chdir, so callers cannot run in parallel.
func SetupTestEnv(t *testing.T) Dirs {
	t.Helper()

	tmpDir := t.TempDir()
	dirs := Dirs{
		Base:       filepath.Join(tmpDir, "base"),
		Repository: filepath.Join(tmpDir, "repository"),
		Temp:       filepath.Join(tmpDir, "tmp"),
		Work:       filepath.Join(tmpDir, "work"),
	}

	for _, dir := range []string{dirs.Repository, dirs.Temp, dirs.Work} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create test directory %s: %v", dir, err)
		}
	}

	t.Setenv("PTINSTALL_BASE_DIR", dirs.Base)
	t.Setenv("PTINSTALL_REPOSITORY", dirs.Repository)
	t.Setenv("PTINSTALL_TEMP_DIR", dirs.Temp)
	t.Setenv("PTINSTALL_MAX_DEPTH", "")
	t.Setenv("PTINSTALL_LOG_LEVEL", "")
	t.Chdir(dirs.Work)

	return dirs
}
