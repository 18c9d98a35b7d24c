// Package install places a product distribution below a base directory,
// once. It drives internal/extract and reports its Outcome unchanged.
package install

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/portable-tools/ptinstall/internal/artifact"
	"github.com/portable-tools/ptinstall/internal/extract"
)

// DefaultBinDir is the executable directory of portable Git, relative to
// the install root.
const DefaultBinDir = "usr/bin"

// Config holds configuration for the install manager.
type Config struct {
	// BaseDir receives the install root BaseDir/Product. Created if absent.
	BaseDir string
	// Product names the install root directory.
	Product string
	// BinDir is slash separated and relative to the install root.
	// Empty means DefaultBinDir.
	BinDir string
	// TempDir holds payload scratch files. Empty means the OS temp dir.
	TempDir string
	// MaxDepth limits nested self-extracting archives. Zero means
	// extract.DefaultMaxDepth.
	MaxDepth int
	Logger   extract.Logger
}

// Manager installs one product.
type Manager struct {
	target   extract.Target
	binDir   string
	tempDir  string
	maxDepth int
	log      extract.Logger
}

// Result reports what Install did.
type Result struct {
	Outcome extract.Outcome

	RunID      string
	InstallDir string
	BinDir     string
	// Skipped is set when the install root already existed.
	Skipped  bool
	Duration time.Duration
}

// NewManager creates a manager for cfg.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.BaseDir == "" {
		return nil, fmt.Errorf("BaseDir is required")
	}
	if cfg.Product == "" || cfg.Product == "." || cfg.Product == ".." || filepath.Base(cfg.Product) != cfg.Product {
		return nil, fmt.Errorf("invalid product name %q", cfg.Product)
	}

	binDir := cfg.BinDir
	if binDir == "" {
		binDir = DefaultBinDir
	}
	if !filepath.IsLocal(filepath.FromSlash(binDir)) {
		return nil, fmt.Errorf("bin dir %q must be relative to the install root", binDir)
	}

	log := cfg.Logger
	if log == nil {
		log = extract.NopLogger()
	}

	return &Manager{
		target:   extract.Target{BaseDir: cfg.BaseDir, Product: cfg.Product},
		binDir:   binDir,
		tempDir:  cfg.TempDir,
		maxDepth: cfg.MaxDepth,
		log:      log,
	}, nil
}

// Extractor returns an extractor configured like the manager's installs.
func (m *Manager) Extractor(log extract.Logger) *extract.Extractor {
	x := extract.NewExtractor().WithLogger(log).WithTempDir(m.tempDir)
	if m.maxDepth > 0 {
		x.WithMaxDepth(m.maxDepth)
	}
	return x
}

// InstallDir returns BaseDir/Product.
func (m *Manager) InstallDir() string {
	return m.target.Root()
}

// BinDir returns the absolute executable directory of the install.
func (m *Manager) BinDir() string {
	return filepath.Join(m.target.Root(), filepath.FromSlash(m.binDir))
}

// IsInstalled reports whether the install root exists. Its contents are
// not checked.
func (m *Manager) IsInstalled() (bool, error) {
	_, err := os.Stat(m.target.Root())
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat install dir: %w", err)
	}
}

// Install unpacks the tar.gz at archivePath unless the product is already
// installed. The error is non-nil exactly when the outcome is aborted and
// is the outcome's Err. A partially failed install returns a nil error and
// the failures in the Result.
//
// Installed means the install root exists, so an install aborted after
// entries were written leaves a root that later calls skip. The abort is
// logged with the directory to remove before retrying. Concurrent installs
// of the same product are not coordinated.
func (m *Manager) Install(archivePath string) (*Result, error) {
	start := time.Now()
	res := &Result{
		RunID:      uuid.NewString(),
		InstallDir: m.InstallDir(),
		BinDir:     m.BinDir(),
	}
	log := &runLogger{Logger: m.log, runID: res.RunID}

	installed, err := m.IsInstalled()
	if err != nil {
		return m.aborted(res, log, err)
	}
	if installed {
		log.Info("already installed, skipping", "dir", res.InstallDir)
		res.Outcome = extract.Outcome{Status: extract.StatusCompleted}
		res.Skipped = true
		return res, nil
	}

	if err := os.MkdirAll(m.target.BaseDir, 0755); err != nil {
		return m.aborted(res, log, fmt.Errorf("create base dir: %w", err))
	}

	log.Info("installing", "archive", archivePath, "dir", res.InstallDir)
	res.Outcome = m.Extractor(log).ExtractTarGz(archivePath, m.target)
	res.Duration = time.Since(start)

	switch out := res.Outcome; out.Status {
	case extract.StatusAborted:
		if installed, _ := m.IsInstalled(); installed {
			log.Error("install aborted with files written, remove the install directory before retrying",
				"dir", res.InstallDir, "error", out.Err)
		}
		return res, out.Err
	case extract.StatusPartiallyFailed:
		log.Warn("install partially failed", "dir", res.InstallDir, "reason", out.Reason)
	default:
		log.Info("installed", "dir", res.InstallDir, "files", out.Files, "dirs", out.Dirs, "duration", res.Duration)
	}
	return res, nil
}

func (m *Manager) aborted(res *Result, log extract.Logger, err error) (*Result, error) {
	log.Error("install aborted", "dir", res.InstallDir, "error", err)
	res.Outcome = extract.Outcome{Status: extract.StatusAborted, Reason: err.Error(), Err: err}
	return res, err
}

// LocateArtifact returns the path of coords in the local repository repoDir.
// The file must exist.
func LocateArtifact(repoDir string, coords artifact.Coordinates) (string, error) {
	path, err := coords.LocalPath(repoDir)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("artifact %s: %w", coords, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("artifact %s: %s is not a regular file", coords, path)
	}
	return path, nil
}

// runLogger tags every line with the install run id.
type runLogger struct {
	extract.Logger
	runID string
}

func (l *runLogger) with(kv []interface{}) []interface{} {
	return append([]interface{}{"run_id", l.runID}, kv...)
}

func (l *runLogger) Debug(msg string, kv ...interface{}) { l.Logger.Debug(msg, l.with(kv)...) }
func (l *runLogger) Info(msg string, kv ...interface{})  { l.Logger.Info(msg, l.with(kv)...) }
func (l *runLogger) Warn(msg string, kv ...interface{})  { l.Logger.Warn(msg, l.with(kv)...) }
func (l *runLogger) Error(msg string, kv ...interface{}) { l.Logger.Error(msg, l.with(kv)...) }
