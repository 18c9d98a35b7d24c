package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/portable-tools/ptinstall/internal/artifact"
)

// Config is the effective installer configuration.
// Fields tagged env can be overridden by PTINSTALL_* variables.
type Config struct {
	// Directory the product is unpacked into, as BaseDir/Product.Name.
	BaseDir string `env:"PTINSTALL_BASE_DIR"`

	// Local artifact repository searched when no artifact path is given.
	Repository string `env:"PTINSTALL_REPOSITORY"`

	// Directory for payload scratch files; empty means the OS temp dir.
	TempDir string `env:"PTINSTALL_TEMP_DIR"`

	// Nesting limit for self-extracting archives.
	MaxDepth int `env:"PTINSTALL_MAX_DEPTH"`

	LogLevel string `env:"PTINSTALL_LOG_LEVEL"`

	Product Product
}

// Product describes the distribution being installed.
type Product struct {
	Name     string
	Version  string
	BinDir   string // relative to the install root, slash separated
	Artifact Artifact
}

// Artifact holds the repository coordinates of the product archive.
// The version comes from Product.
type Artifact struct {
	GroupID    string
	ArtifactID string
	Type       string
	Classifier string
}

// Coordinates returns the repository coordinates of the product archive.
func (p Product) Coordinates() artifact.Coordinates {
	return artifact.Coordinates{
		GroupID:    p.Artifact.GroupID,
		ArtifactID: p.Artifact.ArtifactID,
		Version:    p.Version,
		Type:       p.Artifact.Type,
		Classifier: p.Artifact.Classifier,
	}
}

// DefaultRepository returns the Maven local repository of the current user.
func DefaultRepository() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".m2", "repository")
	}
	return filepath.Join(home, ".m2", "repository")
}

// Default returns the configuration for portable Git installed into the
// local repository.
func Default() *Config {
	repo := DefaultRepository()
	coords := artifact.PortableGit(DefaultVersion)

	return &Config{
		BaseDir:    repo,
		Repository: repo,
		MaxDepth:   DefaultMaxDepth,
		LogLevel:   DefaultLogLevel,
		Product: Product{
			Name:    DefaultProductName,
			Version: DefaultVersion,
			BinDir:  DefaultBinDir,
			Artifact: Artifact{
				GroupID:    coords.GroupID,
				ArtifactID: coords.ArtifactID,
				Type:       coords.Type,
				Classifier: coords.Classifier,
			},
		},
	}
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate performs basic validation on a Config.
func (c *Config) Validate() error {
	if c.BaseDir == "" {
		return &ValidationError{Field: luaFieldBaseDir, Message: "cannot be empty"}
	}

	if err := validateProductName(c.Product.Name); err != nil {
		return &ValidationError{Field: "product.name", Message: err.Error()}
	}

	if c.Product.BinDir != "" && !filepath.IsLocal(filepath.FromSlash(c.Product.BinDir)) {
		return &ValidationError{
			Field:   "product.bin_dir",
			Message: fmt.Sprintf("must be a relative path inside the install root: %q", c.Product.BinDir),
		}
	}

	if c.MaxDepth < 1 || c.MaxDepth > MaxDepthLimit {
		return &ValidationError{
			Field:   luaFieldMaxDepth,
			Message: fmt.Sprintf("must be between 1 and %d (got %d)", MaxDepthLimit, c.MaxDepth),
		}
	}

	if !slices.Contains(logLevels, c.LogLevel) {
		return &ValidationError{
			Field:   luaFieldLogLevel,
			Message: fmt.Sprintf("must be one of %s (got %q)", strings.Join(logLevels, ", "), c.LogLevel),
		}
	}

	return nil
}

// validateProductName requires a single path segment.
func validateProductName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("cannot be empty")
	case name == "." || name == "..":
		return fmt.Errorf("invalid name %q", name)
	case strings.ContainsAny(name, `/\:`):
		return fmt.Errorf("must not contain path separators: %q", name)
	}
	return nil
}

// ValidationError represents a config validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "config validation failed for " + e.Field + ": " + e.Message
	}
	return "config validation failed: " + e.Message
}
