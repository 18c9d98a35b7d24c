package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/portable-tools/ptinstall/internal/platform"
)

// LoadOptions controls where Load looks for configuration.
type LoadOptions struct {
	// Path of the Lua config. Empty means DefaultFileName in the working
	// directory, if present.
	Path string

	Detector platform.Detector
	Logger   Logger

	// Environ replaces the process environment when non-nil.
	Environ map[string]string
}

// Load builds the effective configuration: defaults, then the Lua file,
// then environment overrides. The result is validated.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	log := opts.Logger
	if log == nil {
		log = defaultLogger()
	}

	cfg := Default()

	path, err := configPath(opts.Path)
	if err != nil {
		return nil, err
	}
	if path != "" {
		p := NewParser(opts.Detector).WithLogger(log)
		code, err := p.readFile(path)
		if err != nil {
			return nil, err
		}
		if cfg, err = p.evaluate(ctx, code, cfg); err != nil {
			return nil, err
		}
		log.Info("loaded config", "path", path)
	}

	if err := ApplyEnv(cfg, opts.Environ); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configPath returns the file Load should parse, or "" for none.
// An explicit path must exist.
func configPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}

	_, err := os.Stat(DefaultFileName)
	switch {
	case err == nil:
		return DefaultFileName, nil
	case errors.Is(err, fs.ErrNotExist):
		return "", nil
	default:
		return "", fmt.Errorf("config file: %w", err)
	}
}
