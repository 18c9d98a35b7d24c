package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portable-tools/ptinstall/internal/artifact"
	"github.com/portable-tools/ptinstall/internal/install"
)

type installFlags struct {
	baseDir  string
	product  string
	coords   string
	tempDir  string
	maxDepth int
}

func newInstallCommand(a *app) *cobra.Command {
	var f installFlags

	cmd := &cobra.Command{
		Use:   "install [archive.tar.gz]",
		Short: "Install a product from a tar.gz archive, once",
		Long: `Unpack a tar.gz distribution into <base-dir>/<product>, including any
self-extracting 7z executables it contains. Nothing happens when the product
directory already exists.

Without an archive argument the configured artifact is taken from the local
repository.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, a, f, args)
		},
	}

	cmd.Flags().StringVar(&f.baseDir, "base-dir", "", "install base directory")
	cmd.Flags().StringVar(&f.product, "product", "", "product directory name")
	cmd.Flags().StringVar(&f.coords, "artifact", "", "artifact coordinates group:artifact[:type[:classifier]]:version")
	cmd.Flags().StringVar(&f.tempDir, "temp-dir", "", "directory for scratch files")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "nesting limit for self-extracting archives")
	return cmd
}

func runInstall(cmd *cobra.Command, a *app, f installFlags, args []string) error {
	cfg := a.cfg
	if f.baseDir != "" {
		cfg.BaseDir = f.baseDir
	}
	if f.product != "" {
		cfg.Product.Name = f.product
	}
	if f.tempDir != "" {
		cfg.TempDir = f.tempDir
	}
	if cmd.Flags().Changed("max-depth") {
		cfg.MaxDepth = f.maxDepth
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	archive, err := resolveArchive(a, f.coords, args)
	if err != nil {
		return err
	}

	m, err := install.NewManager(install.Config{
		BaseDir:  cfg.BaseDir,
		Product:  cfg.Product.Name,
		BinDir:   cfg.Product.BinDir,
		TempDir:  cfg.TempDir,
		MaxDepth: cfg.MaxDepth,
		Logger:   a.logger(),
	})
	if err != nil {
		return err
	}

	res, err := m.Install(archive)
	if err != nil {
		return &exitError{code: exitFailure, err: fmt.Errorf("install %s: %w", cfg.Product.Name, err)}
	}

	out := cmd.OutOrStdout()
	switch {
	case res.Skipped:
		fmt.Fprintf(out, "%s already installed in %s\n", cfg.Product.Name, res.InstallDir)
	default:
		fmt.Fprintf(out, "%s %s: %d files, %d directories in %s\n",
			cfg.Product.Name, res.Outcome.Status, res.Outcome.Files, res.Outcome.Dirs, res.InstallDir)
		for _, failure := range res.Outcome.Failures {
			fmt.Fprintf(out, "  failed: %s\n", failure)
		}
	}
	fmt.Fprintf(out, "bin: %s\n", res.BinDir)

	return outcomeError(res.Outcome)
}

// resolveArchive picks the archive from the argument, --artifact, or the
// configured product coordinates, in that order.
func resolveArchive(a *app, coords string, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	c := a.cfg.Product.Coordinates()
	if coords != "" {
		parsed, err := artifact.Parse(coords)
		if err != nil {
			return "", err
		}
		c = parsed
	}

	path, err := install.LocateArtifact(a.cfg.Repository, c)
	if err != nil {
		return "", err
	}
	a.log.Debugw("resolved artifact", "coordinates", c.String(), "path", path)
	return path, nil
}
