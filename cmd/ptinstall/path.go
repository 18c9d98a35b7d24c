package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/portable-tools/ptinstall/internal/install"
	"github.com/portable-tools/ptinstall/internal/platform"
	"github.com/portable-tools/ptinstall/internal/shell"
)

func newPathCommand(a *app) *cobra.Command {
	var (
		binOnly   bool
		shellName string
	)

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the search path with the installed bin directory in front",
		Long: `Print KEY=value for the executable search path a child process should use
so the installed tools are found first. With --bin only the bin directory is
printed. With --shell a statement for that shell is printed instead, suitable
for eval; "auto" detects the current shell.`,
		Example: `  eval "$(ptinstall path --shell auto)"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			binDir := filepath.Join(a.cfg.BaseDir, a.cfg.Product.Name, filepath.FromSlash(a.cfg.Product.BinDir))
			if binOnly {
				fmt.Fprintln(cmd.OutOrStdout(), binDir)
				return nil
			}

			info, err := a.detector.Detect(cmd.Context())
			if err != nil {
				return err
			}

			if shellName != "" {
				line, err := a.exportLine(cmd, shellName, binDir, info)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
				return nil
			}

			for _, kv := range install.PrependPath(os.Environ(), binDir, info) {
				k, v, _ := strings.Cut(kv, "=")
				if (k == "PATH" || k == "Path") && strings.HasPrefix(v, binDir) {
					fmt.Fprintln(cmd.OutOrStdout(), kv)
					return nil
				}
			}
			return fmt.Errorf("no search path variable found")
		},
	}

	cmd.Flags().BoolVar(&binOnly, "bin", false, "print only the bin directory")
	cmd.Flags().StringVar(&shellName, "shell", "", `print an export statement for this shell ("auto" to detect)`)
	return cmd
}

func (a *app) exportLine(cmd *cobra.Command, name, binDir string, info *platform.Info) (string, error) {
	var s shell.ShellType
	if name == "auto" {
		res, err := shell.DetectShell(cmd.Context())
		if err != nil {
			return "", err
		}
		if !res.Shell.IsValid() {
			return "", fmt.Errorf("could not detect shell (%s), pass --shell explicitly", res.Method)
		}
		a.log.Debugw("detected shell", "shell", res.Shell, "method", res.Method)
		s = res.Shell
	} else {
		parsed, err := shell.Parse(name)
		if err != nil {
			return "", err
		}
		s = parsed
	}

	return shell.ExportPath(s, info.PathKey(), binDir, info.ListSeparator())
}
