package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portable-tools/ptinstall/internal/extract"
)

func newExtractCommand(a *app) *cobra.Command {
	var product string

	cmd := &cobra.Command{
		Use:   "extract <archive> <base-dir>",
		Short: "Unpack a tar.gz, 7z or self-extracting 7z.exe into <base-dir>/<product>",
		Long: `Unpack one archive, choosing the format from its name. Unlike install this
always extracts, overwriting files that already exist.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if product == "" {
				product = a.cfg.Product.Name
			}
			target := extract.Target{BaseDir: args[1], Product: product}

			x := extract.NewExtractor().
				WithLogger(a.logger()).
				WithTempDir(a.cfg.TempDir).
				WithMaxDepth(a.cfg.MaxDepth)
			out := x.Extract(args[0], target)

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %s, %d files, %d directories, %d skipped\n",
				args[0], extract.Classify(args[0]), out.Status, out.Files, out.Dirs, out.Skipped)
			for _, failure := range out.Failures {
				fmt.Fprintf(cmd.OutOrStdout(), "  failed: %s\n", failure)
			}
			return outcomeError(out)
		},
	}

	cmd.Flags().StringVar(&product, "product", "", "product directory name (default from config)")
	return cmd
}
