package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portable-tools/ptinstall/internal/extract"
)

func newScanCommand(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <file>...",
		Short: "Print the offset of the embedded 7z payload in each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed int
			for _, path := range args {
				loc, err := extract.ScanFile(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", loc.Source, loc.Offset)
			}
			if failed > 0 {
				return &exitError{code: exitFailure, err: fmt.Errorf("%d of %d files had no payload", failed, len(args))}
			}
			return nil
		},
	}
}
