package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"post-stats-pipeline/internal/pipeline"
)

func newImportCmd(c *cli) *cobra.Command {
	var opts pipeline.ImportOptions

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			opts.FileName = filepath.Base(args[0])

			res, err := c.app.Coordinator.Import(cmd.Context(), data, opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.out, "Imported %s as %s\n", opts.FileName, res.Meta.FileIdentifier)
			fmt.Fprintf(c.out, "  posts: %d  accounts: %d  duplicates removed: %d\n",
				res.RowCount, len(res.AccountViewData), res.Meta.Stats.Duplicates)
			if dr := res.Meta.DateRange; dr.StartDate != "" {
				fmt.Fprintf(c.out, "  dates: %s .. %s\n", dr.StartDate, dr.EndDate)
			}
			for _, w := range res.Meta.Warnings {
				fmt.Fprintf(c.out, "  warning (row %d): %s\n", w.Row, w.Message)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Merge, "merge", false, "Add to the existing dataset instead of replacing it")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Import even when required columns are missing")
	cmd.Flags().StringVar(&opts.Label, "name", "", "Label shown in the file list")
	return cmd
}
