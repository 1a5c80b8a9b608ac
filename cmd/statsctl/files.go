package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newFilesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "List or remove imported files",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List imported files",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := c.app.Coordinator.Files(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tIDENTIFIER\tNAME\tROWS\tDUPLICATES\tACCOUNTS\tDATES\tUPLOADED")
			for i, f := range files {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%s..%s\t%s\n",
					i, f.FileIdentifier, f.Filename, f.RowCount, f.DuplicatesRemoved, f.AccountCount,
					f.DateRange.StartDate, f.DateRange.EndDate, humanize.Time(f.UploadedAt))
			}
			return tw.Flush()
		},
	}

	remove := &cobra.Command{
		Use:   "remove <fileIdentifier>",
		Short: "Remove one imported file and its posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Coordinator.RemoveFile(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Removed %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, remove)
	return cmd
}

func newClearCmd(c *cli) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all imported data (the mapping is kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear without --yes")
			}
			if err := c.app.Coordinator.ClearAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "All data cleared")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the clear")
	return cmd
}

func newUsageCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show storage usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			usage, err := c.app.Coordinator.Usage(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "%s used (%.1f%%, %s)\n", usage.TotalSizeHuman, usage.PercentUsed, usage.Status)
			if !usage.CanAddMoreData {
				fmt.Fprintln(c.out, "storage is nearly full: clear data before importing more")
			}
			return nil
		},
	}
}
