package main

import (
	"time"

	"github.com/spf13/cobra"

	"post-stats-pipeline/internal/export"
	"post-stats-pipeline/internal/model"
	"post-stats-pipeline/pkg/utils"
)

func newViewsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "views",
		Short: "Print the account or post type view",
	}

	var fields []string
	accounts := &cobra.Command{
		Use:   "accounts",
		Short: "Per-account table with total row",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := c.app.Coordinator.AccountView(cmd.Context(), fields)
			if err != nil {
				return err
			}
			return c.printJSON(view)
		},
	}
	accounts.Flags().StringSliceVar(&fields, "fields", nil, "Fields to include (default: all)")

	var account string
	postTypes := &cobra.Command{
		Use:   "post-types",
		Short: "Per-post-type summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := c.app.Coordinator.PostTypeView(cmd.Context(), account)
			if err != nil {
				return err
			}
			return c.printJSON(summaries)
		},
	}
	postTypes.Flags().StringVar(&account, "account", "", "Account name filter")

	cmd.AddCommand(accounts, postTypes)
	return cmd
}

func newExportCmd(c *cli) *cobra.Command {
	var (
		format string
		out    string
		dir    string
		fields []string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the account table to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			om := utils.NewOutputManager(dir)
			if format == "" && out != "" {
				if t := om.GetFileType(out); t != "unknown" {
					format = t
				}
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			if out == "" {
				out = om.DefaultFileName("konton", f, time.Now())
			}
			path, err := om.OutputFilePath(out)
			if err != nil {
				return err
			}

			view, err := c.app.Coordinator.AccountView(cmd.Context(), fields)
			if err != nil {
				return err
			}
			selected := fields
			if len(selected) == 0 {
				selected = model.AccountFields
			}
			rows := append(append([]model.GenericRecord{}, view.Rows...), view.Total)

			res, err := export.WriteFile(path, f, rows, export.AccountColumns(selected))
			if err != nil {
				return err
			}
			return c.printJSON(res)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "csv, json or xlsx (default: from --out, else csv)")
	cmd.Flags().StringVar(&out, "out", "", "Output file name")
	cmd.Flags().StringVar(&dir, "dir", "exports", "Output directory")
	cmd.Flags().StringSliceVar(&fields, "fields", nil, "Fields to include (default: all)")
	return cmd
}
