package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"post-stats-pipeline/internal/mapping"
	"post-stats-pipeline/internal/pipeline"
)

type mappingFile struct {
	Columns []mapping.Column `yaml:"columns"`
}

// parseMappingFile reads a YAML or JSON mapping, either a flat
// header: field object or a columns list.
func parseMappingFile(data []byte) (mapping.Mapping, error) {
	var flat map[string]string
	if err := yaml.Unmarshal(data, &flat); err == nil && len(flat) > 0 {
		return mapping.Mapping(flat), nil
	}

	var file mappingFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse mapping file: %w", err)
	}
	if len(file.Columns) == 0 {
		return nil, errors.New("mapping file has no columns")
	}

	m := make(mapping.Mapping, len(file.Columns))
	for _, col := range file.Columns {
		m[col.External] = col.Internal
	}
	return m, nil
}

func sortedColumns(m mapping.Mapping) []mapping.Column {
	cols := make([]mapping.Column, 0, len(m))
	for ext, internal := range m {
		cols = append(cols, mapping.Column{External: ext, Internal: internal})
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].External < cols[j].External })
	return cols
}

func newMappingCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mapping",
		Short: "Show or change the column mapping",
	}

	var asYAML bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the active mapping",
		RunE: func(cmd *cobra.Command, args []string) error {
			cols := sortedColumns(c.app.Resolver.GetMapping(cmd.Context()))
			if !asYAML {
				return c.printJSON(cols)
			}
			enc := yaml.NewEncoder(c.out)
			defer enc.Close()
			return enc.Encode(mappingFile{Columns: cols})
		},
	}
	show.Flags().BoolVar(&asYAML, "yaml", false, "Print as YAML")

	load := &cobra.Command{
		Use:   "import <file.yaml|file.json>",
		Short: "Replace the mapping from a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			m, err := parseMappingFile(data)
			if err != nil {
				return err
			}
			if err := c.app.Resolver.SaveMapping(cmd.Context(), m); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Saved %d column mappings\n", len(m))
			return nil
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default mapping",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Resolver.ResetMapping(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Mapping reset to defaults")
			return nil
		},
	}

	validate := &cobra.Command{
		Use:   "validate <file.csv>",
		Short: "Check a CSV for the required columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			parsed, err := pipeline.ParseCSV(cmd.Context(), data)
			if err != nil {
				return err
			}
			result := c.app.Resolver.ValidateRequiredColumns(parsed.Headers)
			if result.IsValid {
				fmt.Fprintln(c.out, "All required columns present")
				return nil
			}
			for _, m := range result.MissingColumns {
				fmt.Fprintf(c.out, "missing: %s (%s)\n", m.External, m.DisplayName)
			}
			return result.Err()
		},
	}

	cmd.AddCommand(show, load, reset, validate)
	return cmd
}
