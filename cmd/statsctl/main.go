package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"post-stats-pipeline/internal/app"
	"post-stats-pipeline/internal/config"
)

type cli struct {
	app *app.App
	out io.Writer
}

func (c *cli) printJSON(v interface{}) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRootCmd() *cobra.Command {
	c := &cli{out: os.Stdout}

	root := &cobra.Command{
		Use:           "statsctl",
		Short:         "Import and inspect Meta post statistics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(cmd.Context(), config.LoadConfig())
			if err != nil {
				return err
			}
			c.app = a
			c.out = cmd.OutOrStdout()
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.app == nil {
				return nil
			}
			return c.app.Close()
		},
	}

	root.AddCommand(
		newImportCmd(c),
		newMappingCmd(c),
		newFilesCmd(c),
		newClearCmd(c),
		newViewsCmd(c),
		newUsageCmd(c),
		newExportCmd(c),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Printf("❌ %v", err)
		os.Exit(1)
	}
}
