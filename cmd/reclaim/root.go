package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Global flags
type globalFlags struct {
	json bool
	yaml bool
}

// format returns the output format selected by the global flags. --json
// wins over --yaml.
func (g *globalFlags) format() outputFormat {
	switch {
	case g.json:
		return formatJSON
	case g.yaml:
		return formatYAML
	default:
		return formatTable
	}
}

// newRootCmd builds the command tree.
func newRootCmd() (*cobra.Command, *globalFlags) {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "reclaim",
		Short: "Reclaim.ai task CLI",
		Long: `Create, list and edit Reclaim.ai tasks from the command line.

The API token is read from RECLAIM_API_KEY (a .env file in the working
directory is honored). Defaults live in ~/.reclaim/config.toml and an
optional reclaim.toml found by walking up from the working directory.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().BoolVar(&flags.json, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flags.yaml, "yaml", false, "Output as YAML")

	rootCmd.AddCommand(
		newCreateCmd(flags),
		newListCmd(flags),
		newShowCmd(flags),
		newEditCmd(flags),
		newCompleteCmd(flags),
		newDeleteCmd(flags),
		newTimeSchemesCmd(flags),
	)

	return rootCmd, flags
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd, flags := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		handleError(err, flags.format())
	}
}
