package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := buildRoot()
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildRoot creates the root command with the four lifecycle verbs.
func buildRoot() *cobra.Command {
	globalFlags := &GlobalFlags{}
	c := &command{global: globalFlags}

	root := createRootCommand(globalFlags)
	root.AddCommand(
		createStartGCPCommand(c),
		createStartLocalCommand(c),
		createStopCommand(c),
		createStatusCommand(c),
	)
	return root
}

func createRootCommand(flags *GlobalFlags) *cobra.Command {
	root := &cobra.Command{
		Use:   "otelctl",
		Short: "Telemetry collector lifecycle manager",
		Long: `Otelctl downloads telemetry collector scripts, launches them as
detached background processes tracked through PID files, and stops
them on request.

Examples:
  otelctl start-gcp my-project     # export to Google Cloud
  otelctl start-local out.json     # export to a local file
  otelctl status
  otelctl stop`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Help()
			return errors.New("a command is required")
		},
	}
	root.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "path to TOML config file (optional)")
	return root
}

func createStartGCPCommand(c *command) *cobra.Command {
	return &cobra.Command{
		Use:   "start-gcp [project-id]",
		Short: "Start the GCP telemetry collector",
		Long: `Starts the GCP collector for the given project id. When the argument
is omitted, the project id is read from OTLP_GOOGLE_CLOUD_PROJECT.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.StartGCP(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}
}

func createStartLocalCommand(c *command) *cobra.Command {
	return &cobra.Command{
		Use:   "start-local [outfile]",
		Short: "Start the local telemetry collector",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.StartLocal(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}
}

func createStopCommand(c *command) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop all running telemetry collectors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.Stop(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func createStatusCommand(c *command) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report collector slot status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.Status(cmd.OutOrStdout())
		},
	}
}
