// ABOUTME: Root command and global flags for the galaxy-nav CLI
// ABOUTME: Wires subcommands and validates verbose/quiet/format flags
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "galaxy-nav",
		Short: "Resolve Galaxy analysis URLs to center panel targets",
		Long: `galaxy-nav decides what the Galaxy analysis page shows in its center panel.

Given a home-route URL it picks exactly one target, first match wins:
  upload      tool_id=upload1 opens the upload dialog over the welcome page
  rerun       job_id + id of an interactive-client tool open tool_runner/rerun
  tool form   tool_id or job_id
  workflow    workflow_id opens the workflow run form
  legacy page m_c / m_a open controller/action in the center iframe
  welcome     anything else`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch outputFormat {
			case "auto", "text", "json":
				return nil
			default:
				return fmt.Errorf("--format must be auto, text or json, got %q", outputFormat)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (debug logging)")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational output and logging")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, text, json")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewResolveCmd(),
		NewClassifyCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
