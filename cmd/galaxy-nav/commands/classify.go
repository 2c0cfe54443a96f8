// ABOUTME: CLI command to classify a job rerun
// ABOUTME: Asks Galaxy's build_for_rerun endpoint whether the job needs the interactive rerun page
package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/galaxy-nav/internal/models"
)

// NewClassifyCmd creates classify command
func NewClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <job_id> <id>",
		Short: "Classify a job rerun",
		Long: `Classify a job rerun as interactive-client or ordinary.

Queries GET /api/jobs/<job_id>/build_for_rerun on the Galaxy server
(GALAXY_URL) once. Jobs of an InteractiveClientTool rerun through
tool_runner/rerun?id=<id>; everything else uses the tool form.

Examples:
  galaxy-nav classify f2db41e1fa331b3e 1cd8e2f6b131e891
  galaxy-nav classify --format json f2db41e1fa331b3e 1cd8e2f6b131e891`,
		Args: cobra.ExactArgs(2),
		RunE: runClassify,
	}

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() { _ = env.logger.Sync() }()

	jobID, targetID := args[0], args[1]

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, env.cfg.RerunTimeout)
	defer cancel()

	class, err := env.jobs.Resolve(ctx, jobID, targetID)
	if err != nil {
		return fmt.Errorf("classifying job %s: %w", jobID, err)
	}

	return printClassification(cmd, class)
}

func printClassification(cmd *cobra.Command, class models.RerunClassification) error {
	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(class, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Kind:     %s\n", class.Kind)
	if class.RedirectURL != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Redirect: %s\n", class.RedirectURL)
	}
	return nil
}
