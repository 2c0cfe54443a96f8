// ABOUTME: Shared setup and formatting helpers for CLI commands
// ABOUTME: Builds the logger, config and job-info client, and renders navigation targets
package commands

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/harper/galaxy-nav/internal/config"
	"github.com/harper/galaxy-nav/internal/jobs"
	"github.com/harper/galaxy-nav/internal/models"
)

// environment bundles what every command needs
type environment struct {
	cfg    *config.Config
	jobs   *jobs.Client
	logger *zap.Logger
}

// loadEnvironment reads .env and the configuration, then builds the logger and job-info client
func loadEnvironment() (*environment, error) {
	// Load .env if it exists
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	client, err := jobs.NewClientWithConfig(&jobs.ClientConfig{
		BaseURL: cfg.GalaxyURL,
		AppRoot: cfg.AppRoot,
		Timeout: cfg.RerunTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing job client: %w", err)
	}

	return &environment{cfg: cfg, jobs: client, logger: logger}, nil
}

// newLogger builds a production zap logger on stderr; debug with --verbose, silent with --quiet
func newLogger() (*zap.Logger, error) {
	if quiet {
		return zap.NewNop(), nil
	}
	zcfg := zap.NewProductionConfig()
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zcfg.Build()
}

// describeTarget renders a navigation target as one line of text
func describeTarget(nav models.Navigation, appRoot string) string {
	switch target := nav.Target.(type) {
	case models.ToolForm:
		parts := []string{}
		if target.ID != "" {
			parts = append(parts, "tool="+target.ID)
		}
		if target.Version != "" {
			parts = append(parts, "version="+target.Version)
		}
		if target.JobID != "" {
			parts = append(parts, "job="+target.JobID)
		}
		return strings.Join(parts, " ")
	case models.WorkflowRun:
		s := fmt.Sprintf("workflow=%s simple_form=%t job_cache=%t", target.WorkflowID, target.PreferSimpleForm, target.SimpleFormUseJobCache)
		if target.SimpleFormTargetHistory != "" {
			s += " target_history=" + target.SimpleFormTargetHistory
		}
		return s
	case models.EmbeddedPage:
		s := target.URL(appRoot)
		if nav.OpenUpload {
			s += " (upload dialog)"
		}
		return s
	case models.Welcome:
		return "welcome"
	default:
		return "(none)"
	}
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
