// ABOUTME: Centralized configuration for the navigation dispatcher
// ABOUTME: Loads defaults, then an optional galaxy.yml, then environment variables, with validation
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Values accepted by the simplified workflow run settings
const (
	WorkflowRunUIOff    = "off"
	WorkflowRunUIPrefer = "prefer"

	JobCacheOn  = "on"
	JobCacheOff = "off"
)

var validTargetHistories = map[string]bool{
	"current":        true,
	"new":            true,
	"prefer_current": true,
	"prefer_new":     true,
}

// ClientConfig is the read-only subset of the Galaxy client configuration
// the home route consults when building the workflow run form.
type ClientConfig struct {
	SimplifiedWorkflowRunUI              string `yaml:"simplified_workflow_run_ui"`
	SimplifiedWorkflowRunUITargetHistory string `yaml:"simplified_workflow_run_ui_target_history"`
	SimplifiedWorkflowRunUIJobCache      string `yaml:"simplified_workflow_run_ui_job_cache"`
}

// PreferSimpleForm reports whether the simplified workflow run form is preferred
func (c ClientConfig) PreferSimpleForm() bool {
	return c.SimplifiedWorkflowRunUI == WorkflowRunUIPrefer
}

// UseJobCache reports whether the simplified workflow run form reuses cached jobs
func (c ClientConfig) UseJobCache() bool {
	return c.SimplifiedWorkflowRunUIJobCache == JobCacheOn
}

// Config holds all configuration for the dispatcher and its outer surfaces
type Config struct {
	// Galaxy server settings
	GalaxyURL  string
	AppRoot    string
	ConfigFile string

	// Rerun probe settings
	RerunTimeout time.Duration

	// Number of URLs resolved at once by the batch resolve command
	Concurrency int

	// Client settings mirrored from galaxy.yml
	Client ClientConfig
}

// DefaultClientConfig returns Galaxy's shipped defaults for the client settings
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		SimplifiedWorkflowRunUI:              WorkflowRunUIPrefer,
		SimplifiedWorkflowRunUITargetHistory: "prefer_current",
		SimplifiedWorkflowRunUIJobCache:      JobCacheOff,
	}
}

// Load reads configuration from galaxy.yml (if GALAXY_CONFIG_FILE is set) and environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		GalaxyURL:    getEnv("GALAXY_URL", "http://localhost:8080"),
		AppRoot:      getEnv("GALAXY_APP_ROOT", "/"),
		ConfigFile:   os.Getenv("GALAXY_CONFIG_FILE"),
		RerunTimeout: getEnvDuration("GALAXY_RERUN_TIMEOUT", 5*time.Second),
		Concurrency:  getEnvInt("GALAXY_NAV_CONCURRENCY", 4),
		Client:       DefaultClientConfig(),
	}

	if cfg.ConfigFile != "" {
		client, err := LoadClientConfigFile(cfg.ConfigFile, cfg.Client)
		if err != nil {
			return nil, err
		}
		cfg.Client = client
	}

	// Environment overrides the file, the way Galaxy's GALAXY_CONFIG_* variables do
	cfg.Client.SimplifiedWorkflowRunUI = getEnv("GALAXY_CONFIG_SIMPLIFIED_WORKFLOW_RUN_UI", cfg.Client.SimplifiedWorkflowRunUI)
	cfg.Client.SimplifiedWorkflowRunUITargetHistory = getEnv("GALAXY_CONFIG_SIMPLIFIED_WORKFLOW_RUN_UI_TARGET_HISTORY", cfg.Client.SimplifiedWorkflowRunUITargetHistory)
	cfg.Client.SimplifiedWorkflowRunUIJobCache = getEnv("GALAXY_CONFIG_SIMPLIFIED_WORKFLOW_RUN_UI_JOB_CACHE", cfg.Client.SimplifiedWorkflowRunUIJobCache)

	return cfg, cfg.Validate()
}

// galaxyFile mirrors the top level of galaxy.yml; only the galaxy: section is read
type galaxyFile struct {
	Galaxy *ClientConfig `yaml:"galaxy"`
}

// LoadClientConfigFile reads the client settings from a galaxy.yml file.
// Keys missing from the file keep the values in base.
func LoadClientConfigFile(path string, base ClientConfig) (ClientConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading galaxy config %s: %w", path, err)
	}

	client := base
	file := galaxyFile{Galaxy: &client}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return base, fmt.Errorf("parsing galaxy config %s: %w", path, err)
	}
	if file.Galaxy == nil {
		// an explicit "galaxy:" with no body decodes to nil
		return base, nil
	}
	return *file.Galaxy, nil
}

func (c *Config) Validate() error {
	if c.RerunTimeout <= 0 {
		return fmt.Errorf("GALAXY_RERUN_TIMEOUT must be positive, got %v", c.RerunTimeout)
	}
	if c.Concurrency < 1 || c.Concurrency > 64 {
		return fmt.Errorf("GALAXY_NAV_CONCURRENCY must be 1-64, got %d", c.Concurrency)
	}
	if c.GalaxyURL == "" {
		return fmt.Errorf("GALAXY_URL must not be empty")
	}
	return c.Client.Validate()
}

// Validate checks the client settings against the values Galaxy accepts
func (c ClientConfig) Validate() error {
	switch c.SimplifiedWorkflowRunUI {
	case WorkflowRunUIOff, WorkflowRunUIPrefer:
	default:
		return fmt.Errorf("simplified_workflow_run_ui must be off or prefer, got %q", c.SimplifiedWorkflowRunUI)
	}
	if !validTargetHistories[c.SimplifiedWorkflowRunUITargetHistory] {
		return fmt.Errorf("simplified_workflow_run_ui_target_history must be current, new, prefer_current or prefer_new, got %q",
			c.SimplifiedWorkflowRunUITargetHistory)
	}
	switch c.SimplifiedWorkflowRunUIJobCache {
	case JobCacheOn, JobCacheOff:
	default:
		return fmt.Errorf("simplified_workflow_run_ui_job_cache must be on or off, got %q", c.SimplifiedWorkflowRunUIJobCache)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
