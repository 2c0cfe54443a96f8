// ABOUTME: Version command to display build information
// ABOUTME: Prints version, commit, build date and Go runtime as text or JSON
package commands

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionInfo = VersionInfo{
	Version: "dev",
	Commit:  "none",
	Date:    "unknown",
}

// VersionInfo contains build information
type VersionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// SetVersion sets the version information (called from main)
func SetVersion(version, commit, date string) {
	versionInfo = VersionInfo{Version: version, Commit: commit, Date: date}
}

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, build date and Go version of galaxy-nav.`,
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(struct {
			VersionInfo
			GoVersion string `json:"go_version"`
		}{versionInfo, runtime.Version()}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "galaxy-nav %s\n", versionInfo.Version)
	fmt.Fprintf(cmd.OutOrStdout(), "Commit: %s\n", versionInfo.Commit)
	fmt.Fprintf(cmd.OutOrStdout(), "Built:  %s\n", versionInfo.Date)
	fmt.Fprintf(cmd.OutOrStdout(), "Go:     %s\n", runtime.Version())
	return nil
}
