// ABOUTME: CLI command to resolve home-route URLs to center panel targets
// ABOUTME: Each URL is dispatched as its own navigation session, several at once
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/harper/galaxy-nav/internal/config"
	"github.com/harper/galaxy-nav/internal/core"
	"github.com/harper/galaxy-nav/internal/models"
)

var (
	resolveOffline bool
)

// resolvedURL pairs an input URL with the navigation it produced
type resolvedURL struct {
	URL        string            `json:"url"`
	Navigation models.Navigation `json:"navigation"`
	IframeURL  string            `json:"iframe_url,omitempty"`
}

// NewResolveCmd creates resolve command
func NewResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <url>...",
		Short: "Resolve analysis URLs to center panel targets",
		Long: `Resolve one or more Galaxy analysis home-route URLs.

Each URL is treated as a separate browser tab: reruns with job_id and id
ask the Galaxy server (GALAXY_URL) whether the job belongs to an
interactive-client tool before the target is chosen. A failed lookup
falls back to the ordinary tool form.

Examples:
  galaxy-nav resolve '/?tool_id=cat1&version=1.0'
  galaxy-nav resolve '/?tool_id=cat1&job_id=42&id=99' '/?workflow_id=wf1'
  galaxy-nav resolve --offline --format json '/?m_c=history&m_a=list'`,
		Args: cobra.MinimumNArgs(1),
		RunE: runResolve,
	}

	cmd.Flags().BoolVar(&resolveOffline, "offline", false, "Skip the rerun lookup (reruns resolve as ordinary tool forms)")

	return cmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() { _ = env.logger.Sync() }()

	var resolver core.RerunResolver
	if !resolveOffline {
		resolver = env.jobs
	}

	results, err := resolveAll(cmd.Context(), env.cfg, resolver, env.logger, args)
	if err != nil {
		return err
	}

	// Format output
	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	// Table format
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "URL\tRULE\tTARGET\n")
	fmt.Fprintf(w, "---\t----\t------\n")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			truncate(r.URL, 50),
			r.Navigation.Rule,
			describeTarget(r.Navigation, env.cfg.AppRoot))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nResolved: %d url(s)\n", len(results))
	}

	return nil
}

// resolveAll dispatches every URL through its own Dispatcher, at most cfg.Concurrency at a time.
// Results keep the order of urls.
func resolveAll(ctx context.Context, cfg *config.Config, resolver core.RerunResolver, logger *zap.Logger, urls []string) ([]resolvedURL, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([]resolvedURL, len(urls))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Concurrency)

	for i, rawURL := range urls {
		eg.Go(func() error {
			presenter := core.PresenterFunc(func(_ context.Context, nav models.Navigation) error {
				results[i] = resolvedURL{URL: rawURL, Navigation: nav}
				if page, ok := nav.Target.(models.EmbeddedPage); ok {
					results[i].IframeURL = page.URL(cfg.AppRoot)
				}
				return nil
			})

			d := core.NewDispatcher(cfg.Client, resolver, presenter,
				core.WithLogger(logger.With(zap.String("url", rawURL))),
				core.WithRerunTimeout(cfg.RerunTimeout),
				core.WithAppRoot(cfg.AppRoot))

			if _, err := d.DispatchURL(egCtx, rawURL); err != nil {
				return fmt.Errorf("resolving %s: %w", rawURL, err)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
