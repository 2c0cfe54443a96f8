// ABOUTME: Tests for resolve command
// ABOUTME: Verifies command structure and batch resolution through per-URL dispatchers

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/harper/galaxy-nav/internal/config"
	"github.com/harper/galaxy-nav/internal/core"
	"github.com/harper/galaxy-nav/internal/models"
)

// stubResolver answers rerun lookups from a map of job id to model class
type stubResolver struct {
	mu      sync.Mutex
	classes map[string]string
	calls   []string
}

func (s *stubResolver) Resolve(ctx context.Context, jobID, targetID string) (models.RerunClassification, error) {
	s.mu.Lock()
	s.calls = append(s.calls, jobID)
	s.mu.Unlock()

	class, ok := s.classes[jobID]
	if !ok {
		return models.Ordinary(), errors.New("unknown job")
	}
	return models.ClassifyModel(class, targetID), nil
}

func testConfig() *config.Config {
	return &config.Config{
		GalaxyURL:    "http://galaxy.test",
		AppRoot:      "/galaxy/",
		RerunTimeout: time.Second,
		Concurrency:  2,
		Client:       config.DefaultClientConfig(),
	}
}

func TestNewResolveCmd(t *testing.T) {
	cmd := NewResolveCmd()

	if cmd.Use != "resolve <url>..." {
		t.Errorf("Use = %q, want %q", cmd.Use, "resolve <url>...")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if err := cmd.Args(cmd, []string{}); err == nil {
		t.Error("resolve should require at least one URL")
	}
}

func TestResolveCmd_OfflineFlag(t *testing.T) {
	cmd := NewResolveCmd()

	flag := cmd.Flags().Lookup("offline")
	if flag == nil {
		t.Fatal("--offline flag not found")
	}

	if flag.DefValue != "false" {
		t.Errorf("--offline default = %q, want %q", flag.DefValue, "false")
	}
}

func TestResolveAll(t *testing.T) {
	resolver := &stubResolver{classes: map[string]string{
		"42": models.InteractiveClientToolClass,
		"43": "Tool",
	}}

	urls := []string{
		"/galaxy/?tool_id=upload1&job_id=42&id=99",
		"https://example.org/galaxy/?tool_id=cat1&job_id=42&id=99",
		"/galaxy/root?tool_id=cat1&job_id=43&id=99",
		"/galaxy/?workflow_id=wf1",
		"/galaxy/?m_c=history&m_a=list&utm=%zz",
		"/galaxy",
	}

	results, err := resolveAll(context.Background(), testConfig(), resolver, zap.NewNop(), urls)
	if err != nil {
		t.Fatalf("resolveAll() error = %v", err)
	}

	wantRules := []models.RouteRule{
		models.RuleUpload,
		models.RuleInteractiveRerun,
		models.RuleToolForm,
		models.RuleWorkflowRun,
		models.RuleControllerAction,
		models.RuleWelcome,
	}
	if len(results) != len(urls) {
		t.Fatalf("got %d results, want %d", len(results), len(urls))
	}
	for i, r := range results {
		if r.URL != urls[i] {
			t.Errorf("results[%d].URL = %q, want %q", i, r.URL, urls[i])
		}
		if r.Navigation.Rule != wantRules[i] {
			t.Errorf("results[%d].Rule = %q, want %q", i, r.Navigation.Rule, wantRules[i])
		}
	}

	if got := results[1].IframeURL; got != "/galaxy/tool_runner/rerun?id=99" {
		t.Errorf("rerun iframe = %q, want %q", got, "/galaxy/tool_runner/rerun?id=99")
	}
	if got := results[4].IframeURL; got != "/galaxy/history/list" {
		t.Errorf("legacy page iframe = %q, want %q", got, "/galaxy/history/list")
	}
	if results[2].IframeURL != "" {
		t.Errorf("tool form should have no iframe, got %q", results[2].IframeURL)
	}

	// The upload URL never probes
	if len(resolver.calls) != 2 {
		t.Errorf("resolver called %d times, want 2: %v", len(resolver.calls), resolver.calls)
	}
}

func TestResolveAll_Offline(t *testing.T) {
	results, err := resolveAll(context.Background(), testConfig(), nil, zap.NewNop(),
		[]string{"/galaxy/?tool_id=cat1&job_id=42&id=99"})
	if err != nil {
		t.Fatalf("resolveAll() error = %v", err)
	}

	tool, ok := results[0].Navigation.Target.(models.ToolForm)
	if !ok {
		t.Fatalf("target = %T, want models.ToolForm", results[0].Navigation.Target)
	}
	if tool.ID != "cat1" || tool.JobID != "42" {
		t.Errorf("tool form = %+v", tool)
	}
}

func TestResolveAll_NotHomeRoute(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"other page", "/galaxy/datasets/list"},
		{"outside app root", "/?tool_id=cat1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveAll(context.Background(), testConfig(), nil, zap.NewNop(),
				[]string{"/galaxy/", tt.url})
			if !errors.Is(err, core.ErrNotHomeRoute) {
				t.Errorf("error = %v, want ErrNotHomeRoute", err)
			}
		})
	}
}

func TestResolveCmd_JSONOutput(t *testing.T) {
	withGalaxyServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("offline resolve should not reach the server: %s", r.URL.Path)
	})
	outputFormat = "json"
	t.Cleanup(func() { resolveOffline = false })

	cmd := NewResolveCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{"--offline", "/?tool_id=cat1&job_id=42&id=99"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var got []map[string]any
	if err := json.Unmarshal(output.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, output.String())
	}
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1", len(got))
	}
	nav, ok := got[0]["navigation"].(map[string]any)
	if !ok {
		t.Fatalf("navigation missing: %v", got[0])
	}
	if nav["rule"] != string(models.RuleToolForm) {
		t.Errorf("rule = %v, want %q", nav["rule"], models.RuleToolForm)
	}
}

func TestResolveCmd_TextOutput(t *testing.T) {
	withGalaxyServer(t, modelClassHandler(models.InteractiveClientToolClass))
	outputFormat = "text"

	cmd := NewResolveCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	t.Setenv("GALAXY_APP_ROOT", "/galaxy/")
	cmd.SetArgs([]string{"https://example.org/galaxy/?tool_id=cat1&job_id=42&id=99"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	out := output.String()
	for _, want := range []string{"RULE", string(models.RuleInteractiveRerun), "/galaxy/tool_runner/rerun?id=99"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
}
