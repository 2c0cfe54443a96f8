// ABOUTME: Navigation targets for the analysis center panel
// ABOUTME: Defines the route rules, the 4 target variants, and the dispatch result envelope
package models

import (
	"encoding/json"
	"strings"
)

// RouteRule names the rule that selected a navigation target
type RouteRule string

const (
	// RuleUpload - tool_id is upload1 → welcome page with the upload dialog open
	RuleUpload RouteRule = "upload"

	// RuleInteractiveRerun - rerun of an interactive-client tool → legacy rerun page
	RuleInteractiveRerun RouteRule = "interactive_rerun"

	// RuleToolForm - tool_id or job_id present → tool form
	RuleToolForm RouteRule = "tool_form"

	// RuleWorkflowRun - workflow_id present → workflow run form
	RuleWorkflowRun RouteRule = "workflow_run"

	// RuleControllerAction - m_c present → legacy controller/action page
	RuleControllerAction RouteRule = "controller_action"

	// RuleWelcome - nothing recognized → welcome
	RuleWelcome RouteRule = "welcome"
)

// IsValid checks if the rule is one of the defined constants
func (r RouteRule) IsValid() bool {
	switch r {
	case RuleUpload, RuleInteractiveRerun, RuleToolForm, RuleWorkflowRun, RuleControllerAction, RuleWelcome:
		return true
	default:
		return false
	}
}

// TargetKind discriminates the NavigationTarget variants
type TargetKind string

const (
	KindToolForm     TargetKind = "tool_form"
	KindWorkflowRun  TargetKind = "workflow_run"
	KindEmbeddedPage TargetKind = "embedded_page"
	KindWelcome      TargetKind = "welcome"
)

// NavigationTarget is what the center panel should show.
// The set of implementations is closed to this package.
type NavigationTarget interface {
	Kind() TargetKind
	isNavigationTarget()
}

// ToolForm loads a tool's parameter form. JobID is set when the form is a rerun.
type ToolForm struct {
	ID      string `json:"id,omitempty"`
	Version string `json:"version,omitempty"`
	JobID   string `json:"job_id,omitempty"`
}

// WorkflowRun loads the workflow run form
type WorkflowRun struct {
	WorkflowID              string `json:"workflow_id"`
	PreferSimpleForm        bool   `json:"prefer_simple_form"`
	SimpleFormTargetHistory string `json:"simple_form_target_history,omitempty"`
	SimpleFormUseJobCache   bool   `json:"simple_form_use_job_cache"`
}

// EmbeddedPage loads a legacy page, relative to the app root, in the center iframe
type EmbeddedPage struct {
	Path string `json:"path"`
}

// Welcome shows the welcome screen
type Welcome struct{}

func (ToolForm) Kind() TargetKind     { return KindToolForm }
func (WorkflowRun) Kind() TargetKind  { return KindWorkflowRun }
func (EmbeddedPage) Kind() TargetKind { return KindEmbeddedPage }
func (Welcome) Kind() TargetKind      { return KindWelcome }

func (ToolForm) isNavigationTarget()     {}
func (WorkflowRun) isNavigationTarget()  {}
func (EmbeddedPage) isNavigationTarget() {}
func (Welcome) isNavigationTarget()      {}

// URL joins the page path onto appRoot. An empty root means "/".
func (p EmbeddedPage) URL(appRoot string) string {
	if appRoot == "" {
		appRoot = "/"
	}
	if !strings.HasSuffix(appRoot, "/") {
		appRoot += "/"
	}
	return appRoot + strings.TrimPrefix(p.Path, "/")
}

// Navigation is the outcome of one navigation event
type Navigation struct {
	EventID string           `json:"event_id"`
	Rule    RouteRule        `json:"rule"`
	Target  NavigationTarget `json:"target"`

	// OpenUpload asks the presentation layer to open the upload dialog
	OpenUpload bool `json:"open_upload,omitempty"`

	// Superseded is set when a newer navigation started before this one settled;
	// superseded navigations are never presented.
	Superseded bool `json:"superseded,omitempty"`
}

// MarshalJSON adds the target kind next to the target payload
func (n Navigation) MarshalJSON() ([]byte, error) {
	type alias Navigation
	var kind TargetKind
	if n.Target != nil {
		kind = n.Target.Kind()
	}
	return json.Marshal(struct {
		alias
		Kind TargetKind `json:"kind"`
	}{alias: alias(n), Kind: kind})
}
