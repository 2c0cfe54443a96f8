// ABOUTME: Rerun classification produced by the job rebuild-info probe
// ABOUTME: Decides whether a rerun goes through the interactive-client page
package models

import "net/url"

// InteractiveClientToolClass is the model_class that marks an interactive-client tool
const InteractiveClientToolClass = "InteractiveClientTool"

// RerunKind is the state of the rerun probe for one navigation event
type RerunKind string

const (
	// RerunNotApplicable - no job id / target id pair was given
	RerunNotApplicable RerunKind = "not_applicable"

	// RerunPending - probe is in flight
	RerunPending RerunKind = "pending"

	// RerunInteractive - job belongs to an interactive-client tool
	RerunInteractive RerunKind = "interactive_rerun"

	// RerunOrdinary - any other tool, or the probe failed
	RerunOrdinary RerunKind = "ordinary"
)

// IsValid checks if the rerun kind is one of the defined constants
func (k RerunKind) IsValid() bool {
	switch k {
	case RerunNotApplicable, RerunPending, RerunInteractive, RerunOrdinary:
		return true
	default:
		return false
	}
}

// RerunClassification is the settled (or pending) result of a rerun probe.
// RedirectURL is only set for RerunInteractive.
type RerunClassification struct {
	Kind        RerunKind `json:"kind"`
	RedirectURL string    `json:"redirect_url,omitempty"`
}

// NotApplicable returns the classification used when no probe runs
func NotApplicable() RerunClassification {
	return RerunClassification{Kind: RerunNotApplicable}
}

// Pending returns the classification of a probe still in flight
func Pending() RerunClassification {
	return RerunClassification{Kind: RerunPending}
}

// Ordinary returns the classification of a non-interactive rerun
func Ordinary() RerunClassification {
	return RerunClassification{Kind: RerunOrdinary}
}

// InteractiveRerun returns the classification redirecting to the legacy rerun page for targetID
func InteractiveRerun(targetID string) RerunClassification {
	return RerunClassification{
		Kind:        RerunInteractive,
		RedirectURL: RerunRedirectPath(targetID),
	}
}

// RerunRedirectPath builds the legacy tool_runner rerun path for a target id
func RerunRedirectPath(targetID string) string {
	return "tool_runner/rerun?id=" + url.QueryEscape(targetID)
}

// IsInteractive reports whether the classification redirects to the legacy rerun page
func (c RerunClassification) IsInteractive() bool {
	return c.Kind == RerunInteractive
}

// ClassifyModel maps a build_for_rerun model_class to a classification
func ClassifyModel(modelClass, targetID string) RerunClassification {
	if modelClass == InteractiveClientToolClass {
		return InteractiveRerun(targetID)
	}
	return Ordinary()
}
