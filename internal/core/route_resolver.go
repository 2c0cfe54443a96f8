// ABOUTME: RouteResolver decides which center-panel target a home-route request shows
// ABOUTME: Evaluates an ordered rule table; the first matching rule wins
package core

import (
	"github.com/harper/galaxy-nav/internal/config"
	"github.com/harper/galaxy-nav/internal/models"
)

// RouteResolver maps a request and its rerun classification to a navigation target
type RouteResolver struct {
	client config.ClientConfig
}

// NewRouteResolver creates a RouteResolver reading the given client configuration
func NewRouteResolver(client config.ClientConfig) *RouteResolver {
	return &RouteResolver{client: client}
}

// routeRule pairs a predicate with the target it produces
type routeRule struct {
	name    models.RouteRule
	matches func(req models.RequestDescriptor, class models.RerunClassification) bool
	target  func(r *RouteResolver, req models.RequestDescriptor, class models.RerunClassification) models.NavigationTarget
}

// routeRules is evaluated in order. The last rule matches everything.
var routeRules = []routeRule{
	{
		name: models.RuleUpload,
		matches: func(req models.RequestDescriptor, _ models.RerunClassification) bool {
			return req.IsUpload()
		},
		target: func(_ *RouteResolver, _ models.RequestDescriptor, _ models.RerunClassification) models.NavigationTarget {
			return models.EmbeddedPage{Path: "welcome"}
		},
	},
	{
		name: models.RuleInteractiveRerun,
		matches: func(_ models.RequestDescriptor, class models.RerunClassification) bool {
			return class.IsInteractive()
		},
		target: func(_ *RouteResolver, _ models.RequestDescriptor, class models.RerunClassification) models.NavigationTarget {
			return models.EmbeddedPage{Path: class.RedirectURL}
		},
	},
	{
		name: models.RuleToolForm,
		matches: func(req models.RequestDescriptor, _ models.RerunClassification) bool {
			return req.ToolID != "" || req.JobID != ""
		},
		target: func(_ *RouteResolver, req models.RequestDescriptor, _ models.RerunClassification) models.NavigationTarget {
			return models.ToolForm{ID: req.ToolID, Version: req.Version, JobID: req.JobID}
		},
	},
	{
		name: models.RuleWorkflowRun,
		matches: func(req models.RequestDescriptor, _ models.RerunClassification) bool {
			return req.WorkflowID != ""
		},
		target: func(r *RouteResolver, req models.RequestDescriptor, _ models.RerunClassification) models.NavigationTarget {
			return r.workflowRun(req)
		},
	},
	{
		name: models.RuleControllerAction,
		matches: func(req models.RequestDescriptor, _ models.RerunClassification) bool {
			return req.Controller != ""
		},
		target: func(_ *RouteResolver, req models.RequestDescriptor, _ models.RerunClassification) models.NavigationTarget {
			if req.Action == "" {
				return models.EmbeddedPage{Path: req.Controller}
			}
			return models.EmbeddedPage{Path: req.Controller + "/" + req.Action}
		},
	},
	{
		name: models.RuleWelcome,
		matches: func(models.RequestDescriptor, models.RerunClassification) bool {
			return true
		},
		target: func(*RouteResolver, models.RequestDescriptor, models.RerunClassification) models.NavigationTarget {
			return models.Welcome{}
		},
	},
}

// Rules returns the rule names in evaluation order
func Rules() []models.RouteRule {
	names := make([]models.RouteRule, len(routeRules))
	for i, rule := range routeRules {
		names[i] = rule.name
	}
	return names
}

// Resolve picks the navigation target for req. It is pure and always returns a target;
// pending or not-applicable classifications behave like ordinary ones.
func (r *RouteResolver) Resolve(req models.RequestDescriptor, class models.RerunClassification) models.Navigation {
	for _, rule := range routeRules {
		if !rule.matches(req, class) {
			continue
		}
		return models.Navigation{
			Rule:       rule.name,
			Target:     rule.target(r, req, class),
			OpenUpload: rule.name == models.RuleUpload,
		}
	}

	// Unreachable while the welcome rule is last
	return models.Navigation{Rule: models.RuleWelcome, Target: models.Welcome{}}
}

// workflowRun derives the workflow run form settings.
// The query override can only switch the simple form on, never off.
func (r *RouteResolver) workflowRun(req models.RequestDescriptor) models.WorkflowRun {
	preferSimpleForm := r.client.PreferSimpleForm()
	if req.SimplifiedWorkflowRunUI == config.WorkflowRunUIPrefer {
		preferSimpleForm = true
	}

	return models.WorkflowRun{
		WorkflowID:              req.WorkflowID,
		PreferSimpleForm:        preferSimpleForm,
		SimpleFormTargetHistory: r.client.SimplifiedWorkflowRunUITargetHistory,
		SimpleFormUseJobCache:   r.client.UseJobCache(),
	}
}
