// ABOUTME: MCP tool handler implementations for the navigation server
// ABOUTME: Tool failures are returned as tool error results, never as protocol errors
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harper/galaxy-nav/internal/core"
	"github.com/harper/galaxy-nav/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	dispatcher *core.Dispatcher
	resolver   core.RerunResolver
	appRoot    string
}

// NewHandlers creates handlers around a dispatcher and the rerun resolver it uses
func NewHandlers(dispatcher *core.Dispatcher, resolver core.RerunResolver, appRoot string) *Handlers {
	return &Handlers{
		dispatcher: dispatcher,
		resolver:   resolver,
		appRoot:    appRoot,
	}
}

// navigationResponse is the resolve_navigation payload
type navigationResponse struct {
	Navigation models.Navigation `json:"navigation"`
	IframeURL  string            `json:"iframe_url,omitempty"`
}

// ResolveNavigation handles the resolve_navigation tool
func (h *Handlers) ResolveNavigation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rawURL := request.GetString("url", "")

	var nav models.Navigation
	if rawURL != "" {
		var err error
		nav, err = h.dispatcher.DispatchURL(ctx, rawURL)
		if errors.Is(err, core.ErrNotHomeRoute) {
			return mcp.NewToolResultError(fmt.Sprintf("url is not an analysis home route: %v", err)), nil
		}
	} else {
		params, err := extractParams(request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		nav = h.dispatcher.Dispatch(ctx, params)
	}

	response := navigationResponse{Navigation: nav}
	if page, ok := nav.Target.(models.EmbeddedPage); ok {
		response.IframeURL = page.URL(h.appRoot)
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ClassifyRerun handles the classify_rerun tool
func (h *Handlers) ClassifyRerun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jobID, err := request.RequireString("job_id")
	if err != nil {
		return mcp.NewToolResultError("job_id argument is required and must be a string"), nil
	}
	targetID, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id argument is required and must be a string"), nil
	}
	if h.resolver == nil {
		return mcp.NewToolResultError("no Galaxy server configured for rerun lookups"), nil
	}

	class, err := h.resolver.Resolve(ctx, jobID, targetID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rerun lookup failed: %v", err)), nil
	}

	responseJSON, err := json.Marshal(class)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ListRouteRules handles the list_route_rules tool
func (h *Handlers) ListRouteRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	response := map[string]interface{}{
		"rules": core.Rules(),
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// extractParams reads the optional params object; every value must be a string
func extractParams(args map[string]interface{}) (map[string]string, error) {
	raw, ok := args["params"]
	if !ok || raw == nil {
		return map[string]string{}, nil
	}

	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("params must be an object")
	}

	params := make(map[string]string, len(obj))
	for key, value := range obj {
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("params.%s must be a string", key)
		}
		params[key] = s
	}
	return params, nil
}
