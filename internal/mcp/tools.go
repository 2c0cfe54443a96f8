// ABOUTME: MCP tool definitions and registration for the navigation server
// ABOUTME: Exposes home-route resolution, rerun classification and the rule order as tools
package mcp

import (
	"github.com/harper/galaxy-nav/internal/core"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, dispatcher *core.Dispatcher, resolver core.RerunResolver, appRoot string) *Handlers {
	handlers := NewHandlers(dispatcher, resolver, appRoot)

	// 1. resolve_navigation - Decide what the analysis center panel shows for a URL
	server.AddTool(mcp.Tool{
		Name:        "resolve_navigation",
		Description: "Resolve a Galaxy analysis home-route URL (or its query parameters) to the center panel target: tool form, workflow run form, embedded page, or welcome.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"url": map[string]interface{}{
					"type":        "string",
					"description": "Home-route URL, e.g. /?tool_id=cat1&version=1.0",
				},
				"params": map[string]interface{}{
					"type":        "object",
					"description": "Query parameters (tool_id, job_id, id, version, workflow_id, m_c, m_a, simplified_workflow_run_ui); used when url is not given",
					"additionalProperties": map[string]interface{}{
						"type": "string",
					},
				},
			},
		},
	}, handlers.ResolveNavigation)

	// 2. classify_rerun - Ask Galaxy whether a job rerun needs the interactive-client page
	server.AddTool(mcp.Tool{
		Name:        "classify_rerun",
		Description: "Look up a job's rebuild info and report whether rerunning it goes through the interactive-client rerun page.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"job_id": map[string]interface{}{
					"type":        "string",
					"description": "Encoded id of the job to rerun",
				},
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Rerun target id passed to tool_runner/rerun",
				},
			},
			Required: []string{"job_id", "id"},
		},
	}, handlers.ClassifyRerun)

	// 3. list_route_rules - Show the rule precedence
	server.AddTool(mcp.Tool{
		Name:        "list_route_rules",
		Description: "List the home-route rules in the order they are evaluated; the first match wins.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListRouteRules)

	return handlers
}
