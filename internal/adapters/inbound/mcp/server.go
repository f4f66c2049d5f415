package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewSoonMigrateMCPServer creates a new MCP server with all soon-migrate
// tools and resources registered. The projectPath is the root directory of
// the Anchor project to inspect.
func NewSoonMigrateMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"soon-migrate",
		"0.2.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
