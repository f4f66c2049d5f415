package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/soon-migrate/soon-migrate/internal/adapters/outbound/anchor"
	"github.com/soon-migrate/soon-migrate/internal/adapters/outbound/config"
	"github.com/soon-migrate/soon-migrate/internal/adapters/outbound/gitinfo"
	"github.com/soon-migrate/soon-migrate/internal/adapters/outbound/scanner"
	"github.com/soon-migrate/soon-migrate/internal/application"
	"github.com/soon-migrate/soon-migrate/internal/domain"
)

const noGuideMessage = "No oracle integration guide available."

// registerTools registers all soon-migrate MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. soon_scan_oracles
	s.AddTool(
		mcplib.NewTool("soon_scan_oracles",
			mcplib.WithDescription("Scan the project's Cargo.toml and Rust sources for price-oracle usage and return the report as JSON"),
		),
		handleScanOracles(projectPath),
	)

	// 2. soon_apro_guide
	s.AddTool(
		mcplib.NewTool("soon_apro_guide",
			mcplib.WithDescription("Returns the APRO integration guide (markdown) tailored to the oracles detected in the project"),
		),
		handleAPROGuide(projectPath),
	)

	// 3. soon_map_cluster
	s.AddTool(
		mcplib.NewTool("soon_map_cluster",
			mcplib.WithDescription("Map a Solana cluster name to its SOON RPC endpoint and programs network key"),
			mcplib.WithString("cluster",
				mcplib.Required(),
				mcplib.Description("Cluster name as written in Anchor.toml (e.g. mainnet-beta, testnet, devnet)"),
			),
		),
		handleMapCluster(),
	)

	// 4. soon_migrate_preview
	s.AddTool(
		mcplib.NewTool("soon_migrate_preview",
			mcplib.WithDescription("Dry-run the Anchor.toml migration. Returns the would-be file, warnings and oracle report; nothing is written."),
			mcplib.WithBoolean("oracle_only", mcplib.Description("Skip the Anchor.toml rewrite and only scan for oracles")),
		),
		handleMigratePreview(projectPath),
	)
}

// newServices creates the standard set of outbound adapters and services.
// History is not wired: the MCP surface never writes to the project.
func newServices() (*application.OracleService, *application.MigrationService) {
	oracles := application.NewOracleService(scanner.New(), nil)
	migrations := application.NewMigrationService(oracles, anchor.New(), config.New(), gitinfo.New(), nil, nil)
	return oracles, migrations
}

// scanProject loads the project config and runs the oracle scan.
func scanProject(projectPath string) (*domain.OracleReport, error) {
	cfg, err := config.New().Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	oracles, _ := newServices()
	return oracles.ScanProject(projectPath, cfg)
}

func handleScanOracles(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		rep, err := scanProject(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("scan failed: %v", err)), nil
		}
		return jsonResult(rep)
	}
}

func handleAPROGuide(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		rep, err := scanProject(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("scan failed: %v", err)), nil
		}
		if !rep.HasGuide() {
			return textResult(noGuideMessage), nil
		}
		return textResult(rep.APROIntegrationGuide), nil
	}
}

// ClusterMapping is the soon_map_cluster response.
type ClusterMapping struct {
	Cluster  string `json:"cluster"`
	Endpoint string `json:"endpoint"`
	Network  string `json:"network"`
}

func handleMapCluster() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cluster, err := request.RequireString("cluster")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		endpoint := cluster
		if !domain.IsSOONEndpoint(cluster) {
			endpoint = domain.MapCluster(cluster)
		}
		return jsonResult(ClusterMapping{
			Cluster:  cluster,
			Endpoint: endpoint,
			Network:  domain.NetworkFor(endpoint),
		})
	}
}

func handleMigratePreview(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		oracleOnly, _ := request.GetArguments()["oracle_only"].(bool)

		_, svc := newServices()
		result, err := svc.Run(domain.MigrationOptions{
			Path:       projectPath,
			DryRun:     true,
			OracleOnly: oracleOnly,
		})
		if err != nil {
			return errorResult(fmt.Sprintf("migration preview failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
