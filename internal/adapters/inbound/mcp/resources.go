package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/soon-migrate/soon-migrate/internal/domain"
)

const (
	oraclesURI      = "soon://oracles"
	guideURI        = "soon://guide"
	oracleURIPrefix = oraclesURI + "/"
)

// registerResources registers all soon-migrate MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// 1. soon://oracles - full detection report
	s.AddResource(
		mcplib.NewResource(
			oraclesURI,
			"Oracle Report",
			mcplib.WithResourceDescription("Price-oracle usage detected in the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleOraclesResource(projectPath),
	)

	// 2. soon://guide - APRO integration guide
	s.AddResource(
		mcplib.NewResource(
			guideURI,
			"APRO Integration Guide",
			mcplib.WithResourceDescription("Migration guide from the detected oracles to APRO on SOON"),
			mcplib.WithMIMEType("text/markdown"),
		),
		handleGuideResource(projectPath),
	)

	// 3. soon://oracles/{oracle} - one provider's detection (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			oracleURIPrefix+"{oracle}",
			"Oracle Detection",
			mcplib.WithTemplateDescription("Evidence and suggestion for a single provider, addressed by slug (pyth, switchboard, chainlink, dia, red-stone, apro)"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleOracleResource(projectPath),
	)
}

func handleOraclesResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		rep, err := scanProject(projectPath)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}

		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling report: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      oraclesURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleGuideResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		rep, err := scanProject(projectPath)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}

		text := noGuideMessage
		if rep.HasGuide() {
			text = rep.APROIntegrationGuide
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      guideURI,
				MIMEType: "text/markdown",
				Text:     text,
			},
		}, nil
	}
}

func handleOracleResource(projectPath string) server.ResourceTemplateHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		name := oracleArg(request)
		if name == "" {
			return nil, fmt.Errorf("oracle name is required")
		}
		oracle := domain.ParseOracleType(name)
		if oracle == domain.OracleUnknown && !strings.EqualFold(name, string(domain.OracleUnknown)) {
			return nil, fmt.Errorf("unknown oracle %q", name)
		}

		rep, err := scanProject(projectPath)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		detection, ok := rep.Find(oracle)
		if !ok {
			return nil, fmt.Errorf("%s oracle not detected in project", oracle)
		}

		data, err := json.MarshalIndent(detection, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling detection: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

// oracleArg reads the {oracle} template variable, falling back to the URI.
func oracleArg(request mcplib.ReadResourceRequest) string {
	switch v := request.Params.Arguments["oracle"].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return strings.TrimPrefix(request.Params.URI, oracleURIPrefix)
}
