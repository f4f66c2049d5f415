package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soon-migrate/soon-migrate/internal/domain"
)

const pythFixture = "../../../../testdata/anchor/pyth"

func callTool(t *testing.T, h func(context.Context, mcplib.CallToolRequest) (*mcplib.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	req := mcplib.CallToolRequest{}
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestScanOraclesTool(t *testing.T) {
	out, isErr := callTool(t, handleScanOracles(pythFixture), nil)
	require.False(t, isErr, out)

	var rep domain.OracleReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.DetectedOracles, 1)
	assert.Equal(t, domain.OraclePyth, rep.DetectedOracles[0].OracleType)
	assert.Len(t, rep.DetectedOracles[0].Locations, 2)
}

func TestAPROGuideTool(t *testing.T) {
	out, isErr := callTool(t, handleAPROGuide(pythFixture), nil)
	require.False(t, isErr)
	assert.Contains(t, out, "APRO Oracle Integration Guide")

	out, isErr = callTool(t, handleAPROGuide("../../../../testdata/anchor/basic"), nil)
	require.False(t, isErr)
	assert.Equal(t, noGuideMessage, out)
}

func TestMapClusterTool(t *testing.T) {
	out, isErr := callTool(t, handleMapCluster(), map[string]any{"cluster": "Mainnet-Beta"})
	require.False(t, isErr)

	var m ClusterMapping
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, domain.MainnetEndpoint, m.Endpoint)
	assert.Equal(t, domain.NetworkMainnet, m.Network)

	out, _ = callTool(t, handleMapCluster(), map[string]any{"cluster": domain.TestnetEndpoint})
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, domain.TestnetEndpoint, m.Endpoint, "SOON endpoints are kept as-is")

	_, isErr = callTool(t, handleMapCluster(), nil)
	assert.True(t, isErr)
}

func TestMigratePreviewToolNeverWrites(t *testing.T) {
	path := filepath.Join(pythFixture, domain.AnchorConfigFile)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	out, isErr := callTool(t, handleMigratePreview(pythFixture), nil)
	require.False(t, isErr, out)

	var result domain.MigrationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.ConfigUpdated)
	assert.Equal(t, domain.MainnetEndpoint, result.ClusterTo)
	assert.Contains(t, result.Preview, domain.MainnetEndpoint)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.NoFileExists(t, domain.BackupPath(path))
}

func TestMigratePreviewTool_InvalidProject(t *testing.T) {
	out, isErr := callTool(t, handleMigratePreview(t.TempDir()), nil)
	assert.True(t, isErr)
	assert.Contains(t, out, "not a valid Anchor project")
}

func TestOracleResourceTemplate(t *testing.T) {
	req := mcplib.ReadResourceRequest{}
	req.Params.URI = "soon://oracles/pyth"
	req.Params.Arguments = map[string]any{"oracle": []string{"pyth"}}

	contents, err := handleOracleResource(pythFixture)(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text, ok := contents[0].(mcplib.TextResourceContents)
	require.True(t, ok)
	assert.Contains(t, text.Text, `"oracle_type": "Pyth"`)

	req.Params.URI = "soon://oracles/chainlink"
	req.Params.Arguments = nil
	_, err = handleOracleResource(pythFixture)(context.Background(), req)
	assert.ErrorContains(t, err, "Chainlink oracle not detected")

	req.Params.URI = "soon://oracles/bogus"
	_, err = handleOracleResource(pythFixture)(context.Background(), req)
	assert.ErrorContains(t, err, "unknown oracle")
}

func TestGuideResource(t *testing.T) {
	contents, err := handleGuideResource(pythFixture)(context.Background(), mcplib.ReadResourceRequest{})
	require.NoError(t, err)
	text, ok := contents[0].(mcplib.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "text/markdown", text.MIMEType)
	assert.Contains(t, text.Text, "APRO")
}
