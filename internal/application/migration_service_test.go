package application_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soon-migrate/soon-migrate/internal/adapters/outbound/config"
	"github.com/soon-migrate/soon-migrate/internal/adapters/outbound/history"
	"github.com/soon-migrate/soon-migrate/internal/domain"
	"github.com/soon-migrate/soon-migrate/internal/domain/report"
)

func parseAnchor(t *testing.T, dir string) map[string]any {
	t.Helper()
	doc := map[string]any{}
	require.NoError(t, toml.Unmarshal([]byte(readFile(t, filepath.Join(dir, domain.AnchorConfigFile))), &doc))
	return doc
}

func writeProjectConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(content), 0644))
}

func TestValidateProject(t *testing.T) {
	svc := newMigrationService()
	assert.NoError(t, svc.ValidateProject(filepath.Join(fixtureRoot, "basic")))

	err := svc.ValidateProject(t.TempDir())
	assert.ErrorIs(t, err, domain.ErrNotAnchorProject)

	onlyAnchor := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(onlyAnchor, domain.AnchorConfigFile), []byte("[provider]\n"), 0644))
	assert.ErrorIs(t, svc.ValidateProject(onlyAnchor), domain.ErrNotAnchorProject)
}

func TestRun_InvalidProject(t *testing.T) {
	_, err := newMigrationService().Run(domain.MigrationOptions{Path: filepath.Join(t.TempDir(), "missing")})
	assert.ErrorIs(t, err, domain.ErrNotAnchorProject)
}

func TestRun_BasicMigration(t *testing.T) {
	dir := copyFixture(t, "basic")
	original := readFile(t, filepath.Join(dir, domain.AnchorConfigFile))

	result, err := newMigrationService().Run(domain.MigrationOptions{Path: dir})
	require.NoError(t, err)

	assert.True(t, result.ConfigUpdated)
	assert.Equal(t, "devnet", result.ClusterFrom)
	assert.Equal(t, domain.DevnetEndpoint, result.ClusterTo)
	assert.Equal(t, domain.NetworkDevnet, result.Network)
	assert.Equal(t, domain.DefaultNextSteps, result.NextSteps)
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.Preview)

	// backup holds the original bytes
	assert.Equal(t, filepath.Join(dir, "Anchor.toml.bak"), result.BackupPath)
	assert.Equal(t, original, readFile(t, result.BackupPath))

	doc := parseAnchor(t, dir)
	assert.Equal(t, domain.DevnetEndpoint, doc["provider"].(map[string]any)["cluster"])
	programs := doc["programs"].(map[string]any)
	assert.NotContains(t, programs, "localnet")
	assert.Equal(t, "Fg6PaFpoGXkYsidMpWTK6W2BeZ7FEfcYkg476zPFsLnS",
		programs["devnet"].(map[string]any)["counter"])

	// unrelated sections survive the rewrite
	assert.Equal(t, "https://api.apr.dev", doc["registry"].(map[string]any)["url"])

	require.NotNil(t, result.OracleReport)
	assert.Empty(t, result.OracleReport.DetectedOracles)
	assert.Equal(t, []string{report.NoOracleMessage}, result.OracleReport.MigrationRecommendations)
}

func TestRun_PythProject(t *testing.T) {
	dir := copyFixture(t, "pyth")

	result, err := newMigrationService().Run(domain.MigrationOptions{Path: dir})
	require.NoError(t, err)

	assert.True(t, result.ConfigUpdated)
	assert.Equal(t, domain.MainnetEndpoint, result.ClusterTo)
	assert.Equal(t, domain.NetworkMainnet, result.Network)

	d, ok := result.OracleReport.Find(domain.OraclePyth)
	require.True(t, ok)
	assert.Equal(t, domain.ConfidenceHigh, d.Confidence)
	assert.Len(t, d.Locations, 2)
	assert.True(t, result.OracleReport.HasGuide())

	assert.Contains(t, result.Warnings, "Pyth oracle detected; migration required for SOON compatibility")

	doc := parseAnchor(t, dir)
	assert.Contains(t, doc["programs"].(map[string]any), "mainnet")
}

func TestRun_OracleOnlyLeavesConfigUntouched(t *testing.T) {
	dir := copyFixture(t, "pyth")
	path := filepath.Join(dir, domain.AnchorConfigFile)
	before := readFile(t, path)

	result, err := newMigrationService().Run(domain.MigrationOptions{Path: dir, OracleOnly: true})
	require.NoError(t, err)

	assert.False(t, result.ConfigUpdated)
	assert.Empty(t, result.BackupPath)
	assert.Empty(t, result.NextSteps)
	assert.Len(t, result.OracleReport.DetectedOracles, 1)
	assert.Equal(t, before, readFile(t, path))
	assert.NoFileExists(t, domain.BackupPath(path))
}

func TestRun_OracleOnlyToleratesBrokenAnchor(t *testing.T) {
	dir := copyFixture(t, "pyth")
	path := filepath.Join(dir, domain.AnchorConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("[provider\ncluster ="), 0644))

	result, err := newMigrationService().Run(domain.MigrationOptions{Path: dir, OracleOnly: true})
	require.NoError(t, err)
	assert.Len(t, result.OracleReport.DetectedOracles, 1)
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	dir := copyFixture(t, "basic")
	path := filepath.Join(dir, domain.AnchorConfigFile)
	before := readFile(t, path)

	result, err := newMigrationService().Run(domain.MigrationOptions{Path: dir, DryRun: true})
	require.NoError(t, err)

	assert.False(t, result.ConfigUpdated)
	assert.Empty(t, result.BackupPath)
	assert.Equal(t, domain.DevnetEndpoint, result.ClusterTo)
	assert.Contains(t, result.Preview, domain.DevnetEndpoint)
	assert.Contains(t, result.Preview, "[programs.devnet]")
	assert.Equal(t, before, readFile(t, path))
	assert.NoFileExists(t, domain.BackupPath(path))
}

func TestRun_SecondRunKeepsEndpoint(t *testing.T) {
	dir := copyFixture(t, "pyth")
	svc := newMigrationService()

	original := readFile(t, filepath.Join(dir, domain.AnchorConfigFile))
	_, err := svc.Run(domain.MigrationOptions{Path: dir})
	require.NoError(t, err)
	migrated := readFile(t, filepath.Join(dir, domain.AnchorConfigFile))

	result, err := svc.Run(domain.MigrationOptions{Path: dir})
	require.NoError(t, err)

	assert.False(t, result.ConfigUpdated)
	assert.Equal(t, domain.MainnetEndpoint, result.ClusterFrom)
	assert.Equal(t, domain.MainnetEndpoint, result.ClusterTo)
	assert.Equal(t, domain.NetworkMainnet, result.Network)
	assert.Equal(t, migrated, readFile(t, filepath.Join(dir, domain.AnchorConfigFile)))
	assert.Contains(t, result.Warnings, "No [programs.localnet] section found; program IDs were left unchanged")

	// a no-op run keeps the backup of the pre-migration file
	assert.Empty(t, result.BackupPath)
	assert.Equal(t, original, readFile(t, domain.BackupPath(filepath.Join(dir, domain.AnchorConfigFile))))
}

func TestRun_ReplacesExistingNetworkPrograms(t *testing.T) {
	dir := copyFixture(t, "switchboard")

	result, err := newMigrationService().Run(domain.MigrationOptions{Path: dir})
	require.NoError(t, err)

	assert.Equal(t, domain.TestnetEndpoint, result.ClusterTo)
	assert.Equal(t, domain.NetworkTestnet, result.Network)
	assert.Contains(t, result.Warnings, "[programs.testnet] already existed and was replaced by [programs.localnet]")

	programs := parseAnchor(t, dir)["programs"].(map[string]any)
	assert.Equal(t, "SW1TCH7qEPTdLsDHRgPuMQjbQxKdH2aBStViMFnt64f",
		programs["testnet"].(map[string]any)["feed_reader"])
}

func TestRun_TomlParseError(t *testing.T) {
	dir := copyFixture(t, "basic")
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.AnchorConfigFile), []byte("[provider\ncluster ="), 0644))

	_, err := newMigrationService().Run(domain.MigrationOptions{Path: dir})
	assert.ErrorIs(t, err, domain.ErrTomlParse)
	assert.NoFileExists(t, domain.BackupPath(filepath.Join(dir, domain.AnchorConfigFile)))
}

func TestRun_IgnoreOraclesFromProjectConfig(t *testing.T) {
	dir := copyFixture(t, "pyth")
	writeProjectConfig(t, dir, "ignore_oracles:\n  - Pyth\n")

	result, err := newMigrationService().Run(domain.MigrationOptions{Path: dir, OracleOnly: true})
	require.NoError(t, err)
	assert.Empty(t, result.OracleReport.DetectedOracles)
	assert.Empty(t, result.Warnings)
}

func TestRun_InvalidProjectConfig(t *testing.T) {
	dir := copyFixture(t, "basic")
	writeProjectConfig(t, dir, "max_depth: -3\n")

	_, err := newMigrationService().Run(domain.MigrationOptions{Path: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_depth")
}

func TestRun_RecordsHistoryWhenEnabled(t *testing.T) {
	dir := copyFixture(t, "pyth")
	writeProjectConfig(t, dir, "record_history: true\n")
	svc := newMigrationService()

	_, err := svc.Run(domain.MigrationOptions{Path: dir})
	require.NoError(t, err)
	require.NoError(t, svc.Restore(dir))

	entries, err := history.New().Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.ActionMigrate, entries[0].Action)
	assert.Equal(t, "mainnet-beta", entries[0].ClusterFrom)
	assert.Equal(t, domain.MainnetEndpoint, entries[0].ClusterTo)
	assert.Equal(t, []string{"Pyth"}, entries[0].Oracles)
	assert.NotEmpty(t, entries[0].Timestamp)
	assert.Equal(t, domain.ActionRestore, entries[1].Action)
}

func TestRun_NoHistoryByDefault(t *testing.T) {
	dir := copyFixture(t, "basic")

	_, err := newMigrationService().Run(domain.MigrationOptions{Path: dir})
	require.NoError(t, err)

	entries, err := history.New().Load(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRestore_RoundTrip(t *testing.T) {
	dir := copyFixture(t, "basic")
	path := filepath.Join(dir, domain.AnchorConfigFile)
	original := readFile(t, path)
	svc := newMigrationService()

	_, err := svc.Run(domain.MigrationOptions{Path: dir})
	require.NoError(t, err)
	assert.NotEqual(t, original, readFile(t, path))

	require.NoError(t, svc.Restore(dir))
	assert.Equal(t, original, readFile(t, path))
	assert.NoFileExists(t, domain.BackupPath(path))

	err = svc.Restore(dir)
	assert.ErrorIs(t, err, domain.ErrBackupNotFound)
}
