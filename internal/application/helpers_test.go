package application_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soon-migrate/soon-migrate/internal/adapters/outbound/anchor"
	"github.com/soon-migrate/soon-migrate/internal/adapters/outbound/config"
	"github.com/soon-migrate/soon-migrate/internal/adapters/outbound/gitinfo"
	"github.com/soon-migrate/soon-migrate/internal/adapters/outbound/history"
	"github.com/soon-migrate/soon-migrate/internal/adapters/outbound/scanner"
	"github.com/soon-migrate/soon-migrate/internal/application"
)

const fixtureRoot = "../../testdata/anchor"

// copyFixture copies a fixture project into a temp dir so runs can mutate it.
func copyFixture(t *testing.T, name string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.CopyFS(dir, os.DirFS(filepath.Join(fixtureRoot, name))))
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func newOracleService() *application.OracleService {
	return application.NewOracleService(scanner.New(), nil)
}

func newMigrationService() *application.MigrationService {
	return application.NewMigrationService(
		newOracleService(),
		anchor.New(),
		config.New(),
		gitinfo.New(),
		history.New(),
		nil,
	)
}
