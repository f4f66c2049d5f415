package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/soon-migrate/soon-migrate/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the optional per-project configuration file.
const FileName = ".soon-migrate.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .soon-migrate.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .soon-migrate.yaml from projectPath.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}

	return cfg, nil
}

// Render produces the YAML document written by `soon-migrate init`.
func Render(cfg domain.ProjectConfig) ([]byte, error) {
	body, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", FileName, err)
	}
	header := "# soon-migrate project configuration\n" +
		"# exclude_paths: extra directory names skipped during the oracle scan\n" +
		"# ignore_oracles: providers left out of the report (e.g. red-stone, dia)\n" +
		"# max_depth: maximum directory depth scanned\n" +
		"# record_history: log migrations to .soon-migrate/history.json\n"
	return append([]byte(header), body...), nil
}
