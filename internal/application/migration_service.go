package application

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/soon-migrate/soon-migrate/internal/adapters/outbound/logger"
	"github.com/soon-migrate/soon-migrate/internal/domain"
)

// MigrationService rewrites Anchor.toml for SOON and attaches the oracle
// report to the result.
type MigrationService struct {
	oracles *OracleService
	store   domain.AnchorStore
	config  domain.ConfigLoader
	git     domain.GitInfo
	history domain.MigrationHistory
	log     *logrus.Logger
}

// NewMigrationService wires the migration pipeline. git and history may be
// nil, in which case those features are skipped.
func NewMigrationService(
	oracles *OracleService,
	store domain.AnchorStore,
	cfg domain.ConfigLoader,
	git domain.GitInfo,
	hist domain.MigrationHistory,
	log *logrus.Logger,
) *MigrationService {
	return &MigrationService{
		oracles: oracles,
		store:   store,
		config:  cfg,
		git:     git,
		history: hist,
		log:     logger.OrDiscard(log),
	}
}

// ValidateProject requires both Anchor.toml and Cargo.toml at the root.
func (s *MigrationService) ValidateProject(projectPath string) error {
	for _, name := range []string{domain.AnchorConfigFile, domain.ManifestFile} {
		if !s.store.Exists(filepath.Join(projectPath, name)) {
			return fmt.Errorf("%w: %s", domain.ErrNotAnchorProject, projectPath)
		}
	}
	return nil
}

// Run performs a migration. Dry runs and oracle-only runs never touch the
// filesystem. A real run rewrites Anchor.toml only when something changed,
// and backs it up immediately before doing so.
func (s *MigrationService) Run(opts domain.MigrationOptions) (*domain.MigrationResult, error) {
	// 1. Validate and load project settings
	if err := s.ValidateProject(opts.Path); err != nil {
		return nil, err
	}
	cfg, err := s.config.Load(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	result := &domain.MigrationResult{Warnings: []string{}, NextSteps: []string{}}

	// 2. Oracle scan
	rep, err := s.oracles.ScanProject(opts.Path, cfg)
	if err != nil {
		return nil, err
	}
	result.OracleReport = rep
	result.Warnings = append(result.Warnings, oracleWarnings(rep)...)

	if opts.OracleOnly {
		s.log.Debug("oracle-only run, Anchor.toml left untouched")
		return result, nil
	}

	// 3. Read and rewrite Anchor.toml in memory
	configPath := filepath.Join(opts.Path, domain.AnchorConfigFile)
	result.Warnings = append(result.Warnings, s.dirtyWarnings(opts.Path)...)

	doc, err := s.store.Read(configPath)
	if err != nil {
		return nil, err
	}

	changed := s.rewrite(doc, result)
	result.NextSteps = append(result.NextSteps, domain.DefaultNextSteps...)

	if !opts.DryRun && !changed {
		s.log.Debug("Anchor.toml already targets SOON, nothing to write")
		return result, nil
	}

	data, err := s.store.Encode(doc)
	if err != nil {
		return nil, err
	}

	if opts.DryRun {
		result.Preview = string(data)
		s.log.Debug("dry run, changes not written")
		return result, nil
	}

	// 4. Back up, persist and record
	backup, err := s.store.Backup(configPath)
	if err != nil {
		return nil, err
	}
	result.BackupPath = backup
	s.log.WithField("path", backup).Debug("backup created")

	if err := s.store.Write(configPath, data); err != nil {
		return nil, err
	}
	result.ConfigUpdated = true
	s.log.WithFields(logrus.Fields{
		"cluster": result.ClusterTo,
		"network": result.Network,
	}).Debug("Anchor.toml updated")

	if cfg.RecordHistory {
		s.record(opts.Path, domain.HistoryEntry{
			Action:      domain.ActionMigrate,
			ClusterFrom: result.ClusterFrom,
			ClusterTo:   result.ClusterTo,
			Oracles:     oracleNames(rep),
		})
	}

	return result, nil
}

// Restore puts the backup back in place of Anchor.toml.
func (s *MigrationService) Restore(projectPath string) error {
	configPath := filepath.Join(projectPath, domain.AnchorConfigFile)
	if err := s.store.Restore(configPath); err != nil {
		return err
	}
	s.log.WithField("path", configPath).Debug("Anchor.toml restored from backup")

	cfg, err := s.config.Load(projectPath)
	if err != nil {
		s.log.WithError(err).Warn("skipping history entry")
		return nil
	}
	if cfg.RecordHistory {
		s.record(projectPath, domain.HistoryEntry{Action: domain.ActionRestore})
	}
	return nil
}

// rewrite applies the cluster and programs changes to doc in place and
// reports whether anything changed.
func (s *MigrationService) rewrite(doc map[string]any, result *domain.MigrationResult) bool {
	changed := false

	if provider, ok := doc["provider"].(map[string]any); ok {
		if cluster, ok := provider["cluster"].(string); ok {
			target := cluster
			if !domain.IsSOONEndpoint(cluster) {
				target = domain.MapCluster(cluster)
			}
			result.ClusterFrom = cluster
			result.ClusterTo = target
			if target != cluster {
				provider["cluster"] = target
				changed = true
				s.log.WithField("from", cluster).WithField("to", target).Debug("cluster updated")
			}
		}
	}

	result.Network = domain.NetworkDevnet
	if result.ClusterTo != "" {
		result.Network = domain.NetworkFor(result.ClusterTo)
	}

	programs, ok := doc["programs"].(map[string]any)
	if !ok {
		return changed
	}
	ids, ok := programs[domain.LocalnetProgramsKey]
	if !ok {
		result.Warnings = append(result.Warnings,
			"No [programs.localnet] section found; program IDs were left unchanged")
		return changed
	}
	if _, exists := programs[result.Network]; exists {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"[programs.%s] already existed and was replaced by [programs.localnet]", result.Network))
	}
	delete(programs, domain.LocalnetProgramsKey)
	programs[result.Network] = ids
	s.log.WithField("to", result.Network).Debug("programs section renamed")
	return true
}

func (s *MigrationService) dirtyWarnings(projectPath string) []string {
	if s.git == nil || !s.git.IsGitRepo(projectPath) {
		return nil
	}
	dirty, err := s.git.HasUncommittedChanges(projectPath, domain.AnchorConfigFile)
	if err != nil {
		s.log.WithError(err).Debug("git status unavailable")
		return nil
	}
	if dirty {
		return []string{"Anchor.toml has uncommitted changes; commit them before migrating to keep a clean diff"}
	}
	return nil
}

// record appends a history entry; failures are logged, never returned.
func (s *MigrationService) record(projectPath string, entry domain.HistoryEntry) {
	if s.history == nil {
		return
	}
	entry.Timestamp = time.Now().UTC().Format(time.RFC3339)
	if s.git != nil {
		if hash, err := s.git.CommitHash(projectPath); err == nil {
			entry.CommitHash = hash
		}
	}
	if err := s.history.Save(projectPath, entry); err != nil {
		s.log.WithError(err).Warn("failed to record history")
	}
}

func oracleWarnings(rep *domain.OracleReport) []string {
	if rep == nil || len(rep.DetectedOracles) == 0 {
		return nil
	}
	warnings := []string{"Oracle usage detected. Review the migration recommendations before deploying to SOON."}
	for _, d := range rep.DetectedOracles {
		if d.Confidence == domain.ConfidenceHigh {
			warnings = append(warnings,
				fmt.Sprintf("%s oracle detected; migration required for SOON compatibility", d.OracleType))
		}
	}
	return warnings
}

func oracleNames(rep *domain.OracleReport) []string {
	if rep == nil {
		return nil
	}
	var names []string
	for _, d := range rep.DetectedOracles {
		names = append(names, d.OracleType.String())
	}
	return names
}
