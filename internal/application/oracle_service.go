package application

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/soon-migrate/soon-migrate/internal/adapters/outbound/logger"
	"github.com/soon-migrate/soon-migrate/internal/domain"
	"github.com/soon-migrate/soon-migrate/internal/domain/detection"
	"github.com/soon-migrate/soon-migrate/internal/domain/report"
)

// OracleService scans a project for price-oracle usage.
type OracleService struct {
	walker domain.ProjectWalker
	log    *logrus.Logger
}

func NewOracleService(w domain.ProjectWalker, log *logrus.Logger) *OracleService {
	return &OracleService{walker: w, log: logger.OrDiscard(log)}
}

// ScanProject checks the root Cargo.toml and every Rust source below
// projectPath, then merges, filters and reports the findings.
func (s *OracleService) ScanProject(projectPath string, cfg domain.ProjectConfig) (*domain.OracleReport, error) {
	s.log.WithField("path", projectPath).Debug("scanning for oracle usage")

	var found []domain.OracleDetection

	// 1. Manifest dependencies
	manifest := filepath.Join(projectPath, domain.ManifestFile)
	data, err := os.ReadFile(manifest)
	switch {
	case err == nil:
		found = append(found, detection.ScanManifest(string(data))...)
	case errors.Is(err, fs.ErrNotExist):
		s.log.WithField("file", domain.ManifestFile).Debug("no manifest found")
	default:
		return nil, fmt.Errorf("%w: failed to read %s: %v", domain.ErrOracleDetectionFailed, domain.ManifestFile, err)
	}

	// 2. Rust sources
	scanned := 0
	err = s.walker.Walk(projectPath, cfg, func(absPath, relPath string, d fs.DirEntry) error {
		if !domain.IsSourceFile(d.Name()) {
			return nil
		}
		content, err := os.ReadFile(absPath)
		if err != nil {
			s.log.WithField("file", relPath).WithError(err).Debug("skipping unreadable file")
			return nil
		}
		if !utf8.Valid(content) {
			s.log.WithField("file", relPath).Debug("skipping non-UTF-8 file")
			return nil
		}
		scanned++
		found = append(found, detection.ScanSource(relPath, string(content))...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 3. Merge per provider and drop ignored ones
	merged := detection.Filter(detection.Merge(found), cfg)
	s.log.WithFields(logrus.Fields{
		"sources":   scanned,
		"providers": len(merged),
	}).Debug("oracle scan finished")

	return report.Build(merged), nil
}
