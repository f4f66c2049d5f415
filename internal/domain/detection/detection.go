// Package detection matches oracle pattern tables against manifest and
// source text and merges the resulting per-file detections.
package detection

import (
	"fmt"
	"sort"
	"strings"

	"github.com/soon-migrate/soon-migrate/internal/domain"
)

// ScanManifest tests the manifest pattern tables against Cargo.toml content.
func ScanManifest(content string) []domain.OracleDetection {
	var detections []domain.OracleDetection
	for _, set := range domain.ManifestPatterns {
		pattern, ok := firstMatch(content, set)
		if !ok {
			continue
		}
		detections = append(detections, newDetection(set, domain.DetectionLocation{
			FilePath:       domain.ManifestFile,
			LineNumber:     FindLineNumber(content, pattern, set.CaseInsensitive),
			PatternMatched: pattern,
			Context:        domain.ManifestContext,
		}))
	}
	return detections
}

// ScanSource tests the source pattern tables against one file's content.
// A file yields at most one detection per provider.
func ScanSource(filePath, content string) []domain.OracleDetection {
	var detections []domain.OracleDetection
	for _, set := range domain.SourcePatterns {
		pattern, ok := firstMatch(content, set)
		if !ok {
			continue
		}
		detections = append(detections, newDetection(set, domain.DetectionLocation{
			FilePath:       filePath,
			LineNumber:     FindLineNumber(content, pattern, set.CaseInsensitive),
			PatternMatched: pattern,
			Context:        fmt.Sprintf(set.Context, pattern),
		}))
	}
	return detections
}

func newDetection(set domain.PatternSet, loc domain.DetectionLocation) domain.OracleDetection {
	return domain.OracleDetection{
		OracleType:          set.Oracle,
		Confidence:          set.Confidence,
		Locations:           []domain.DetectionLocation{loc},
		MigrationSuggestion: domain.MigrationSuggestion(set.Oracle),
	}
}

// firstMatch returns the first pattern of set contained in content.
func firstMatch(content string, set domain.PatternSet) (string, bool) {
	haystack := content
	if set.CaseInsensitive {
		haystack = strings.ToLower(content)
	}
	for _, p := range set.Patterns {
		needle := p
		if set.CaseInsensitive {
			needle = strings.ToLower(p)
		}
		if strings.Contains(haystack, needle) {
			return p, true
		}
	}
	return "", false
}

// FindLineNumber returns the 1-based number of the first line containing
// pattern, or 0 if no single line contains it.
func FindLineNumber(content, pattern string, caseInsensitive bool) int {
	if caseInsensitive {
		pattern = strings.ToLower(pattern)
	}
	for i, line := range strings.Split(content, "\n") {
		if caseInsensitive {
			line = strings.ToLower(line)
		}
		if strings.Contains(line, pattern) {
			return i + 1
		}
	}
	return 0
}

// Merge collapses detections into one entry per oracle type. Locations are
// concatenated in encounter order and confidence never decreases.
// Callers must not rely on the order of the result.
func Merge(detections []domain.OracleDetection) []domain.OracleDetection {
	byType := make(map[domain.OracleType]*domain.OracleDetection)

	for _, d := range detections {
		existing, ok := byType[d.OracleType]
		if !ok {
			merged := domain.OracleDetection{
				OracleType:          d.OracleType,
				Confidence:          d.Confidence,
				Locations:           append([]domain.DetectionLocation(nil), d.Locations...),
				MigrationSuggestion: domain.MigrationSuggestion(d.OracleType),
			}
			byType[d.OracleType] = &merged
			continue
		}
		existing.Locations = append(existing.Locations, d.Locations...)
		existing.Confidence = existing.Confidence.Max(d.Confidence)
	}

	merged := make([]domain.OracleDetection, 0, len(byType))
	for _, d := range byType {
		merged = append(merged, *d)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].OracleType.Rank() < merged[j].OracleType.Rank()
	})
	return merged
}

// Filter drops detections whose oracle type is ignored by cfg.
func Filter(detections []domain.OracleDetection, cfg domain.ProjectConfig) []domain.OracleDetection {
	if len(cfg.IgnoreOracles) == 0 {
		return detections
	}
	kept := detections[:0:0]
	for _, d := range detections {
		if !cfg.IsIgnoredOracle(d.OracleType) {
			kept = append(kept, d)
		}
	}
	return kept
}
