// Package report turns merged oracle detections into recommendation lines
// and the APRO integration guide.
package report

import (
	"fmt"
	"strings"

	"github.com/soon-migrate/soon-migrate/internal/domain"
)

// NoOracleMessage is the single recommendation produced for a clean project.
const NoOracleMessage = "No oracle usage detected. Your project should migrate smoothly to SOON Network."

// RecommendationsHeader opens the recommendation list when oracles were found.
const RecommendationsHeader = "Oracle usage detected in your project. Consider these migration steps:"

// NextStepsHeader opens the fixed footer.
const NextStepsHeader = "Next steps:"

var nextSteps = []string{
	"1. Review the APRO oracle integration guide generated below",
	"2. Update your dependencies to use APRO oracle SDK",
	"3. Replace oracle-specific code with APRO equivalents",
	"4. Test your price feed integrations on SOON devnet",
}

// Build assembles a full OracleReport from merged detections.
func Build(detections []domain.OracleDetection) *domain.OracleReport {
	r := &domain.OracleReport{
		DetectedOracles:          detections,
		MigrationRecommendations: GenerateRecommendations(detections),
	}
	if len(detections) > 0 {
		r.APROIntegrationGuide = GenerateAPROGuide(detections)
	}
	if r.DetectedOracles == nil {
		r.DetectedOracles = []domain.OracleDetection{}
	}
	return r
}

// GenerateRecommendations produces the ordered display lines for a report.
func GenerateRecommendations(detections []domain.OracleDetection) []string {
	if len(detections) == 0 {
		return []string{NoOracleMessage}
	}

	lines := []string{RecommendationsHeader, ""}
	for _, d := range detections {
		lines = append(lines, SummaryLine(d))
		for _, loc := range d.Locations {
			lines = append(lines, "   "+LocationLine(loc))
		}
		lines = append(lines, "   Suggestion: "+d.MigrationSuggestion)
		lines = append(lines, "")
	}

	lines = append(lines, NextStepsHeader)
	lines = append(lines, nextSteps...)
	return lines
}

// SummaryLine is the confidence-tagged headline for one detection.
func SummaryLine(d domain.OracleDetection) string {
	return fmt.Sprintf("[%s] %s Oracle detected with %s confidence",
		strings.ToUpper(d.Confidence.String()), d.OracleType, d.Confidence)
}

// LocationLine renders file, optional line number, and matched pattern.
func LocationLine(loc domain.DetectionLocation) string {
	if loc.LineNumber > 0 {
		return fmt.Sprintf("%s:%d - %s", loc.FilePath, loc.LineNumber, loc.PatternMatched)
	}
	return fmt.Sprintf("%s - %s", loc.FilePath, loc.PatternMatched)
}
