package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/soon-migrate/soon-migrate/internal/domain"
	"github.com/soon-migrate/soon-migrate/internal/domain/report"
)

// ── SOON palette ──
var (
	accent  = lipgloss.Color("#06B6D4") // cyan
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 4).
			Align(lipgloss.Center).
			Width(68)

	confidenceColors = map[domain.ConfidenceLevel]lipgloss.Color{
		domain.ConfidenceHigh:   danger,
		domain.ConfidenceMedium: warning,
		domain.ConfidenceLow:    success,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle     = lipgloss.NewStyle().Foreground(dim).Italic(true)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderBanner is printed once at the start of a verbose run.
func RenderBanner(path string) string {
	title := headerStyle.Render("soon-migrate")
	subtitle := dimStyle.Render("Solana → SOON Network")
	return boxStyle.Render(title+"\n"+subtitle+"\n"+fileStyle.Render(path)) + "\n"
}

// RenderReport formats the oracle detection report. Locations are only
// listed in verbose mode.
func RenderReport(rep *domain.OracleReport, verbose bool) string {
	var b strings.Builder

	b.WriteString("\n  " + sectionStyle.Render("Oracle Detection Report") + "\n")
	b.WriteString("  " + separatorLine + "\n\n")

	if rep == nil || len(rep.DetectedOracles) == 0 {
		b.WriteString("  " + passStyle.Render("✓") + " " + report.NoOracleMessage + "\n")
		return b.String()
	}

	fmt.Fprintf(&b, "  %s\n\n", warnStyle.Render(fmt.Sprintf("%d oracle(s) detected", len(rep.DetectedOracles))))

	for _, d := range rep.DetectedOracles {
		renderDetection(&b, d, verbose)
	}

	b.WriteString("  " + sectionStyle.Render("Migration Recommendations") + "\n")
	for _, line := range rep.MigrationRecommendations {
		switch {
		case line == "":
			b.WriteString("\n")
		case line == report.RecommendationsHeader || line == report.NextStepsHeader:
			b.WriteString("  " + titleStyle.Render(line) + "\n")
		case strings.HasPrefix(line, "   "):
			b.WriteString("  " + dimStyle.Render(line) + "\n")
		default:
			b.WriteString("  " + line + "\n")
		}
	}

	if rep.HasGuide() {
		b.WriteString("\n  " + hintStyle.Render("Run with --show-guide to see the complete APRO integration guide") + "\n")
	}
	return b.String()
}

func renderDetection(b *strings.Builder, d domain.OracleDetection, verbose bool) {
	color, ok := confidenceColors[d.Confidence]
	if !ok {
		color = fg
	}
	dot := lipgloss.NewStyle().Foreground(color).Render("●")
	conf := lipgloss.NewStyle().Foreground(color).Render(d.Confidence.String() + " confidence")

	fmt.Fprintf(b, "  %s %s  %s\n", dot, titleStyle.Render(d.OracleType.String()+" Oracle"), conf)
	if verbose {
		for _, loc := range d.Locations {
			fmt.Fprintf(b, "      %s\n", fileStyle.Render(report.LocationLine(loc)))
		}
	}
	fmt.Fprintf(b, "      %s\n\n", dimStyle.Render(d.MigrationSuggestion))
}

// RenderGuide returns the APRO integration guide, or a short notice when
// nothing was detected.
func RenderGuide(rep *domain.OracleReport) string {
	if !rep.HasGuide() {
		return "  " + dimStyle.Render("No oracle integration guide available.") + "\n"
	}
	return rep.APROIntegrationGuide + "\n"
}

// RenderResult summarizes a finished migration run.
func RenderResult(r *domain.MigrationResult, opts domain.MigrationOptions) string {
	var b strings.Builder

	if !opts.OracleOnly {
		b.WriteString("\n  " + sectionStyle.Render("Anchor.toml") + "\n")
		b.WriteString("  " + separatorLine + "\n")

		if r.ClusterFrom != "" {
			fmt.Fprintf(&b, "    cluster   %s → %s\n", dimStyle.Render(r.ClusterFrom), r.ClusterTo)
		}
		if r.Network != "" {
			fmt.Fprintf(&b, "    programs  %s\n", dimStyle.Render("[programs."+r.Network+"]"))
		}
		if r.BackupPath != "" {
			fmt.Fprintf(&b, "    backup    %s\n", fileStyle.Render(r.BackupPath))
		}
		b.WriteString("\n")

		switch {
		case opts.DryRun:
			b.WriteString("  " + warnStyle.Render("Dry run enabled. Changes not written.") + "\n")
			if r.Preview != "" {
				b.WriteString("\n" + faintStyle.Render("--- Anchor.toml (preview) ---") + "\n")
				b.WriteString(r.Preview)
				if !strings.HasSuffix(r.Preview, "\n") {
					b.WriteString("\n")
				}
			}
		case r.ConfigUpdated:
			b.WriteString("  " + passStyle.Render("✓ Migration successful!") + "\n")
		default:
			b.WriteString("  " + passStyle.Render("✓ No changes needed to Anchor.toml") + "\n")
		}
	} else {
		b.WriteString("\n  " + warnStyle.Render("Oracle-only mode: Anchor.toml was not modified") + "\n")
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\n  " + warnTagStyle.Render("Warnings") + "\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "    %s %s\n", warnStyle.Render("!"), w)
		}
	}

	if len(r.NextSteps) > 0 {
		b.WriteString("\n  " + titleStyle.Render(report.NextStepsHeader) + "\n")
		for _, s := range r.NextSteps {
			b.WriteString("    " + s + "\n")
		}
	}

	b.WriteString("\n")
	return b.String()
}

// RenderRestore confirms a successful restore.
func RenderRestore(configPath string) string {
	return "  " + passStyle.Render("✓ Restore complete.") + " " + fileStyle.Render(configPath) + "\n"
}

// RenderError formats a top-level failure with an optional hint line.
func RenderError(err error) string {
	var b strings.Builder
	b.WriteString(errorTagStyle.Render("error") + " " + failStyle.Render(err.Error()) + "\n")
	if hint := errorHint(err); hint != "" {
		b.WriteString(hintStyle.Render("hint: "+hint) + "\n")
	}
	return b.String()
}

func errorHint(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotAnchorProject):
		return "run soon-migrate from an Anchor project root containing both Anchor.toml and Cargo.toml"
	case errors.Is(err, domain.ErrTomlParse):
		return "Anchor.toml could not be parsed; use --oracle-only to scan oracles without touching it"
	case errors.Is(err, domain.ErrBackupNotFound):
		return "no previous migration backup exists for this project"
	}
	return ""
}

// RenderHistory formats the migration log for terminal output.
func RenderHistory(entries []domain.HistoryEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No migration history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Migration History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}
		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		action := passStyle.Render(padRight(e.Action, 8))
		if e.Action == domain.ActionRestore {
			action = warnStyle.Render(padRight(e.Action, 8))
		}

		line := fmt.Sprintf("  %s  %s  %s", dimStyle.Render(date), faintStyle.Render(hash), action)
		if e.ClusterTo != "" {
			line += "  " + e.ClusterFrom + " → " + e.ClusterTo
		}
		if len(e.Oracles) > 0 {
			line += "  " + dimStyle.Render("oracles: "+strings.Join(e.Oracles, ", "))
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
