package domain

import (
	"fmt"
	"strings"

	"github.com/fatih/camelcase"
)

// OracleType identifies a price-oracle provider.
type OracleType string

const (
	OraclePyth        OracleType = "Pyth"
	OracleSwitchboard OracleType = "Switchboard"
	OracleChainlink   OracleType = "Chainlink"
	OracleDIA         OracleType = "DIA"
	OracleRedStone    OracleType = "RedStone"
	OracleAPRO        OracleType = "APRO"
	OracleUnknown     OracleType = "Unknown"
)

// AllOracleTypes enumerates every provider in canonical report order.
var AllOracleTypes = []OracleType{
	OraclePyth,
	OracleSwitchboard,
	OracleChainlink,
	OracleDIA,
	OracleRedStone,
	OracleAPRO,
	OracleUnknown,
}

func (t OracleType) String() string { return string(t) }

// Slug returns the kebab-case identifier used in URIs and config keys,
// e.g. "red-stone" for RedStone and "dia" for DIA.
func (t OracleType) Slug() string {
	parts := camelcase.Split(string(t))
	for i, p := range parts {
		parts[i] = strings.ToLower(p)
	}
	return strings.Join(parts, "-")
}

// Rank orders oracle types by their position in AllOracleTypes.
func (t OracleType) Rank() int {
	for i, o := range AllOracleTypes {
		if o == t {
			return i
		}
	}
	return len(AllOracleTypes)
}

// ParseOracleType accepts a display name or slug, case-insensitively.
// Unrecognized input yields OracleUnknown.
func ParseOracleType(s string) OracleType {
	s = strings.TrimSpace(s)
	for _, o := range AllOracleTypes {
		if strings.EqualFold(s, string(o)) || strings.EqualFold(s, o.Slug()) {
			return o
		}
	}
	return OracleUnknown
}

// ConfidenceLevel is an ordered certainty tag: Low < Medium < High.
type ConfidenceLevel int

const (
	ConfidenceLow ConfidenceLevel = iota + 1
	ConfidenceMedium
	ConfidenceHigh
)

func (c ConfidenceLevel) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "unknown"
	}
}

func (c ConfidenceLevel) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ConfidenceLevel) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "high":
		*c = ConfidenceHigh
	case "medium":
		*c = ConfidenceMedium
	case "low":
		*c = ConfidenceLow
	default:
		return fmt.Errorf("unknown confidence level %q", text)
	}
	return nil
}

// Max returns the higher of two confidence levels.
func (c ConfidenceLevel) Max(other ConfidenceLevel) ConfidenceLevel {
	if other > c {
		return other
	}
	return c
}

// DetectionLocation is a single place where oracle evidence was found.
type DetectionLocation struct {
	FilePath       string `json:"file_path"`
	LineNumber     int    `json:"line_number,omitempty"` // 1-based, 0 when unknown
	PatternMatched string `json:"pattern_matched"`
	Context        string `json:"context"`
}

// OracleDetection groups all evidence for one provider.
type OracleDetection struct {
	OracleType          OracleType          `json:"oracle_type"`
	Confidence          ConfidenceLevel     `json:"confidence"`
	Locations           []DetectionLocation `json:"locations"`
	MigrationSuggestion string              `json:"migration_suggestion"`
}

// OracleReport is the outcome of scanning a project for oracle usage.
// APROIntegrationGuide is empty when nothing was detected.
type OracleReport struct {
	DetectedOracles          []OracleDetection `json:"detected_oracles"`
	MigrationRecommendations []string          `json:"migration_recommendations"`
	APROIntegrationGuide     string            `json:"apro_integration_guide,omitempty"`
}

// HasGuide reports whether an integration guide was generated.
func (r *OracleReport) HasGuide() bool {
	return r != nil && r.APROIntegrationGuide != ""
}

// Find returns the detection for the given provider, if present.
func (r *OracleReport) Find(t OracleType) (OracleDetection, bool) {
	if r == nil {
		return OracleDetection{}, false
	}
	for _, d := range r.DetectedOracles {
		if d.OracleType == t {
			return d, true
		}
	}
	return OracleDetection{}, false
}
