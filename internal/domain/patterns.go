package domain

import "strings"

// PatternSet is the ordered list of literal substrings that indicate a
// provider. The first pattern found in a file wins.
type PatternSet struct {
	Oracle          OracleType
	Patterns        []string
	Confidence      ConfidenceLevel
	CaseInsensitive bool
	Context         string // printf format taking the matched pattern
}

// ManifestFile is the dependency manifest consulted for package names.
const ManifestFile = "Cargo.toml"

// SourceExtension marks files scanned as source code.
const SourceExtension = ".rs"

// IsSourceFile reports whether a file name is scanned as source code.
func IsSourceFile(name string) bool {
	return strings.HasSuffix(name, SourceExtension) && len(name) > len(SourceExtension)
}

// ManifestContext is the context string recorded for manifest matches.
const ManifestContext = "Cargo.toml dependency"

// ManifestPatterns are dependency names looked up in Cargo.toml.
var ManifestPatterns = []PatternSet{
	{
		Oracle:     OraclePyth,
		Patterns:   []string{"pyth-solana-receiver-sdk"},
		Confidence: ConfidenceHigh,
	},
	{
		Oracle:     OracleSwitchboard,
		Patterns:   []string{"switchboard-v2", "switchboard_on_demand"},
		Confidence: ConfidenceHigh,
	},
	{
		Oracle:     OracleChainlink,
		Patterns:   []string{"chainlink_solana"},
		Confidence: ConfidenceHigh,
	},
}

// SourcePatterns are code fragments looked up in Rust sources. DIA and
// RedStone rely on loose textual hints, so they match case-insensitively
// and only earn Low confidence.
var SourcePatterns = []PatternSet{
	{
		Oracle: OraclePyth,
		Patterns: []string{
			"use pyth_solana_receiver_sdk",
			"PriceUpdateV2",
			"get_price_no_older_than",
			"pyth_solana_receiver_sdk::",
		},
		Confidence: ConfidenceHigh,
		Context:    "Rust code usage: %s",
	},
	{
		Oracle: OracleSwitchboard,
		Patterns: []string{
			"use switchboard_v2",
			"use switchboard_on_demand",
			"AggregatorAccountData",
			"get_result",
			"switchboard_v2::",
		},
		Confidence: ConfidenceHigh,
		Context:    "Rust code usage: %s",
	},
	{
		Oracle: OracleChainlink,
		Patterns: []string{
			"use chainlink_solana",
			"latest_round_data",
			"chainlink_solana::",
			"chainlink::",
		},
		Confidence: ConfidenceHigh,
		Context:    "Rust code usage: %s",
	},
	{
		Oracle: OracleDIA,
		Patterns: []string{
			"CoinInfo",
			"// DIA",
			"dia oracle",
			"DIA Oracle",
		},
		Confidence:      ConfidenceLow,
		CaseInsensitive: true,
		Context:         "Potential DIA usage: %s",
	},
	{
		Oracle: OracleRedStone,
		Patterns: []string{
			"redstone",
			"RedStone",
			"// RedStone",
			"wormhole",
		},
		Confidence:      ConfidenceLow,
		CaseInsensitive: true,
		Context:         "Potential RedStone usage: %s",
	},
}

var migrationSuggestions = map[OracleType]string{
	OraclePyth:        "Consider migrating to APRO oracle for SOON Network compatibility. APRO provides similar price feed functionality with better performance.",
	OracleSwitchboard: "APRO oracle offers customizable data feeds similar to Switchboard with enhanced performance on SOON Network.",
	OracleChainlink:   "APRO oracle provides reliable price feeds compatible with Chainlink's API patterns for seamless migration.",
	OracleDIA:         "If using DIA oracle, consider migrating to APRO for better SOON Network integration.",
	OracleRedStone:    "If using RedStone oracle, APRO provides similar RWA oracle capabilities for SOON Network.",
	OracleAPRO:        "APRO oracle is already supported on SOON Network. Verify the program ID and endpoint for your target cluster.",
}

// MigrationSuggestion returns the fixed remediation text for a provider.
func MigrationSuggestion(t OracleType) string {
	if s, ok := migrationSuggestions[t]; ok {
		return s
	}
	return "Review this oracle integration and consider APRO for SOON Network compatibility."
}
