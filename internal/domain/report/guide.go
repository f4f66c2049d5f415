package report

import (
	"strings"

	"github.com/soon-migrate/soon-migrate/internal/domain"
)

// APRO deployment constants quoted in the guide.
const (
	APROProgramID     = "4Mvy4RKRyJMf4PHavvGUuTj9agoddUZ9atQoFma1tyMY"
	APRODevnetAPI     = "https://live-api-test.apro.com"
	APROMainnetAPI    = "https://live-api.apro.com"
	APROContactEmail  = "bd@apro.com"
	guideTitle        = "# APRO Oracle Integration Guide for SOON Network"
	aproImport        = "use oracle_sdk::load_price_feed_from_account_info;"
	aproLoadPriceFeed = "let price_feed = load_price_feed_from_account_info(&price_account)?;"
)

// PriceFeed is a devnet feed listed in the guide.
type PriceFeed struct {
	Pair string
	ID   string
}

// DevnetPriceFeeds are the APRO feeds available on SOON devnet.
var DevnetPriceFeeds = []PriceFeed{
	{"BTC/USD", "0x0003665949c883f9e0f6f002eac32e00bd59dfe6c34e92a91c37d6a8322d6489"},
	{"ETH/USD", "0x0003555ace6b39aae1b894097d0a9fc17f504c62fea598fa206cc6f5088e6e45"},
	{"SOL/USD", "0x000343ec7f6691d6bf679978bab5c093fa45ee74c0baac6cc75649dc59cc21d3"},
	{"USDT/USD", "0x00039a0c0be4e43cacda1599ac414205651f4a62b614b6be9e5318a182c33eb0"},
	{"USDC/USD", "0x00034b881a0c0fff844177f881a313ff894bfc6093d33b5514e34d7faa41b7ef"},
}

type migrationExample struct {
	title  string
	intro  string
	before []string
	after  []string
}

// migrationExamples exist only for providers with a known APRO equivalent.
var migrationExamples = map[domain.OracleType]migrationExample{
	domain.OraclePyth: {
		title: "Migrating from Pyth",
		intro: "Replace your Pyth price feed calls:",
		before: []string{
			"use pyth_solana_receiver_sdk::PriceUpdateV2;",
			"let price = price_update.get_price_no_older_than(&clock, max_age)?;",
		},
		after: []string{aproImport, aproLoadPriceFeed, "let price = price_feed.benchmark_price;"},
	},
	domain.OracleSwitchboard: {
		title: "Migrating from Switchboard",
		intro: "Replace your Switchboard aggregator calls:",
		before: []string{
			"use switchboard_v2::AggregatorAccountData;",
			"let result = aggregator.get_result()?;",
		},
		after: []string{aproImport, aproLoadPriceFeed, "let result = price_feed.benchmark_price;"},
	},
	domain.OracleChainlink: {
		title: "Migrating from Chainlink",
		intro: "Replace your Chainlink price feed calls:",
		before: []string{
			"use chainlink_solana as chainlink;",
			"let round_data = chainlink::latest_round_data(ctx, &feed_account)?;",
		},
		after: []string{aproImport, aproLoadPriceFeed, "let price = price_feed.benchmark_price;"},
	},
}

// HasMigrationExample reports whether the guide carries a code example for t.
func HasMigrationExample(t domain.OracleType) bool {
	_, ok := migrationExamples[t]
	return ok
}

// GenerateAPROGuide renders the long-form markdown integration guide.
// Providers without a code example are skipped silently.
func GenerateAPROGuide(detections []domain.OracleDetection) string {
	var b strings.Builder

	b.WriteString(guideTitle + "\n\n")
	b.WriteString("## Overview\n")
	b.WriteString("APRO has chosen SOON as their first SVM chain to support oracle services. ")
	b.WriteString("This guide will help you migrate your existing oracle integrations.\n\n")

	b.WriteString("## Program IDs\n```\n")
	b.WriteString("Devnet:  " + APROProgramID + "\n")
	b.WriteString("Mainnet: " + APROProgramID + "\n")
	b.WriteString("```\n\n")

	b.WriteString("## API Endpoints\n```\n")
	b.WriteString("Devnet:  " + APRODevnetAPI + "\n")
	b.WriteString("Mainnet: " + APROMainnetAPI + "\n")
	b.WriteString("```\n\n")

	for _, d := range detections {
		ex, ok := migrationExamples[d.OracleType]
		if !ok {
			continue
		}
		writeExample(&b, d.OracleType, ex)
	}

	b.WriteString("## Available Price Feeds (Devnet)\n")
	for _, f := range DevnetPriceFeeds {
		b.WriteString("- " + f.Pair + ": " + f.ID + "\n")
	}
	b.WriteString("\n")

	b.WriteString("## Getting Started\n")
	b.WriteString("1. Contact APRO BD team for authorization:\n")
	b.WriteString("   - Email: " + APROContactEmail + "\n")
	b.WriteString("   - Telegram: Head of Business Development\n")
	b.WriteString("2. Add APRO oracle SDK to your Cargo.toml\n")
	b.WriteString("3. Update your price feed integration code\n")
	b.WriteString("4. Test on SOON devnet before mainnet deployment\n\n")

	b.WriteString("For detailed integration examples, see the complete APRO documentation.\n")
	return b.String()
}

func writeExample(b *strings.Builder, t domain.OracleType, ex migrationExample) {
	b.WriteString("## " + ex.title + "\n")
	b.WriteString(ex.intro + "\n")
	b.WriteString("```rust\n")
	b.WriteString("// Before (" + string(t) + ")\n")
	for _, l := range ex.before {
		b.WriteString(l + "\n")
	}
	b.WriteString("\n// After (APRO)\n")
	for _, l := range ex.after {
		b.WriteString(l + "\n")
	}
	b.WriteString("```\n\n")
}
