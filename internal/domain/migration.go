package domain

import "strings"

const (
	AnchorConfigFile = "Anchor.toml"
	BackupSuffix     = ".bak"
)

// SOON RPC endpoints per network.
const (
	MainnetEndpoint = "https://rpc.mainnet.soo.network/rpc"
	TestnetEndpoint = "https://rpc.testnet.soo.network/rpc"
	DevnetEndpoint  = "https://rpc.devnet.soo.network/rpc"
)

const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
	NetworkDevnet  = "devnet"
)

// LocalnetProgramsKey is the [programs.*] subsection renamed on migration.
const LocalnetProgramsKey = "localnet"

// MapCluster maps a Solana cluster name to the matching SOON endpoint.
// Anything unrecognized, including an existing URL, falls back to devnet.
func MapCluster(cluster string) string {
	switch strings.ToLower(cluster) {
	case "mainnet-beta", "mainnet":
		return MainnetEndpoint
	case "testnet":
		return TestnetEndpoint
	default:
		return DevnetEndpoint
	}
}

// NetworkFor picks the programs subsection name for a cluster value.
func NetworkFor(cluster string) string {
	switch {
	case strings.Contains(cluster, NetworkMainnet):
		return NetworkMainnet
	case strings.Contains(cluster, NetworkTestnet):
		return NetworkTestnet
	default:
		return NetworkDevnet
	}
}

// IsSOONEndpoint reports whether the cluster already points at SOON.
func IsSOONEndpoint(cluster string) bool {
	switch cluster {
	case MainnetEndpoint, TestnetEndpoint, DevnetEndpoint:
		return true
	}
	return false
}

// BackupPath returns the backup location for a config file.
func BackupPath(configPath string) string {
	return configPath + BackupSuffix
}

// MigrationOptions are the user-selected switches for a run.
type MigrationOptions struct {
	Path       string `json:"path"`
	DryRun     bool   `json:"dry_run"`
	Verbose    bool   `json:"verbose"`
	OracleOnly bool   `json:"oracle_only"`
}

// MigrationResult is the combined outcome of a migration run.
type MigrationResult struct {
	ConfigUpdated bool          `json:"config_updated"`
	OracleReport  *OracleReport `json:"oracle_report,omitempty"`
	Warnings      []string      `json:"warnings"`
	NextSteps     []string      `json:"next_steps"`
	BackupPath    string        `json:"backup_path,omitempty"`
	ClusterFrom   string        `json:"cluster_from,omitempty"`
	ClusterTo     string        `json:"cluster_to,omitempty"`
	Network       string        `json:"network,omitempty"`
	Preview       string        `json:"preview,omitempty"`
}

// DefaultNextSteps are appended to every completed migration.
var DefaultNextSteps = []string{
	"1. Update your dependencies if using oracles",
	"2. Test your project on SOON devnet",
	"3. Review oracle integration if detected",
	"4. Deploy to SOON Network",
}
