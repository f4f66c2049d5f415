package domain

const (
	ActionMigrate = "migrate"
	ActionRestore = "restore"
)

// HistoryEntry records one run that changed Anchor.toml.
type HistoryEntry struct {
	Timestamp   string   `json:"timestamp"`
	Action      string   `json:"action"`
	CommitHash  string   `json:"commit_hash,omitempty"`
	ClusterFrom string   `json:"cluster_from,omitempty"`
	ClusterTo   string   `json:"cluster_to,omitempty"`
	Oracles     []string `json:"oracles,omitempty"`
}
