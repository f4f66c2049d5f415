package domain

import "io/fs"

// VisitFunc is applied to every regular file reached by a ProjectWalker.
// relPath is slash-separated and relative to the walk root.
type VisitFunc func(absPath, relPath string, d fs.DirEntry) error

// ProjectWalker traverses a project directory tree.
type ProjectWalker interface {
	Walk(root string, cfg ProjectConfig, visit VisitFunc) error
}

// ConfigLoader loads the optional project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// AnchorStore reads, writes and backs up the Anchor configuration file.
type AnchorStore interface {
	Exists(path string) bool
	Backup(configPath string) (string, error)
	Restore(configPath string) error
	Read(configPath string) (map[string]any, error)
	Encode(doc map[string]any) ([]byte, error)
	Write(configPath string, data []byte) error
}

// GitInfo provides repository metadata for a project.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
	HasUncommittedChanges(projectPath, file string) (bool, error)
}

// MigrationHistory persists a log of migration runs.
type MigrationHistory interface {
	Save(projectPath string, entry HistoryEntry) error
	Load(projectPath string) ([]HistoryEntry, error)
}
