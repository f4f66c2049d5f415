package anchor

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/soon-migrate/soon-migrate/internal/domain"
)

// Store implements domain.AnchorStore for TOML files on disk.
type Store struct{}

// New creates a file-based Anchor.toml store.
func New() *Store {
	return &Store{}
}

// Exists reports whether a regular file exists at path.
func (s *Store) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Backup copies configPath to its backup location, replacing any previous
// backup, and returns the backup path.
func (s *Store) Backup(configPath string) (string, error) {
	backup := domain.BackupPath(configPath)
	if err := copyFile(configPath, backup); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrBackupFailed, err)
	}
	return backup, nil
}

// Restore copies the backup over configPath and removes the backup.
func (s *Store) Restore(configPath string) error {
	backup := domain.BackupPath(configPath)
	if _, err := os.Stat(backup); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w at path: %s", domain.ErrBackupNotFound, backup)
		}
		return fmt.Errorf("%w: %v", domain.ErrRestoreFailed, err)
	}

	if err := copyFile(backup, configPath); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRestoreFailed, err)
	}
	if err := os.Remove(backup); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRestoreFailed, err)
	}
	return nil
}

// Read parses configPath into a generic TOML document.
func (s *Store) Read(configPath string) (map[string]any, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrReadFailed, err)
	}

	doc := map[string]any{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTomlParse, err)
	}
	return doc, nil
}

// Encode serializes a TOML document.
func (s *Store) Encode(doc map[string]any) ([]byte, error) {
	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTomlParse, err)
	}
	return data, nil
}

// Write replaces configPath with data, keeping the file's permissions.
func (s *Store) Write(configPath string, data []byte) error {
	perm := os.FileMode(0644)
	if info, err := os.Stat(configPath); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(configPath, data, perm); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrWriteFailed, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
