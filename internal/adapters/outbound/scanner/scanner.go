package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/soon-migrate/soon-migrate/internal/domain"
)

// FileWalker implements domain.ProjectWalker by walking the filesystem.
// The root is resolved through symlinks and symlinked files are visited,
// but symlinked directories are never descended into. MaxDepth bounds the
// recursion on deep trees.
type FileWalker struct {
	open func(root string) fs.FS
}

func New() *FileWalker {
	return NewWithFS(os.DirFS)
}

// NewWithFS creates a walker that reads the resolved root through open.
func NewWithFS(open func(root string) fs.FS) *FileWalker {
	return &FileWalker{open: open}
}

func (w *FileWalker) Walk(root string, cfg domain.ProjectConfig, visit domain.VisitFunc) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("%w: resolving %s: %v", domain.ErrOracleDetectionFailed, root, err)
	}
	absRoot, err = filepath.EvalSymlinks(absRoot)
	if err != nil {
		return fmt.Errorf("%w: resolving %s: %v", domain.ErrOracleDetectionFailed, root, err)
	}

	skip := make(map[string]bool, len(domain.DefaultSkipDirs)+len(cfg.ExcludePaths))
	for _, d := range domain.DefaultSkipDirs {
		skip[d] = true
	}
	for _, p := range cfg.ExcludePaths {
		skip[strings.TrimSuffix(p, "/")] = true
	}
	maxDepth := cfg.EffectiveMaxDepth()
	fsys := w.open(absRoot)

	return fs.WalkDir(fsys, ".", func(relPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: failed to read directory %s: %v", domain.ErrOracleDetectionFailed, relPath, err)
		}

		if d.IsDir() {
			if relPath == "." {
				return nil
			}
			if skip[d.Name()] || depth(relPath) > maxDepth {
				return fs.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			// Dangling links and links to directories are ignored.
			info, err := fs.Stat(fsys, relPath)
			if err != nil || !info.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}

		return visit(filepath.Join(absRoot, filepath.FromSlash(relPath)), relPath, d)
	})
}

// depth counts the directory levels of a slash-separated relative path.
func depth(relPath string) int {
	return strings.Count(path.Clean(relPath), "/") + 1
}
