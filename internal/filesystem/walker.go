package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/AKapaldo/ROT/pkg/models"
	"go.uber.org/zap"
)

// Walker builds the file index by recursively walking the scan root.
type Walker struct {
	logger  *zap.Logger
	exclude map[string]bool
}

// NewWalker creates a new filesystem walker. exclude lists directory
// names that are skipped wholesale.
func NewWalker(exclude []string, logger *zap.Logger) *Walker {
	// Build exclude map for fast lookup
	m := make(map[string]bool)
	for _, dir := range exclude {
		m[dir] = true
	}

	return &Walker{
		logger:  logger,
		exclude: m,
	}
}

// Index walks the tree rooted at root and returns one record per regular
// file. Symlinks are never followed. Per-entry errors are collected into
// the returned diagnostics and do not abort the walk; only an invalid
// root is fatal.
func (w *Walker) Index(root string) (models.FileIndex, []error, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", models.ErrPathNotFound, root)
	}

	if err := w.validateRoot(absRoot); err != nil {
		return nil, nil, err
	}

	var index models.FileIndex
	var diags []error

	walkErr := filepath.Walk(absRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			w.logger.Warn("Error accessing path", zap.String("path", path), zap.Error(err))
			diags = append(diags, &models.TraversalError{Path: path, Err: err})
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil // Continue walking
		}

		if info.IsDir() {
			if path != absRoot && w.shouldExclude(info.Name()) {
				w.logger.Debug("Skipping excluded directory", zap.String("path", path))
				return filepath.SkipDir
			}
			return nil
		}

		// Symlinks and other non-regular entries are not indexed. The
		// walk offers no cycle protection, so links are never followed.
		if !info.Mode().IsRegular() {
			return nil
		}

		index = append(index, models.FileRecord{
			Path:       path,
			Size:       info.Size(),
			ModTime:    info.ModTime(),
			AccessTime: getAccessTime(info),
			ChangeTime: getChangeTime(info),
			Extension:  GetExtension(path),
		})
		return nil
	})

	if walkErr != nil {
		return nil, diags, fmt.Errorf("walk failed: %w", walkErr)
	}

	w.logger.Info("Index built",
		zap.String("root", absRoot),
		zap.Int("files", len(index)),
		zap.Int("entry_errors", len(diags)))

	return index, diags, nil
}

// validateRoot checks that the root exists and is a readable directory.
func (w *Walker) validateRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", models.ErrPathNotFound, root)
		}
		return fmt.Errorf("%w: %s: %v", models.ErrPathNotReadable, root, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s: not a directory", models.ErrPathNotReadable, root)
	}

	f, err := os.Open(root)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", models.ErrPathNotReadable, root, err)
	}
	f.Close()

	return nil
}

// shouldExclude checks if a directory should be excluded
func (w *Walker) shouldExclude(name string) bool {
	return w.exclude[name]
}

// GetExtension returns the lower-cased file extension including the
// leading dot, or "" when the file has none.
func GetExtension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
