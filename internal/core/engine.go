package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/AKapaldo/ROT/internal/classify"
	"github.com/AKapaldo/ROT/internal/config"
	"github.com/AKapaldo/ROT/internal/denylist"
	"github.com/AKapaldo/ROT/internal/filesystem"
	"github.com/AKapaldo/ROT/internal/report"
	"github.com/AKapaldo/ROT/pkg/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProgressCallback is called to report scan progress
type ProgressCallback func(phase string, current, total int, message string)

// Engine runs the full classification pipeline: index once, fan out to
// the three classifiers, persist the reports.
type Engine struct {
	config           *config.Config
	logger           *zap.Logger
	progressCallback ProgressCallback

	// now is swappable so age-boundary behavior is testable.
	now func() time.Time
}

// NewEngine creates a new classification engine
func NewEngine(cfg *config.Config, logger *zap.Logger) *Engine {
	return &Engine{
		config: cfg,
		logger: logger,
		now:    time.Now,
	}
}

// SetProgressCallback sets the progress callback function
func (e *Engine) SetProgressCallback(cb ProgressCallback) {
	e.progressCallback = cb
}

// reportProgress calls the progress callback if set
func (e *Engine) reportProgress(phase string, current, total int, message string) {
	if e.progressCallback != nil {
		e.progressCallback(phase, current, total, message)
	}
}

// Scan classifies every file under root and writes one CSV report per
// non-empty category. A missing or unreadable root and an empty index
// are fatal; everything else is collected as diagnostics.
func (e *Engine) Scan(ctx context.Context, root string) (*models.ScanResults, error) {
	results := &models.ScanResults{
		ScanID:        uuid.NewString(),
		ScanPath:      root,
		StartTime:     e.now(),
		AgeYears:      e.config.AgeYears,
		TimestampKind: models.ParseTimestampKind(e.config.Timestamp),
	}

	e.logger.Info("Starting scan",
		zap.String("scan_id", results.ScanID),
		zap.String("path", root),
		zap.Int("age_years", results.AgeYears),
		zap.String("timestamp", results.TimestampKind.String()))

	// Build the index once; all three classifiers share it read-only.
	e.reportProgress("indexing", 0, 0, "Indexing files...")
	walker := filesystem.NewWalker(e.config.Exclude, e.logger)
	index, diags, err := walker.Index(root)
	if err != nil {
		return nil, err
	}
	results.Diagnostics = append(results.Diagnostics, diags...)
	results.IndexedFiles = len(index)
	e.reportProgress("indexing", len(index), len(index), fmt.Sprintf("Indexed %d files", len(index)))

	if len(index) == 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrEmptyIndex, root)
	}

	extensions, err := e.resolveDenylist()
	if err != nil {
		return nil, err
	}

	dup := classify.NewDuplicateClassifier(e.config.Workers, e.logger)
	dup.SetProgress(func(current, total int) {
		e.reportProgress("hashing", current, total, "Hashing duplicate candidates")
	})
	age := classify.NewAgeClassifier(results.TimestampKind, e.logger)
	ext := classify.NewExtensionClassifier(extensions, e.logger)
	results.WorkersUsed = dup.Workers()

	// Cutoff is computed once so the whole pass compares against the
	// same instant.
	cutoff := classify.Cutoff(e.now(), e.config.AgeYears)

	// The classifiers are pure functions of the shared index and can
	// run in parallel; only the duplicate classifier does real work
	// concurrently inside itself.
	var wg sync.WaitGroup
	var dupDiags []error
	var dupErr error

	wg.Add(3)
	go func() {
		defer wg.Done()
		results.Redundant, dupDiags, dupErr = dup.Classify(ctx, index)
	}()
	go func() {
		defer wg.Done()
		results.Obsolete = age.Classify(index, cutoff)
	}()
	go func() {
		defer wg.Done()
		results.Trivial = ext.Classify(index)
	}()
	wg.Wait()

	results.Diagnostics = append(results.Diagnostics, dupDiags...)
	if dupErr != nil {
		return nil, dupErr
	}

	results.EndTime = e.now()
	results.Duration = results.EndTime.Sub(results.StartTime)

	e.reportProgress("reporting", 0, 0, "Writing reports...")
	reporter, err := report.NewGenerator(e.config.OutputDir, e.logger)
	if err != nil {
		return nil, err
	}

	paths, err := reporter.Generate(results)
	results.ReportPaths = paths
	if err != nil {
		e.logger.Error("Failed to generate reports", zap.Error(err))
		return results, err
	}

	e.logger.Info("Scan completed",
		zap.String("scan_id", results.ScanID),
		zap.Duration("duration", results.Duration),
		zap.Int("redundant_groups", len(results.Redundant)),
		zap.Int("obsolete", len(results.Obsolete)),
		zap.Int("trivial", len(results.Trivial)),
		zap.Int("diagnostics", len(results.Diagnostics)))

	return results, nil
}

// resolveDenylist picks the trivial-extension set: inline config
// extensions win, then a YAML denylist file, then the built-in defaults.
func (e *Engine) resolveDenylist() ([]string, error) {
	if len(e.config.Extensions) > 0 {
		return e.config.Extensions, nil
	}

	loader := denylist.NewLoader(e.config.DenylistPath)
	exts, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load denylist: %w", err)
	}
	return exts, nil
}
