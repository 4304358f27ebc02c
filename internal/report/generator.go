package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AKapaldo/ROT/pkg/models"
	"go.uber.org/zap"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorOrange = "\033[38;5;208m"
	colorGray   = "\033[38;5;245m"
)

// FormatDuration formats duration to a human-readable string with max 2 decimal places
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	} else if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.2fs", mins, secs)
}

// Generator persists classification results as CSV reports and prints
// the console summary.
type Generator struct {
	outputDir string
	logger    *zap.Logger
}

// NewGenerator creates a new report generator writing into outputDir.
func NewGenerator(outputDir string, logger *zap.Logger) (*Generator, error) {
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Generator{
		outputDir: outputDir,
		logger:    logger,
	}, nil
}

// CleanArtifacts removes report files left over from a prior run so
// stale results can never sit next to fresh ones.
func (g *Generator) CleanArtifacts() error {
	for _, name := range ArtifactNames {
		path := filepath.Join(g.outputDir, name)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove stale report %s: %w", path, err)
		}
	}
	return nil
}

// Generate removes stale artifacts, then writes one CSV per non-empty
// category. A category with zero results produces no file; its absence
// is the signal that nothing was found.
func (g *Generator) Generate(results *models.ScanResults) ([]string, error) {
	if err := g.CleanArtifacts(); err != nil {
		return nil, err
	}

	var paths []string

	if len(results.Redundant) > 0 {
		path, err := g.writeRedundant(results.Redundant)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	if len(results.Obsolete) > 0 {
		path, err := g.writeObsolete(results.Obsolete, results.TimestampKind)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	if len(results.Trivial) > 0 {
		path, err := g.writeTrivial(results.Trivial)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	g.logger.Info("Reports generated",
		zap.String("output_dir", g.outputDir),
		zap.Int("artifacts", len(paths)))

	return paths, nil
}

// PrintConsole prints the scan summary to stdout with colors
func (g *Generator) PrintConsole(results *models.ScanResults) {
	fmt.Println()
	fmt.Printf("%s%sSCAN COMPLETE%s\n", colorBold, colorOrange, colorReset)
	fmt.Println()

	fmt.Printf("  %sPath:%s       %s\n", colorGray, colorReset, results.ScanPath)
	fmt.Printf("  %sFiles:%s      %d\n", colorGray, colorReset, results.IndexedFiles)
	fmt.Printf("  %sDuration:%s   %s\n", colorGray, colorReset, FormatDuration(results.Duration))
	fmt.Println()

	total := len(results.Redundant) + len(results.Obsolete) + len(results.Trivial)
	if total == 0 {
		fmt.Printf("  %s%s✓ No redundant, obsolete or trivial files found%s\n", colorBold, colorGreen, colorReset)
		fmt.Println()
		return
	}

	fmt.Printf("  %sRedundant:%s  %d files in %d groups\n", colorGray, colorReset, results.RedundantFileCount(), len(results.Redundant))
	fmt.Printf("  %sObsolete:%s   %d files (%s older than %d years)\n", colorGray, colorReset, len(results.Obsolete), results.TimestampKind.Label(), results.AgeYears)
	fmt.Printf("  %sTrivial:%s    %d files\n", colorGray, colorReset, len(results.Trivial))
	fmt.Println()

	if len(results.Diagnostics) > 0 {
		fmt.Printf("  %s⚠ %d entries skipped due to errors (run with --verbose for details)%s\n", colorYellow, len(results.Diagnostics), colorReset)
		fmt.Println()
	}

	for _, path := range results.ReportPaths {
		fmt.Printf("  %sReport:%s     %s%s%s\n", colorGray, colorReset, colorOrange, path, colorReset)
	}
	if len(results.ReportPaths) > 0 {
		fmt.Println()
	}
}
