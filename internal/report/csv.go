package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AKapaldo/ROT/pkg/models"
)

// Fixed artifact names. A prior run's artifacts are removed before any
// new one is written, so a leftover file can never masquerade as a fresh
// result.
const (
	RedundantReport = "ROT-Redundant.csv"
	ObsoleteReport  = "ROT-Obsolete.csv"
	TrivialReport   = "ROT-Trivial.csv"
)

// ArtifactNames lists every report file a run may produce.
var ArtifactNames = []string{RedundantReport, ObsoleteReport, TrivialReport}

// writeRedundant writes the redundant report: one row per file, rows for
// the same group adjacent.
func (g *Generator) writeRedundant(sets []models.RedundantSet) (string, error) {
	rows := make([][]string, 0, len(sets)*2)
	for _, set := range sets {
		for _, f := range set.Files {
			rows = append(rows, []string{f.Path, f.Hash})
		}
	}
	return g.writeCSV(RedundantReport, []string{"Path", "Hash"}, rows)
}

// writeObsolete writes the obsolete report. The timestamp column is
// labeled by the kind that was compared.
func (g *Generator) writeObsolete(entries []models.ObsoleteEntry, kind models.TimestampKind) (string, error) {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Path, e.Timestamp.Format(time.RFC3339)})
	}
	return g.writeCSV(ObsoleteReport, []string{"Path", kind.Label()}, rows)
}

// writeTrivial writes the trivial report.
func (g *Generator) writeTrivial(entries []models.TrivialEntry) (string, error) {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Path})
	}
	return g.writeCSV(TrivialReport, []string{"Path"}, rows)
}

// writeCSV writes a CSV artifact through a temp file and renames it into
// place, so a failed write never leaves a partial report behind.
func (g *Generator) writeCSV(name string, header []string, rows [][]string) (string, error) {
	target := filepath.Join(g.outputDir, name)

	tmp, err := os.CreateTemp(g.outputDir, name+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp report: %w", err)
	}
	tmpPath := tmp.Name()

	w := csv.NewWriter(tmp)
	writeErr := w.Write(header)
	for _, row := range rows {
		if writeErr != nil {
			break
		}
		writeErr = w.Write(row)
	}
	if writeErr == nil {
		w.Flush()
		writeErr = w.Error()
	}
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}

	if writeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write %s: %w", name, writeErr)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to finalize %s: %w", name, err)
	}

	return target, nil
}
