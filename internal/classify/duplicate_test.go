package classify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/AKapaldo/ROT/internal/filesystem"
	"github.com/AKapaldo/ROT/pkg/models"
	"go.uber.org/zap"
)

// buildIndex indexes a temp tree the way the engine does.
func buildIndex(t *testing.T, root string) models.FileIndex {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	index, _, err := filesystem.NewWalker(nil, logger).Index(root)
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	return index
}

func writeFiles(t *testing.T, dir string, files map[string][]byte) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), content, 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}
}

func TestDuplicateClassifier_SizePreFilter(t *testing.T) {
	tmpDir := t.TempDir()
	// A and B identical, C same length but different content, D a
	// different length entirely.
	writeFiles(t, tmpDir, map[string][]byte{
		"a.txt": []byte("0123456789"),
		"b.txt": []byte("0123456789"),
		"c.txt": []byte("abcdefghij"),
		"d.txt": []byte("01234567890123456789"),
	})

	logger, _ := zap.NewDevelopment()
	c := NewDuplicateClassifier(4, logger)

	sets, diags, err := c.Classify(context.Background(), buildIndex(t, tmpDir))
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("Classify() diagnostics = %d, want 0", len(diags))
	}
	if len(sets) != 1 {
		t.Fatalf("Classify() groups = %d, want 1", len(sets))
	}

	set := sets[0]
	if set.GroupID != 1 {
		t.Errorf("GroupID = %d, want 1", set.GroupID)
	}
	if len(set.Files) != 2 {
		t.Fatalf("Group members = %d, want 2", len(set.Files))
	}
	if filepath.Base(set.Files[0].Path) != "a.txt" || filepath.Base(set.Files[1].Path) != "b.txt" {
		t.Errorf("Group members = %v, want a.txt then b.txt", set.Files)
	}
	if set.Files[0].Hash != set.Files[1].Hash {
		t.Error("Group members carry different hashes")
	}
	if set.Size != 10 {
		t.Errorf("Group size = %d, want 10", set.Size)
	}
}

func TestDuplicateClassifier_AllDistinctSizes(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string][]byte{
		"a.txt": []byte("1"),
		"b.txt": []byte("22"),
		"c.txt": []byte("333"),
	})

	logger, _ := zap.NewDevelopment()
	c := NewDuplicateClassifier(4, logger)

	sets, _, err := c.Classify(context.Background(), buildIndex(t, tmpDir))
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if len(sets) != 0 {
		t.Errorf("Classify() groups = %d, want 0", len(sets))
	}
}

func TestDuplicateClassifier_EmptyIndex(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	c := NewDuplicateClassifier(4, logger)

	sets, diags, err := c.Classify(context.Background(), nil)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if len(sets) != 0 || len(diags) != 0 {
		t.Errorf("Classify() = %d groups, %d diagnostics, want 0, 0", len(sets), len(diags))
	}
}

func TestDuplicateClassifier_ZeroLengthFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string][]byte{
		"empty1": nil,
		"empty2": nil,
		"empty3": nil,
	})

	logger, _ := zap.NewDevelopment()
	c := NewDuplicateClassifier(4, logger)

	sets, _, err := c.Classify(context.Background(), buildIndex(t, tmpDir))
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if len(sets) != 1 {
		t.Fatalf("Classify() groups = %d, want 1 (empty files collide trivially)", len(sets))
	}
	if len(sets[0].Files) != 3 {
		t.Errorf("Group members = %d, want 3", len(sets[0].Files))
	}
}

func TestDuplicateClassifier_MultipleGroupsDeterministic(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string][]byte{
		"small1.txt": []byte("aaa"),
		"small2.txt": []byte("aaa"),
		"big1.txt":   []byte("bbbbbbbbbb"),
		"big2.txt":   []byte("bbbbbbbbbb"),
		"big3.txt":   []byte("cccccccccc"),
	})
	index := buildIndex(t, tmpDir)

	logger, _ := zap.NewDevelopment()

	var baseline []models.RedundantSet
	for _, workers := range []int{1, 4, 8} {
		c := NewDuplicateClassifier(workers, logger)
		sets, _, err := c.Classify(context.Background(), index)
		if err != nil {
			t.Fatalf("Classify(workers=%d) error = %v", workers, err)
		}
		if len(sets) != 2 {
			t.Fatalf("Classify(workers=%d) groups = %d, want 2", workers, len(sets))
		}

		// Groups ascend by size.
		if sets[0].Size != 3 || sets[1].Size != 10 {
			t.Errorf("Classify(workers=%d) sizes = %d, %d, want 3, 10", workers, sets[0].Size, sets[1].Size)
		}

		if baseline == nil {
			baseline = sets
			continue
		}
		for i := range sets {
			if len(sets[i].Files) != len(baseline[i].Files) {
				t.Fatalf("Classify(workers=%d) group %d size differs from baseline", workers, i)
			}
			for j := range sets[i].Files {
				if sets[i].Files[j] != baseline[i].Files[j] {
					t.Errorf("Classify(workers=%d) group %d member %d = %v, want %v",
						workers, i, j, sets[i].Files[j], baseline[i].Files[j])
				}
			}
		}
	}
}

func TestDuplicateClassifier_SameDigestSingleSet(t *testing.T) {
	tmpDir := t.TempDir()
	content := []byte("the same content four times over")
	writeFiles(t, tmpDir, map[string][]byte{
		"w.txt": content, "x.txt": content, "y.txt": content, "z.txt": content,
	})

	logger, _ := zap.NewDevelopment()
	c := NewDuplicateClassifier(4, logger)

	sets, _, err := c.Classify(context.Background(), buildIndex(t, tmpDir))
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if len(sets) != 1 {
		t.Fatalf("Classify() groups = %d, want 1 (same digest never splits)", len(sets))
	}
	if len(sets[0].Files) != 4 {
		t.Errorf("Group members = %d, want 4", len(sets[0].Files))
	}
}

func TestDuplicateClassifier_HashFailureIsCollected(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string][]byte{
		"a.txt": []byte("0123456789"),
		"b.txt": []byte("0123456789"),
		"c.txt": []byte("9876543210"),
	})
	index := buildIndex(t, tmpDir)

	// Delete one file between indexing and hashing.
	if err := os.Remove(filepath.Join(tmpDir, "c.txt")); err != nil {
		t.Fatalf("Failed to remove test file: %v", err)
	}

	logger, _ := zap.NewDevelopment()
	c := NewDuplicateClassifier(2, logger)

	sets, diags, err := c.Classify(context.Background(), index)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if len(diags) != 1 {
		t.Fatalf("Classify() diagnostics = %d, want 1", len(diags))
	}
	var hashErr *models.HashError
	if !errors.As(diags[0], &hashErr) {
		t.Errorf("diagnostic = %T, want *models.HashError", diags[0])
	}
	if len(sets) != 1 || len(sets[0].Files) != 2 {
		t.Errorf("Classify() after hash failure = %v, want the surviving pair", sets)
	}
}

func TestDuplicateClassifier_Cancelled(t *testing.T) {
	tmpDir := t.TempDir()
	files := make(map[string][]byte)
	for i := 0; i < 50; i++ {
		files[fmt.Sprintf("f%02d.bin", i)] = []byte("same sized content!")
	}
	writeFiles(t, tmpDir, files)
	index := buildIndex(t, tmpDir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	logger, _ := zap.NewDevelopment()
	c := NewDuplicateClassifier(2, logger)

	_, _, err := c.Classify(ctx, index)
	if err == nil {
		t.Error("Classify() with cancelled context expected error")
	}
}

func TestNewDuplicateClassifier_Clamping(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	if got := NewDuplicateClassifier(0, logger).Workers(); got != DefaultHashWorkers {
		t.Errorf("Workers() = %d, want %d", got, DefaultHashWorkers)
	}
	if got := NewDuplicateClassifier(100, logger).Workers(); got != MaxHashWorkers {
		t.Errorf("Workers() = %d, want %d", got, MaxHashWorkers)
	}
	if got := NewDuplicateClassifier(3, logger).Workers(); got != 3 {
		t.Errorf("Workers() = %d, want 3", got)
	}
}
