package classify

import (
	"strings"

	"github.com/AKapaldo/ROT/pkg/models"
	"go.uber.org/zap"
)

// ExtensionClassifier flags files whose extension is on a junk denylist.
// Matching is exact and case-insensitive; a file with no extension never
// matches.
type ExtensionClassifier struct {
	denylist map[string]bool
	logger   *zap.Logger
}

// NewExtensionClassifier creates an extension classifier. Entries are
// normalized to lower case with a leading dot, so "TMP", ".tmp" and
// "tmp" all denote the same extension.
func NewExtensionClassifier(extensions []string, logger *zap.Logger) *ExtensionClassifier {
	denylist := make(map[string]bool)
	for _, ext := range extensions {
		denylist[NormalizeExtension(ext)] = true
	}

	return &ExtensionClassifier{
		denylist: denylist,
		logger:   logger,
	}
}

// Classify returns one TrivialEntry per record whose extension is in the
// denylist.
func (c *ExtensionClassifier) Classify(index models.FileIndex) []models.TrivialEntry {
	var entries []models.TrivialEntry
	for i := range index {
		if index[i].Extension == "" {
			continue
		}
		if c.denylist[index[i].Extension] {
			entries = append(entries, models.TrivialEntry{Path: index[i].Path})
		}
	}

	c.logger.Info("Extension classification complete",
		zap.Int("denylist_size", len(c.denylist)),
		zap.Int("trivial", len(entries)))

	return entries
}

// NormalizeExtension lower-cases an extension and ensures the leading
// dot, matching the form stored on FileRecord.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ext
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
