package classify

import (
	"time"

	"github.com/AKapaldo/ROT/pkg/models"
	"go.uber.org/zap"
)

// DefaultAgeYears is the age threshold used when none is configured or
// the configured value is invalid.
const DefaultAgeYears = 7

// Cutoff computes the obsolescence boundary: now minus years. It is
// computed once per run so every record is compared against the same
// instant.
func Cutoff(now time.Time, years int) time.Time {
	if years < 0 {
		years = DefaultAgeYears
	}
	return now.AddDate(-years, 0, 0)
}

// AgeClassifier flags files whose selected timestamp predates a cutoff.
type AgeClassifier struct {
	kind   models.TimestampKind
	logger *zap.Logger
}

// NewAgeClassifier creates an age classifier comparing the given
// timestamp kind.
func NewAgeClassifier(kind models.TimestampKind, logger *zap.Logger) *AgeClassifier {
	return &AgeClassifier{
		kind:   kind,
		logger: logger,
	}
}

// Classify returns one ObsoleteEntry per record whose selected timestamp
// is strictly before cutoff. A timestamp equal to the cutoff does not
// qualify, and a timestamp in the future simply never qualifies.
func (c *AgeClassifier) Classify(index models.FileIndex, cutoff time.Time) []models.ObsoleteEntry {
	var entries []models.ObsoleteEntry
	for i := range index {
		ts := index[i].Timestamp(c.kind)
		if ts.Before(cutoff) {
			entries = append(entries, models.ObsoleteEntry{
				Path:      index[i].Path,
				Timestamp: ts,
				Kind:      c.kind,
			})
		}
	}

	c.logger.Info("Age classification complete",
		zap.String("timestamp", c.kind.String()),
		zap.Time("cutoff", cutoff),
		zap.Int("obsolete", len(entries)))

	return entries
}
