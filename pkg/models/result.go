package models

import "time"

// HashedFile is one member of a redundant group: a path and the content
// digest it shares with the rest of the group.
type HashedFile struct {
	Path string `json:"path"`
	Hash string `json:"hash"`
}

// RedundantSet is a group of two or more byte-identical files.
type RedundantSet struct {
	GroupID int          `json:"group_id"`
	Size    int64        `json:"size"`
	Files   []HashedFile `json:"files"`
}

// ObsoleteEntry is a file whose selected timestamp predates the age cutoff.
// Timestamp carries the value that was actually compared, Kind says which
// field it came from, so the report is self-describing.
type ObsoleteEntry struct {
	Path      string        `json:"path"`
	Timestamp time.Time     `json:"timestamp"`
	Kind      TimestampKind `json:"kind"`
}

// TrivialEntry is a file whose extension matched the junk denylist.
type TrivialEntry struct {
	Path string `json:"path"`
}

// ScanResults contains the complete results of one classification run
type ScanResults struct {
	// Summary
	ScanID    string        `json:"scan_id"`
	ScanPath  string        `json:"scan_path"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`

	// Index statistics
	IndexedFiles int `json:"indexed_files"`

	// Classification results
	Redundant []RedundantSet  `json:"redundant,omitempty"`
	Obsolete  []ObsoleteEntry `json:"obsolete,omitempty"`
	Trivial   []TrivialEntry  `json:"trivial,omitempty"`

	// Per-entry problems that did not abort the run
	Diagnostics []error `json:"-"`

	// Configuration echo
	AgeYears      int           `json:"age_years"`
	TimestampKind TimestampKind `json:"timestamp_kind"`
	WorkersUsed   int           `json:"workers_used"`

	// Report artifacts written, one per non-empty category
	ReportPaths []string `json:"report_paths,omitempty"`
}

// RedundantFileCount returns the total number of files across all
// redundant groups.
func (r *ScanResults) RedundantFileCount() int {
	n := 0
	for _, set := range r.Redundant {
		n += len(set.Files)
	}
	return n
}
