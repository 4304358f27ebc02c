package models

import (
	"time"
)

// TimestampKind selects which file timestamp the age classifier compares.
type TimestampKind int

const (
	// TimestampModified - last write time (default)
	TimestampModified TimestampKind = iota
	// TimestampAccessed - last access time
	TimestampAccessed
	// TimestampCreated - creation time (inode change time on Unix)
	TimestampCreated
)

// ParseTimestampKind parses a selector string. Unknown values fall back
// to TimestampModified.
func ParseTimestampKind(s string) TimestampKind {
	switch s {
	case "accessed":
		return TimestampAccessed
	case "created":
		return TimestampCreated
	default:
		return TimestampModified
	}
}

// String returns the selector form accepted by ParseTimestampKind.
func (k TimestampKind) String() string {
	switch k {
	case TimestampAccessed:
		return "accessed"
	case TimestampCreated:
		return "created"
	default:
		return "modified"
	}
}

// Label returns the report column label for this timestamp kind.
func (k TimestampKind) Label() string {
	switch k {
	case TimestampAccessed:
		return "LastAccessed"
	case TimestampCreated:
		return "Created"
	default:
		return "LastModified"
	}
}

// FileRecord is an immutable snapshot of one regular file at index time.
type FileRecord struct {
	Path       string    // Absolute file path
	Size       int64     // File size in bytes
	ModTime    time.Time // Last modification time
	AccessTime time.Time // Last access time
	ChangeTime time.Time // Creation time (best available per platform)
	Extension  string    // Lower-cased extension with leading dot, "" if none
}

// Timestamp returns the timestamp field selected by kind.
func (r *FileRecord) Timestamp(kind TimestampKind) time.Time {
	switch kind {
	case TimestampAccessed:
		return r.AccessTime
	case TimestampCreated:
		return r.ChangeTime
	default:
		return r.ModTime
	}
}

// FileIndex is the point-in-time snapshot of all regular files found
// under the scan root, in walk order. Classifiers read it but never
// mutate it.
type FileIndex []FileRecord
