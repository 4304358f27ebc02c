package models

import (
	"testing"
	"time"
)

func TestParseTimestampKind(t *testing.T) {
	tests := []struct {
		in   string
		want TimestampKind
	}{
		{"modified", TimestampModified},
		{"accessed", TimestampAccessed},
		{"created", TimestampCreated},
		{"", TimestampModified},
		{"bogus", TimestampModified},
	}

	for _, tt := range tests {
		if got := ParseTimestampKind(tt.in); got != tt.want {
			t.Errorf("ParseTimestampKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTimestampKind_Label(t *testing.T) {
	tests := []struct {
		kind TimestampKind
		want string
	}{
		{TimestampModified, "LastModified"},
		{TimestampAccessed, "LastAccessed"},
		{TimestampCreated, "Created"},
	}

	for _, tt := range tests {
		if got := tt.kind.Label(); got != tt.want {
			t.Errorf("Label(%v) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestFileRecord_Timestamp(t *testing.T) {
	mod := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	acc := time.Date(2021, 2, 2, 0, 0, 0, 0, time.UTC)
	chg := time.Date(2019, 3, 3, 0, 0, 0, 0, time.UTC)

	rec := FileRecord{ModTime: mod, AccessTime: acc, ChangeTime: chg}

	if got := rec.Timestamp(TimestampModified); !got.Equal(mod) {
		t.Errorf("Timestamp(modified) = %v, want %v", got, mod)
	}
	if got := rec.Timestamp(TimestampAccessed); !got.Equal(acc) {
		t.Errorf("Timestamp(accessed) = %v, want %v", got, acc)
	}
	if got := rec.Timestamp(TimestampCreated); !got.Equal(chg) {
		t.Errorf("Timestamp(created) = %v, want %v", got, chg)
	}
}
