package library_test

import (
	"testing"
	"time"

	"github.com/pustakahq/pustakactl/internal/library"
)

func TestTimestamp_String(t *testing.T) {
	var zero library.Timestamp
	if got := zero.String(); got != "-" {
		t.Errorf("zero String() = %q, want -", got)
	}

	ts := library.Timestamp{Time: time.Date(2024, 3, 9, 14, 5, 1, 0, time.Local)}
	if got := ts.String(); got != "2024-03-09 14:05:01" {
		t.Errorf("String() = %q", got)
	}
}

func TestTimestamp_NowHasNoSubsecond(t *testing.T) {
	now := library.Now()
	if now.Nanosecond() != 0 {
		t.Errorf("Now() keeps sub-second precision: %d ns", now.Nanosecond())
	}
}
