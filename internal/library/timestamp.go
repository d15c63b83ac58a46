package library

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the on-disk timestamp format shared by every collection.
const TimeLayout = "2006-01-02 15:04:05"

// Timestamp is a time.Time that serializes as "2006-01-02 15:04:05".
type Timestamp struct {
	time.Time
}

// Now returns the current local time truncated to seconds.
func Now() Timestamp {
	return Timestamp{time.Now().Truncate(time.Second)}
}

func (t Timestamp) String() string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(TimeLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(TimeLayout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}
