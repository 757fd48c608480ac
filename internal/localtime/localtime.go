// Package localtime encodes the zone-less timestamps and dates used by the backend.
package localtime

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const (
	// Layout is the backend timestamp format (YYYY-MM-DDTHH:MM:SS).
	Layout = "2006-01-02T15:04:05"
	// DateLayout is the backend date format (YYYY-MM-DD).
	DateLayout = "2006-01-02"
	// ClockLayout is the accepted time-of-day input format.
	ClockLayout = "15:04"
)

// parseLayouts are tried in order when decoding a timestamp.
var parseLayouts = []string{
	Layout,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	time.RFC3339Nano,
	DateLayout,
}

// Time is a timestamp serialised without a zone offset.
// Values are interpreted in time.Local.
type Time struct {
	time.Time
}

// New wraps t, dropping sub-second precision.
func New(t time.Time) Time {
	return Time{Time: t.Truncate(time.Second)}
}

// Format renders t in the backend layout.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Parse reads a backend timestamp.
func Parse(s string) (time.Time, error) {
	for _, layout := range parseLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q (use YYYY-MM-DDTHH:MM:SS)", s)
}

// ParseDate reads a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return t, nil
}

// ParseClock reads a time of day in HH:MM or HH:MM:SS form.
func ParseClock(s string) (time.Time, error) {
	for _, layout := range []string{ClockLayout, "15:04:05"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (use HH:MM)", s)
}

// String implements fmt.Stringer.
func (t Time) String() string {
	if t.IsZero() {
		return ""
	}
	return Format(t.Time)
}

// MarshalJSON implements json.Marshaler.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(Format(t.Time))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding timestamp: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// Date is a calendar date serialised as YYYY-MM-DD.
type Date struct {
	time.Time
}

// String implements fmt.Stringer.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

// UnmarshalJSON implements json.Unmarshaler.
// Full timestamps are accepted and truncated to their date.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding date: %w", err)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := Parse(s)
	if err != nil {
		return err
	}
	y, m, day := t.Date()
	d.Time = time.Date(y, m, day, 0, 0, 0, 0, time.Local)
	return nil
}
