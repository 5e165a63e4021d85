package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// expiryLayouts are the timestamp shapes accepted from clients: RFC 3339 and
// what browser datetime-local / date inputs produce.
var expiryLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ErrInvalidTimestamp is wrapped by every timestamp parsing failure.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// ParseTimestamp parses raw using the accepted layouts. Layouts without a zone
// are interpreted in loc.
func ParseTimestamp(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range expiryLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized format %q", ErrInvalidTimestamp, raw)
}

// OptionalTime distinguishes an absent JSON field (Set=false) from an explicit
// null or empty string (Set=true, Time=nil).
type OptionalTime struct {
	Set  bool
	Time *time.Time
}

func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	o.Time = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: expected a string: %w", ErrInvalidTimestamp, err)
	}
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	t, err := ParseTimestamp(raw, time.Local)
	if err != nil {
		return err
	}
	o.Time = &t
	return nil
}

func (o OptionalTime) MarshalJSON() ([]byte, error) {
	if o.Time == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Time)
}
