package sqlite

import (
	"encoding/json"
	"time"
)

// FormatTimeForDB formats a time.Time value as RFC3339 string for consistent database storage.
// Sub-second precision is kept so creation order survives a round trip.
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database.
// The result is in the local zone, the zone the form parser and the
// in-memory store hand out.
func ParseTimeFromDB(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Local(), nil
}

// FormatTagsForDB encodes tags as a JSON array; nil encodes as "[]".
func FormatTagsForDB(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseTagsFromDB decodes a JSON array of tags.
func ParseTagsFromDB(s string) ([]string, error) {
	tags := []string{}
	if s == "" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
