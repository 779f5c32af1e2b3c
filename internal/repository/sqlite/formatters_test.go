package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeForDB(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	ts := time.Date(2024, 1, 2, 10, 0, 0, 500, loc)

	formatted := FormatTimeForDB(ts)
	assert.Equal(t, "2024-01-02T15:00:00.0000005Z", formatted)

	parsed, err := ParseTimeFromDB(formatted)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(ts))
}

func TestParseTimeFromDB_LocalZone(t *testing.T) {
	saved := time.Local
	time.Local = time.FixedZone("JST", 9*3600)
	t.Cleanup(func() { time.Local = saved })

	parsed, err := ParseTimeFromDB("2024-05-01T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Local, parsed.Location())
	assert.Equal(t, "2024-05-01 09:00", parsed.Format("2006-01-02 15:04"))

	_, err = ParseTimeFromDB("yesterday")
	assert.Error(t, err)
}

func TestTagsRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		tags    []string
		encoded string
	}{
		{name: "nil", tags: nil, encoded: "[]"},
		{name: "empty", tags: []string{}, encoded: "[]"},
		{name: "values", tags: []string{"work", "a,b"}, encoded: `["work","a,b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := FormatTagsForDB(tt.tags)
			require.NoError(t, err)
			assert.Equal(t, tt.encoded, encoded)

			decoded, err := ParseTagsFromDB(encoded)
			require.NoError(t, err)
			assert.Len(t, decoded, len(tt.tags))
		})
	}
}

func TestParseTagsFromDB_Invalid(t *testing.T) {
	_, err := ParseTagsFromDB("not json")
	assert.Error(t, err)

	tags, err := ParseTagsFromDB("")
	require.NoError(t, err)
	assert.Equal(t, []string{}, tags)
}
