package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDateRejectsOtherFormats(t *testing.T) {
	bad := []string{
		"03-01-2024",
		"2024/03/01",
		"2024-3-1",
		"2024-03-01T00:00:00Z",
		"yesterday",
		"",
	}
	for _, s := range bad {
		_, err := ParseDate(s)
		assert.Error(t, err, "expected %q to be rejected", s)
	}
}

func TestFormatDateRoundTrip(t *testing.T) {
	day := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	parsed, err := ParseDate(FormatDate(day))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(day))
}
