package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	t.Run("rfc3339 with zone converts to UTC", func(t *testing.T) {
		parsed, err := ParseTimestamp("2026-03-15T10:30:00+03:00")
		require.NoError(t, err)
		assert.True(t, parsed.Equal(time.Date(2026, 3, 15, 7, 30, 0, 0, time.UTC)))
		assert.Equal(t, time.UTC, parsed.Location())
	})

	t.Run("bare form treated as UTC", func(t *testing.T) {
		parsed, err := ParseTimestamp("2026-03-15T10:30:00")
		require.NoError(t, err)
		assert.True(t, parsed.Equal(time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)))
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := ParseTimestamp("15/03/2026")
		assert.Error(t, err)
	})
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"00:00", "07:30", "19:45", "23:59"}
	for _, s := range valid {
		assert.True(t, IsValidClock(s), s)
	}

	invalid := []string{"7:30", "24:00", "12:60", "12:3", "noon", "12:30:00", ""}
	for _, s := range invalid {
		assert.False(t, IsValidClock(s), s)
	}
}

func TestDateOf(t *testing.T) {
	late := time.Date(2026, 3, 15, 23, 45, 0, 0, time.FixedZone("east", 3*3600))
	// 23:45+03:00 is 20:45 UTC, still March 15th.
	assert.True(t, DateOf(late).Equal(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)))

	early := time.Date(2026, 3, 15, 1, 30, 0, 0, time.FixedZone("east", 3*3600))
	// 01:30+03:00 is 22:30 UTC the day before.
	assert.True(t, DateOf(early).Equal(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)))
}
