package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: ""},
		{name: "Local returns local", timezone: "Local"},
		{name: "valid timezone UTC", timezone: "UTC"},
		{name: "valid timezone America/Chicago", timezone: "America/Chicago"},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, ValidateTimezone(tt.timezone))
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, loc)
			assert.True(t, ValidateTimezone(tt.timezone))
		})
	}
}

func TestSameDay(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	ref := time.Date(2026, 1, 18, 9, 0, 0, 0, chicago)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"same instant", ref, true},
		{"late evening same day", time.Date(2026, 1, 18, 23, 59, 0, 0, chicago), true},
		{"next day", time.Date(2026, 1, 19, 0, 0, 0, 0, chicago), false},
		// 03:00 UTC on the 19th is still the 18th in Chicago.
		{"other location same local date", time.Date(2026, 1, 19, 3, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SameDay(tt.at, ref))
		})
	}
}

func TestWholeDaysBetween(t *testing.T) {
	start := time.Date(2026, 1, 16, 10, 5, 0, 0, time.UTC)

	assert.Equal(t, 0, WholeDaysBetween(start, start.Add(23*time.Hour)))
	assert.Equal(t, 1, WholeDaysBetween(start, start.Add(24*time.Hour)))
	assert.Equal(t, 30, WholeDaysBetween(start, AddDays(start, 30)))
	assert.Equal(t, 29, WholeDaysBetween(start, AddDays(start, 30).Add(-time.Minute)))
	assert.Equal(t, -2, WholeDaysBetween(start, AddDays(start, -2)))
}

func TestManualClock(t *testing.T) {
	start := time.Date(2026, 1, 16, 10, 0, 0, 0, time.UTC)
	clock := NewManualClock(start)

	assert.Equal(t, start, clock.Now())
	clock.Advance(48 * time.Hour)
	assert.Equal(t, start.Add(48*time.Hour), clock.Now())
	clock.Set(start)
	assert.Equal(t, start, clock.Now())
}

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("2026-01-16T10:05:00Z", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 16, 10, 5, 0, 0, time.UTC), got)

	got, err = ParseTimestamp("2026-01-16", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseTimestamp("Jan 16", time.UTC)
	assert.Error(t, err)
}
