package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-04-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2026-04-10", FormatDate(d))

	_, err = ParseDate("2026-13-01")
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	now := time.Date(2026, 3, 2, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysBetween(now, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, DaysBetween(now, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 7, DaysBetween(now, time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, -2, DaysBetween(now, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)))
}
