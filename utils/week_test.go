package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekWindowFromMidweek(t *testing.T) {
	// Wednesday 2024-01-03.
	now := time.Date(2024, 1, 3, 15, 30, 0, 0, time.UTC)
	start, end := WeekWindow(now, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), end)
}

func TestWeekWindowOnMonday(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	start, end := WeekWindow(now, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), end)
}

func TestWeekWindowOnSunday(t *testing.T) {
	// Sunday still belongs to the week that started the previous Monday.
	now := time.Date(2024, 1, 7, 23, 59, 59, 0, time.UTC)
	start, _ := WeekWindow(now, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
}

func TestWeekWindowRespectsLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	// Monday 01:00 UTC is still Sunday evening in Sao Paulo.
	now := time.Date(2024, 1, 8, 1, 0, 0, 0, time.UTC)
	start, _ := WeekWindow(now, loc)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, loc), start)
}

func TestWeekWindowFromTruncatesToMidnight(t *testing.T) {
	weekStart := time.Date(2024, 1, 1, 13, 45, 0, 0, time.UTC)
	start, end := WeekWindowFrom(weekStart, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), end)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), d)

	ts, err := ParseDate("2024-03-15T08:30:00Z", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC), ts)

	_, err = ParseDate("15/03/2024", time.UTC)
	assert.Error(t, err)
}
