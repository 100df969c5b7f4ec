package dates_test

import (
	"testing"
	"time"

	"github.com/finledger/fin_titles_app/internal/utils/dates"
	"github.com/stretchr/testify/assert"
)

func TestDayOnly(t *testing.T) {
	ts := time.Date(2025, 3, 15, 23, 45, 12, 999, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), dates.DayOnly(ts))
}

func TestDaysInRange(t *testing.T) {
	start := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 5, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, 5, dates.DaysInRange(start, end))
	assert.Equal(t, 1, dates.DaysInRange(start, start))
	assert.Equal(t, 0, dates.DaysInRange(end, start))
}

func TestWithinRange(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.True(t, dates.WithinRange(time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC), start, end))
	assert.True(t, dates.WithinRange(end, start, end))
	assert.False(t, dates.WithinRange(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), start, end))
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2025-03", dates.MonthKey(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-12", dates.MonthKey(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDaysOverdue(t *testing.T) {
	ref := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, dates.DaysOverdue(ref, ref))
	assert.Equal(t, 0, dates.DaysOverdue(ref.AddDate(0, 0, 3), ref))
	assert.Equal(t, 1, dates.DaysOverdue(ref.AddDate(0, 0, -1), ref))
	assert.Equal(t, 45, dates.DaysOverdue(ref.AddDate(0, 0, -45), ref))
}
