package schedule_test

import (
	"testing"
	"time"

	"github.com/GigiaaaChen/synapse-tasks/internal/core/schedule"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestDayBounds(t *testing.T) {
	start, end := schedule.DayBounds(date(2024, time.March, 15, 14, 30))

	assert.Equal(t, date(2024, time.March, 15, 0, 0), start)
	assert.Equal(t, time.Date(2024, time.March, 15, 23, 59, 59, 999000000, time.UTC), end)
}

func TestISOWeekBounds(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantStart time.Time
	}{
		{
			name:      "Wednesday maps to its Monday",
			now:       date(2024, time.January, 3, 10, 0),
			wantStart: date(2024, time.January, 1, 0, 0),
		},
		{
			name:      "Monday is its own week start",
			now:       date(2024, time.January, 1, 0, 0),
			wantStart: date(2024, time.January, 1, 0, 0),
		},
		{
			name: "Sunday belongs to the preceding Monday, six days back",
			// 2024-01-07 is a Sunday. Naive weekday-1 arithmetic would land
			// on 2024-01-06 (Saturday) or the following week.
			now:       date(2024, time.January, 7, 23, 0),
			wantStart: date(2024, time.January, 1, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := schedule.ISOWeekBounds(tt.now)

			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, time.Monday, start.Weekday())
			assert.Equal(t, time.Sunday, end.Weekday())
			assert.Equal(t,
				tt.wantStart.AddDate(0, 0, 6).Add(24*time.Hour-time.Millisecond),
				end,
			)
		})
	}
}

func TestNextOccurrenceDeadline(t *testing.T) {
	t.Run("daily is due the same day at 23:59", func(t *testing.T) {
		got := schedule.NextOccurrenceDeadline(date(2024, time.March, 15, 9, 0), "daily", 0)
		assert.Equal(t, date(2024, time.March, 15, 23, 59), got)
	})

	t.Run("weekly anchors on the next Sunday then shifts by weekday", func(t *testing.T) {
		// 2024-01-04 is a Thursday; next Sunday is 2024-01-07.
		got := schedule.NextOccurrenceDeadline(date(2024, time.January, 4, 0, 0), "weekly", 3)
		assert.Equal(t, date(2024, time.January, 10, 23, 59), got)
	})

	t.Run("weekly cursor on a Sunday anchors on that Sunday", func(t *testing.T) {
		got := schedule.NextOccurrenceDeadline(date(2024, time.January, 7, 0, 0), "weekly", 0)
		assert.Equal(t, date(2024, time.January, 7, 23, 59), got)
	})

	t.Run("weekly with Saturday repeat day", func(t *testing.T) {
		got := schedule.NextOccurrenceDeadline(date(2024, time.January, 1, 0, 0), "weekly", 6)
		// Next Sunday after Monday 01-01 is 01-07, plus 6 days.
		assert.Equal(t, date(2024, time.January, 13, 23, 59), got)
	})
}

func TestMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	now := time.Date(2024, time.June, 10, 18, 45, 12, 500, loc)

	got := schedule.Midnight(now)

	assert.Equal(t, time.Date(2024, time.June, 10, 0, 0, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}
