package schedule_test

import (
	"testing"
	"time"

	"github.com/GigiaaaChen/synapse-tasks/internal/core/schedule"
	"github.com/stretchr/testify/assert"
)

func TestGenerate_Daily(t *testing.T) {
	t.Run("end date today yields exactly one occurrence", func(t *testing.T) {
		now := date(2024, time.January, 1, 8, 30)

		got := schedule.Generate("daily", 0, date(2024, time.January, 1, 0, 0), now)

		assert.Len(t, got, 1)
		assert.Equal(t, date(2024, time.January, 1, 23, 59), got[0])
	})

	t.Run("five days out yields six occurrences, one per day", func(t *testing.T) {
		now := date(2024, time.January, 1, 8, 30)
		end := date(2024, time.January, 6, 0, 0)

		got := schedule.Generate("daily", 0, end, now)

		assert.Len(t, got, 6)
		for i, deadline := range got {
			assert.Equal(t, date(2024, time.January, 1+i, 23, 59), deadline)
		}
	})

	t.Run("end date in the past yields nothing", func(t *testing.T) {
		now := date(2024, time.January, 10, 8, 30)

		got := schedule.Generate("daily", 0, date(2024, time.January, 5, 0, 0), now)

		assert.Empty(t, got)
	})
}

func TestGenerate_Weekly(t *testing.T) {
	t.Run("end date before the first deadline yields nothing", func(t *testing.T) {
		// First weekly deadline from Monday 01-01 with weekday 3 is 01-10.
		now := date(2024, time.January, 1, 8, 30)

		got := schedule.Generate("weekly", 3, date(2024, time.January, 8, 0, 0), now)

		assert.Empty(t, got)
	})

	t.Run("deadlines are ascending and spaced seven days apart", func(t *testing.T) {
		now := date(2024, time.January, 1, 8, 30)
		end := date(2024, time.February, 15, 0, 0)

		got := schedule.Generate("weekly", 0, end, now)

		assert.NotEmpty(t, got)
		assert.Equal(t, date(2024, time.January, 7, 23, 59), got[0])
		for i := 1; i < len(got); i++ {
			assert.Equal(t, got[i-1].AddDate(0, 0, 7), got[i])
		}
		assert.True(t, !got[len(got)-1].After(date(2024, time.February, 15, 23, 59)))
	})
}

func TestGenerate_InvalidFrequency(t *testing.T) {
	got := schedule.Generate("monthly", 0, date(2024, time.June, 1, 0, 0), date(2024, time.January, 1, 0, 0))
	assert.Nil(t, got)
}
