package domain_test

import (
	"testing"
	"time"

	"github.com/GigiaaaChen/synapse-tasks/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGoal_Validation(t *testing.T) {
	endDate := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name          string
		userID        string
		title         string
		frequency     string
		repeatWeekday int
		endDate       time.Time
		wantErr       error
	}{
		{
			name:      "Valid daily goal",
			userID:    "user-1",
			title:     "Stretch",
			frequency: domain.FreqDaily,
			endDate:   endDate,
		},
		{
			name:          "Valid weekly goal on Saturday",
			userID:        "user-1",
			title:         "Long run",
			frequency:     domain.FreqWeekly,
			repeatWeekday: 6,
			endDate:       endDate,
		},
		{
			name:      "Empty title",
			userID:    "user-1",
			title:     " ",
			frequency: domain.FreqDaily,
			endDate:   endDate,
			wantErr:   domain.ErrGoalTitleEmpty,
		},
		{
			name:      "Invalid frequency",
			userID:    "user-1",
			title:     "Sometimes",
			frequency: "monthly",
			endDate:   endDate,
			wantErr:   domain.ErrInvalidFrequency,
		},
		{
			name:          "Weekday out of range",
			userID:        "user-1",
			title:         "Long run",
			frequency:     domain.FreqWeekly,
			repeatWeekday: 7,
			endDate:       endDate,
			wantErr:       domain.ErrInvalidWeekday,
		},
		{
			name:      "Missing end date",
			userID:    "user-1",
			title:     "Forever",
			frequency: domain.FreqDaily,
			wantErr:   domain.ErrGoalEndDateZero,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			goal, err := domain.NewGoal(tc.userID, tc.title, "", tc.frequency, tc.repeatWeekday, tc.endDate)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, goal.ID)
			assert.Equal(t, domain.CategoryOther, goal.Category)
		})
	}
}

func TestGoalOccurrence_CompleteUncomplete(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	occ := domain.NewGoalOccurrence("goal-1", now.Add(24*time.Hour))
	require.False(t, occ.Completed)

	occ.Complete(now)
	assert.True(t, occ.Completed)
	require.NotNil(t, occ.CompletedAt)
	assert.True(t, occ.CompletedAt.Equal(now))

	occ.Uncomplete()
	assert.False(t, occ.Completed)
	assert.Nil(t, occ.CompletedAt)
}
