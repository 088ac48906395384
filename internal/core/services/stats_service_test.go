package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/GigiaaaChen/synapse-tasks/internal/core/domain"
	"github.com/GigiaaaChen/synapse-tasks/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_GetWeeklySummary(t *testing.T) {
	ctx := context.Background()
	// Wednesday. The ISO week runs Mon Mar 4 through Sun Mar 10.
	now := time.Date(2024, time.March, 6, 10, 0, 0, 0, time.UTC)

	t.Run("Aggregates the current week", func(t *testing.T) {
		taskRepo := NewMockTaskRepo()
		userRepo := NewMockUserRepo("user-1")
		taskSvc := services.NewTaskService(taskRepo, userRepo, fixedClock(now))
		statsSvc := services.NewStatsService(taskRepo, fixedClock(now))

		workTask := seedTask(t, taskRepo, "user-1", "Ship feature", nil)
		workTask.Category = domain.CategoryWork
		require.NoError(t, taskRepo.Update(ctx, workTask))
		seedTask(t, taskRepo, "user-1", "Read a book", nil)

		_, err := taskSvc.Complete(ctx, workTask.ID, "user-1")
		require.NoError(t, err)

		summary, err := statsSvc.GetWeeklySummary(ctx, "user-1")
		require.NoError(t, err)

		assert.Equal(t, "2024-03-04", summary.StartDate)
		assert.Equal(t, "2024-03-10", summary.EndDate)
		assert.Equal(t, 2, summary.TotalTasks)
		assert.Equal(t, 1, summary.CompletedTasks)
		assert.Equal(t, 10, summary.XPEarned)
		assert.Equal(t, 5, summary.CoinsEarned)
		assert.InDelta(t, 50.0, summary.CompletionRate, 0.01)

		require.Len(t, summary.ByCategory, 2)
		assert.Equal(t, domain.CategoryPersonal, summary.ByCategory[0].Category)
		assert.Equal(t, 0, summary.ByCategory[0].Completed)
		assert.Equal(t, domain.CategoryWork, summary.ByCategory[1].Category)
		assert.Equal(t, 1, summary.ByCategory[1].Completed)
	})

	t.Run("Completions from a previous week do not count", func(t *testing.T) {
		taskRepo := NewMockTaskRepo()
		userRepo := NewMockUserRepo("user-1")
		lastWeek := now.AddDate(0, 0, -7)
		taskSvc := services.NewTaskService(taskRepo, userRepo, fixedClock(lastWeek))
		statsSvc := services.NewStatsService(taskRepo, fixedClock(now))

		task := seedTask(t, taskRepo, "user-1", "Old news", nil)
		_, err := taskSvc.Complete(ctx, task.ID, "user-1")
		require.NoError(t, err)

		summary, err := statsSvc.GetWeeklySummary(ctx, "user-1")
		require.NoError(t, err)

		assert.Equal(t, 1, summary.TotalTasks)
		assert.Equal(t, 0, summary.CompletedTasks)
		assert.Equal(t, 0, summary.XPEarned)
	})

	t.Run("Empty account yields a zero summary", func(t *testing.T) {
		statsSvc := services.NewStatsService(NewMockTaskRepo(), fixedClock(now))

		summary, err := statsSvc.GetWeeklySummary(ctx, "user-1")
		require.NoError(t, err)

		assert.Equal(t, 0, summary.TotalTasks)
		assert.Equal(t, 0.0, summary.CompletionRate)
		assert.Empty(t, summary.ByCategory)
	})
}
