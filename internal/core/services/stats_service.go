package services

import (
	"context"
	"time"

	"github.com/GigiaaaChen/synapse-tasks/internal/core/domain"
	"github.com/GigiaaaChen/synapse-tasks/internal/core/schedule"
)

type StatsService struct {
	taskRepo domain.TaskRepository
	clock    schedule.Clock
}

func NewStatsService(taskRepo domain.TaskRepository, clock schedule.Clock) *StatsService {
	if clock == nil {
		clock = time.Now
	}
	return &StatsService{
		taskRepo: taskRepo,
		clock:    clock,
	}
}

// GetWeeklySummary aggregates the current ISO week (Monday through Sunday).
func (s *StatsService) GetWeeklySummary(ctx context.Context, userID string) (*domain.WeeklySummary, error) {
	weekStart, weekEnd := schedule.ISOWeekBounds(s.clock())

	tasks, err := s.taskRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	completed, err := s.taskRepo.ListCompletedInRange(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	summary := &domain.WeeklySummary{
		StartDate:      weekStart.Format("2006-01-02"),
		EndDate:        weekEnd.Format("2006-01-02"),
		TotalTasks:     len(tasks),
		CompletedTasks: len(completed),
	}

	byCategory := make(map[string]*domain.CategoryStat)
	for _, task := range tasks {
		stat, ok := byCategory[task.Category]
		if !ok {
			stat = &domain.CategoryStat{Category: task.Category}
			byCategory[task.Category] = stat
		}
		stat.Total++
	}

	for _, task := range completed {
		summary.XPEarned += task.AwardedXP
		summary.CoinsEarned += task.AwardedCoin

		if stat, ok := byCategory[task.Category]; ok {
			stat.Completed++
		}
	}

	if len(tasks) > 0 {
		summary.CompletionRate = float64(len(completed)) / float64(len(tasks)) * 100
	}

	categories := []string{
		domain.CategoryPersonal, domain.CategoryWork, domain.CategoryStudy,
		domain.CategoryHealth, domain.CategoryOther,
	}
	for _, c := range categories {
		if stat, ok := byCategory[c]; ok {
			summary.ByCategory = append(summary.ByCategory, *stat)
		}
	}

	return summary, nil
}
