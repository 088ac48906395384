package services

import (
	"context"
	"fmt"
	"time"

	"github.com/GigiaaaChen/synapse-tasks/internal/core/domain"
	"github.com/GigiaaaChen/synapse-tasks/internal/core/schedule"
)

// ReminderService selects goal tasks that still need attention in the current
// period. The consuming mode records a dedup key per item; under concurrent
// dispatches the store's unique constraint makes delivery at-most-once per
// (user, item, period type, period start).
type ReminderService struct {
	taskRepo     domain.TaskRepository
	reminderRepo domain.ReminderRepository
	clock        schedule.Clock
}

func NewReminderService(taskRepo domain.TaskRepository, reminderRepo domain.ReminderRepository, clock schedule.Clock) *ReminderService {
	if clock == nil {
		clock = time.Now
	}
	return &ReminderService{
		taskRepo:     taskRepo,
		reminderRepo: reminderRepo,
		clock:        clock,
	}
}

// DueReminders returns the eligible set without recording anything. Supports
// preview and dry runs.
func (s *ReminderService) DueReminders(ctx context.Context, userID, periodType string) ([]domain.ReminderNotice, error) {
	return s.collect(ctx, userID, periodType, false)
}

// DispatchReminders returns the eligible set and records a dedup key for each
// returned item. Items whose key already exists, including keys inserted by a
// concurrent dispatch between our read and our write, are excluded.
func (s *ReminderService) DispatchReminders(ctx context.Context, userID, periodType string) ([]domain.ReminderNotice, error) {
	return s.collect(ctx, userID, periodType, true)
}

func (s *ReminderService) collect(ctx context.Context, userID, periodType string, consume bool) ([]domain.ReminderNotice, error) {
	if !domain.ValidPeriodType(periodType) {
		return nil, domain.ErrInvalidPeriodType
	}

	periodStart := s.periodStart(periodType)

	tasks, err := s.taskRepo.ListActiveGoalTasks(ctx, userID, periodType)
	if err != nil {
		return nil, err
	}

	notices := make([]domain.ReminderNotice, 0, len(tasks))

	for _, task := range tasks {
		if consume {
			inserted, err := s.reminderRepo.TryLog(ctx, &domain.ReminderLog{
				UserID:      userID,
				ItemID:      task.ID,
				PeriodType:  periodType,
				PeriodStart: periodStart,
				CreatedAt:   s.clock().UTC(),
			})
			if err != nil {
				return nil, err
			}
			if !inserted {
				continue
			}
		} else {
			exists, err := s.reminderRepo.Exists(ctx, userID, task.ID, periodType, periodStart)
			if err != nil {
				return nil, err
			}
			if exists {
				continue
			}
		}

		notices = append(notices, domain.ReminderNotice{
			ItemID:   task.ID,
			Title:    task.Title,
			Category: task.Category,
			Progress: task.Progress,
			Target:   domain.FullProgress,
			Text:     noticeText(task),
		})
	}

	return notices, nil
}

// periodStart is today's midnight for daily reminders and the ISO Monday for
// weekly ones. This is the Monday convention; weekly occurrence deadlines use
// a Sunday anchor and the two must stay separate.
func (s *ReminderService) periodStart(periodType string) time.Time {
	now := s.clock()
	if periodType == domain.PeriodWeekly {
		start, _ := schedule.ISOWeekBounds(now)
		return start
	}
	return schedule.Midnight(now)
}

func noticeText(task *domain.Task) string {
	return fmt.Sprintf("Your %s goal %q is at %d%%, keep it up!", task.Category, task.Title, task.Progress)
}
