package services

import (
	"context"
	"time"

	"github.com/GigiaaaChen/synapse-tasks/internal/core/domain"
	"github.com/GigiaaaChen/synapse-tasks/internal/core/rewards"
	"github.com/GigiaaaChen/synapse-tasks/internal/core/schedule"
)

// TaskService owns the task lifecycle and its reward accounting. Completion
// and un-completion are the only XP-affecting transitions; both go through the
// repository's guarded updates so concurrent requests cannot double-apply or
// double-reverse a delta.
type TaskService struct {
	repo     domain.TaskRepository
	userRepo domain.UserRepository
	clock    schedule.Clock
}

func NewTaskService(repo domain.TaskRepository, userRepo domain.UserRepository, clock schedule.Clock) *TaskService {
	if clock == nil {
		clock = time.Now
	}
	return &TaskService{
		repo:     repo,
		userRepo: userRepo,
		clock:    clock,
	}
}

type CreateTaskInput struct {
	UserID    string
	Title     string
	Category  string
	DueDate   *time.Time
	IsGoal    bool
	Frequency string
}

// UpdateTaskInput carries the optional edits. DueDateSet distinguishes "no
// due date change" from "clear the due date": when it is true, DueDate is
// written as-is, nil included.
type UpdateTaskInput struct {
	ID         string
	UserID     string
	Title      string
	Category   string
	DueDate    *time.Time
	DueDateSet bool
	Progress   *int
}

func (s *TaskService) Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	task, err := domain.NewTask(input.UserID, input.Title, input.Category, input.DueDate, input.IsGoal, input.Frequency)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) ListByUserID(ctx context.Context, userID string) ([]*domain.Task, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *TaskService) GetByID(ctx context.Context, id, userID string) (*domain.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

// Update edits title, category, due date and, when Progress is set, routes
// progress changes through the completion state machine: reaching 100 is a
// completion, and dropping a completed task below 100 is an un-completion.
func (s *TaskService) Update(ctx context.Context, input UpdateTaskInput) (*domain.Task, error) {
	task, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	now := s.clock()

	if input.Title != "" {
		if err := task.Rename(input.Title, now); err != nil {
			return nil, err
		}
	}
	if input.Category != "" {
		task.Category = input.Category
	}
	if input.DueDateSet && !task.IsGoal {
		task.DueDate = input.DueDate
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	if input.Progress != nil {
		if *input.Progress == domain.FullProgress {
			return s.Complete(ctx, input.ID, input.UserID)
		}
		if task.Completed {
			if _, err := s.Uncomplete(ctx, input.ID, input.UserID); err != nil {
				return nil, err
			}
		}
		task, err = s.GetByID(ctx, input.ID, input.UserID)
		if err != nil {
			return nil, err
		}
		if err := task.SetProgress(*input.Progress, now); err != nil {
			return nil, err
		}
		if err := s.repo.Update(ctx, task); err != nil {
			return nil, err
		}
	}

	return task, nil
}

// Complete transitions the task to done and grants XP and coins. Completing an
// already-completed task is a no-op; losing the transition race to another
// request awards nothing.
func (s *TaskService) Complete(ctx context.Context, id, userID string) (*domain.Task, error) {
	task, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if task.Completed {
		return task, nil
	}

	now := s.clock()
	task.Complete(now)

	item := ledgerItem(task)
	task.AwardedXP = rewards.Delta(rewards.Complete, item)
	task.AwardedCoin = rewards.CoinDelta(rewards.Complete, item)

	applied, err := s.repo.MarkCompleted(ctx, task)
	if err != nil {
		return nil, err
	}
	if !applied {
		return s.GetByID(ctx, id, userID)
	}

	if _, err := s.userRepo.AddXP(ctx, userID, task.AwardedXP); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.AddCoins(ctx, userID, task.AwardedCoin); err != nil {
		return nil, err
	}

	return task, nil
}

// Uncomplete reverses a completion, including the exact XP and coin amounts
// the completion granted. The reversal is recomputed from the stored due date
// and completion timestamp, not read from a cache.
func (s *TaskService) Uncomplete(ctx context.Context, id, userID string) (*domain.Task, error) {
	task, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if !task.Completed {
		return task, nil
	}

	item := ledgerItem(task)
	xpDelta := rewards.Delta(rewards.Uncomplete, item)
	coinDelta := rewards.CoinDelta(rewards.Uncomplete, item)

	task.Uncomplete(s.clock())

	applied, err := s.repo.MarkUncompleted(ctx, task)
	if err != nil {
		return nil, err
	}
	if !applied {
		return s.GetByID(ctx, id, userID)
	}

	if _, err := s.userRepo.AddXP(ctx, userID, xpDelta); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.AddCoins(ctx, userID, coinDelta); err != nil {
		return nil, err
	}

	return task, nil
}

// Delete removes the task. Deleting a completed task reverses its award,
// computed from the state the store actually held at deletion time.
func (s *TaskService) Delete(ctx context.Context, id, userID string) error {
	task, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, task.ID)
	if err != nil {
		return err
	}

	if !deleted.Completed {
		return nil
	}

	item := ledgerItem(deleted)
	if _, err := s.userRepo.AddXP(ctx, userID, rewards.Delta(rewards.Uncomplete, item)); err != nil {
		return err
	}
	if _, err := s.userRepo.AddCoins(ctx, userID, rewards.CoinDelta(rewards.Uncomplete, item)); err != nil {
		return err
	}

	return nil
}

func ledgerItem(task *domain.Task) rewards.Item {
	return rewards.Item{
		IsGoal:      task.IsGoal,
		Frequency:   task.Frequency,
		DueDate:     task.DueDate,
		CompletedAt: task.CompletedAt,
	}
}
