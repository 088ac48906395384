package domain

import (
	"context"
	"time"
)

type UserRepository interface {
	Create(ctx context.Context, user *User) error

	GetByID(ctx context.Context, id string) (*User, error)

	GetByEmail(ctx context.Context, email string) (*User, error)

	// AddXP atomically applies a signed delta to the user's XP with a floor of
	// zero (xp = max(0, xp + delta)) and returns the resulting value.
	AddXP(ctx context.Context, userID string, delta int) (int, error)

	// AddCoins works like AddXP for the coin balance.
	AddCoins(ctx context.Context, userID string, delta int) (int, error)

	// AddHappiness applies a signed delta clamped to [0, MaxHappiness].
	AddHappiness(ctx context.Context, userID string, delta int) (int, error)
}

type TaskRepository interface {
	Create(ctx context.Context, task *Task) error

	// GetByID retrieves a task regardless of owner; services check ownership.
	GetByID(ctx context.Context, id string) (*Task, error)

	ListByUserID(ctx context.Context, userID string) ([]*Task, error)

	Update(ctx context.Context, task *Task) error

	// MarkCompleted stores the completion transition (progress, flag,
	// timestamp, awarded amounts) only if the task is currently incomplete.
	// Returns false when a concurrent request completed it first; the caller
	// must then skip the reward application.
	MarkCompleted(ctx context.Context, task *Task) (bool, error)

	// MarkUncompleted reverses a completion, clearing progress, timestamp and
	// awards, only if the task is currently completed.
	MarkUncompleted(ctx context.Context, task *Task) (bool, error)

	// Delete removes the task and returns its final stored state, so the
	// caller can reverse awards off what was actually persisted rather than a
	// possibly stale read.
	Delete(ctx context.Context, id string) (*Task, error)

	// ListActiveGoalTasks returns the user's goal-flagged tasks with the given
	// frequency whose progress is still below 100. Feeds reminder selection.
	ListActiveGoalTasks(ctx context.Context, userID, frequency string) ([]*Task, error)

	// ListCompletedInRange returns tasks completed within [from, to], used for
	// the weekly summary.
	ListCompletedInRange(ctx context.Context, userID string, from, to time.Time) ([]*Task, error)
}
