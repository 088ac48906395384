package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/GigiaaaChen/synapse-tasks/internal/core/domain"
	"github.com/GigiaaaChen/synapse-tasks/internal/core/rewards"
)

// In-memory implementations of the repositories, used in tests and local runs
// without postgres. Mutex-guarded maps; clones on the way in and out so
// callers never share memory with the store.

type InMemoryUserRepository struct {
	store map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}

	clone := *user
	r.store[user.ID] = &clone
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) AddXP(ctx context.Context, userID string, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.store[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	user.XP = rewards.ClampFloor(user.XP, delta)
	user.UpdatedAt = time.Now().UTC()
	return user.XP, nil
}

func (r *InMemoryUserRepository) AddCoins(ctx context.Context, userID string, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.store[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	user.Coins = rewards.ClampFloor(user.Coins, delta)
	user.UpdatedAt = time.Now().UTC()
	return user.Coins, nil
}

func (r *InMemoryUserRepository) AddHappiness(ctx context.Context, userID string, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.store[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	user.Happiness = rewards.ClampRange(user.Happiness, delta, domain.MaxHappiness)
	user.UpdatedAt = time.Now().UTC()
	return user.Happiness, nil
}

type InMemoryTaskRepository struct {
	store map[string]*domain.Task

	mu sync.RWMutex
}

func NewInMemoryTaskRepository() *InMemoryTaskRepository {
	return &InMemoryTaskRepository{
		store: make(map[string]*domain.Task),
	}
}

func (r *InMemoryTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *task
	r.store[task.ID] = &clone
	return nil
}

func (r *InMemoryTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.store[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *task
	return &clone, nil
}

func (r *InMemoryTaskRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tasks []*domain.Task
	for _, t := range r.store {
		if t.UserID == userID {
			clone := *t
			tasks = append(tasks, &clone)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (r *InMemoryTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	clone := *task
	r.store[task.ID] = &clone
	return nil
}

func (r *InMemoryTaskRepository) MarkCompleted(ctx context.Context, task *domain.Task) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[task.ID]
	if !ok {
		return false, domain.ErrTaskNotFound
	}
	if stored.Completed {
		return false, nil
	}

	stored.Progress = domain.FullProgress
	stored.Completed = true
	stored.CompletedAt = task.CompletedAt
	stored.AwardedXP = task.AwardedXP
	stored.AwardedCoin = task.AwardedCoin
	stored.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *InMemoryTaskRepository) MarkUncompleted(ctx context.Context, task *domain.Task) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[task.ID]
	if !ok {
		return false, domain.ErrTaskNotFound
	}
	if !stored.Completed {
		return false, nil
	}

	stored.Progress = 0
	stored.Completed = false
	stored.CompletedAt = nil
	stored.AwardedXP = 0
	stored.AwardedCoin = 0
	stored.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *InMemoryTaskRepository) Delete(ctx context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.store[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	delete(r.store, id)
	clone := *task
	return &clone, nil
}

func (r *InMemoryTaskRepository) ListActiveGoalTasks(ctx context.Context, userID, frequency string) ([]*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tasks []*domain.Task
	for _, t := range r.store {
		if t.UserID == userID && t.IsGoal && t.Frequency == frequency && t.Progress < domain.FullProgress {
			clone := *t
			tasks = append(tasks, &clone)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (r *InMemoryTaskRepository) ListCompletedInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tasks []*domain.Task
	for _, t := range r.store {
		if t.UserID != userID || !t.Completed || t.CompletedAt == nil {
			continue
		}
		if t.CompletedAt.Before(from) || t.CompletedAt.After(to) {
			continue
		}
		clone := *t
		tasks = append(tasks, &clone)
	}
	return tasks, nil
}

type InMemoryGoalRepository struct {
	goals       map[string]*domain.Goal
	occurrences map[string]*domain.GoalOccurrence

	mu sync.RWMutex
}

func NewInMemoryGoalRepository() *InMemoryGoalRepository {
	return &InMemoryGoalRepository{
		goals:       make(map[string]*domain.Goal),
		occurrences: make(map[string]*domain.GoalOccurrence),
	}
}

func (r *InMemoryGoalRepository) Create(ctx context.Context, goal *domain.Goal, occurrences []*domain.GoalOccurrence) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	goalClone := *goal
	r.goals[goal.ID] = &goalClone
	for _, occ := range occurrences {
		clone := *occ
		r.occurrences[occ.ID] = &clone
	}
	return nil
}

func (r *InMemoryGoalRepository) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	goal, ok := r.goals[id]
	if !ok {
		return nil, domain.ErrGoalNotFound
	}
	clone := *goal
	return &clone, nil
}

func (r *InMemoryGoalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var goals []*domain.Goal
	for _, g := range r.goals {
		if g.UserID == userID {
			clone := *g
			goals = append(goals, &clone)
		}
	}
	return goals, nil
}

func (r *InMemoryGoalRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.goals[id]; !ok {
		return domain.ErrGoalNotFound
	}
	delete(r.goals, id)
	for occID, occ := range r.occurrences {
		if occ.GoalID == id {
			delete(r.occurrences, occID)
		}
	}
	return nil
}

func (r *InMemoryGoalRepository) ListOccurrences(ctx context.Context, goalID string) ([]*domain.GoalOccurrence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var occurrences []*domain.GoalOccurrence
	for _, occ := range r.occurrences {
		if occ.GoalID == goalID {
			clone := *occ
			occurrences = append(occurrences, &clone)
		}
	}
	sort.Slice(occurrences, func(i, j int) bool {
		return occurrences[i].Deadline.Before(occurrences[j].Deadline)
	})
	return occurrences, nil
}

func (r *InMemoryGoalRepository) GetOccurrence(ctx context.Context, id string) (*domain.GoalOccurrence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	occ, ok := r.occurrences[id]
	if !ok {
		return nil, domain.ErrOccurrenceNotFound
	}
	clone := *occ
	return &clone, nil
}

func (r *InMemoryGoalRepository) MarkOccurrenceCompleted(ctx context.Context, occ *domain.GoalOccurrence) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.occurrences[occ.ID]
	if !ok {
		return false, domain.ErrOccurrenceNotFound
	}
	if stored.Completed {
		return false, nil
	}
	stored.Completed = true
	stored.CompletedAt = occ.CompletedAt
	return true, nil
}

func (r *InMemoryGoalRepository) MarkOccurrenceUncompleted(ctx context.Context, occ *domain.GoalOccurrence) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.occurrences[occ.ID]
	if !ok {
		return false, domain.ErrOccurrenceNotFound
	}
	if !stored.Completed {
		return false, nil
	}
	stored.Completed = false
	stored.CompletedAt = nil
	return true, nil
}

type InMemoryReminderRepository struct {
	keys map[string]bool

	mu sync.Mutex
}

func NewInMemoryReminderRepository() *InMemoryReminderRepository {
	return &InMemoryReminderRepository{
		keys: make(map[string]bool),
	}
}

func reminderKey(userID, itemID, periodType string, periodStart time.Time) string {
	return fmt.Sprintf("%s|%s|%s|%s", userID, itemID, periodType, periodStart.Format("2006-01-02"))
}

func (r *InMemoryReminderRepository) TryLog(ctx context.Context, log *domain.ReminderLog) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := reminderKey(log.UserID, log.ItemID, log.PeriodType, log.PeriodStart)
	if r.keys[key] {
		return false, nil
	}
	r.keys[key] = true
	return true, nil
}

func (r *InMemoryReminderRepository) Exists(ctx context.Context, userID, itemID, periodType string, periodStart time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.keys[reminderKey(userID, itemID, periodType, periodStart)], nil
}

type InMemorySessionRepository struct {
	store map[string]*domain.TimerSession

	mu sync.RWMutex
}

func NewInMemorySessionRepository() *InMemorySessionRepository {
	return &InMemorySessionRepository{
		store: make(map[string]*domain.TimerSession),
	}
}

func (r *InMemorySessionRepository) Create(ctx context.Context, session *domain.TimerSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *session
	r.store[session.ID] = &clone
	return nil
}

func (r *InMemorySessionRepository) ListByTaskID(ctx context.Context, taskID string) ([]*domain.TimerSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sessions []*domain.TimerSession
	for _, s := range r.store {
		if s.TaskID == taskID {
			clone := *s
			sessions = append(sessions, &clone)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.After(sessions[j].StartedAt)
	})
	return sessions, nil
}
