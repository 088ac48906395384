package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GigiaaaChen/synapse-tasks/internal/core/domain"
)

var _ domain.TaskRepository = (*CachedTaskRepository)(nil)

// CachedTaskRepository caches the per-user task list in redis and invalidates
// on every write. Cache failures degrade to the underlying store, never to an
// error.
type CachedTaskRepository struct {
	next  domain.TaskRepository
	cache *redis.Client
}

func NewCachedTaskRepository(next domain.TaskRepository, cache *redis.Client) *CachedTaskRepository {
	return &CachedTaskRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedTaskRepository) cacheKey(userID string) string {
	return fmt.Sprintf("tasks:%s", userID)
}

func (r *CachedTaskRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate for user %s: %v", userID, err)
	}
}

func (r *CachedTaskRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Task, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var tasks []*domain.Task
		if err := json.Unmarshal([]byte(val), &tasks); err == nil {
			return tasks, nil
		}

		log.Printf("[CACHE] Corrupted data for user %s, cleaning up key", userID)
		r.cache.Del(ctx, key)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	tasks, err := r.next.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(tasks); err == nil {
		if setErr := r.cache.Set(ctx, key, data, 30*time.Minute).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return tasks, nil
}

func (r *CachedTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if err := r.next.Create(ctx, task); err != nil {
		return err
	}
	r.invalidate(ctx, task.UserID)
	return nil
}

func (r *CachedTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if err := r.next.Update(ctx, task); err != nil {
		return err
	}
	r.invalidate(ctx, task.UserID)
	return nil
}

func (r *CachedTaskRepository) MarkCompleted(ctx context.Context, task *domain.Task) (bool, error) {
	applied, err := r.next.MarkCompleted(ctx, task)
	if applied {
		r.invalidate(ctx, task.UserID)
	}
	return applied, err
}

func (r *CachedTaskRepository) MarkUncompleted(ctx context.Context, task *domain.Task) (bool, error) {
	applied, err := r.next.MarkUncompleted(ctx, task)
	if applied {
		r.invalidate(ctx, task.UserID)
	}
	return applied, err
}

func (r *CachedTaskRepository) Delete(ctx context.Context, id string) (*domain.Task, error) {
	task, err := r.next.Delete(ctx, id)
	if err == nil && task != nil {
		r.invalidate(ctx, task.UserID)
	}
	return task, err
}

func (r *CachedTaskRepository) ListActiveGoalTasks(ctx context.Context, userID, frequency string) ([]*domain.Task, error) {
	return r.next.ListActiveGoalTasks(ctx, userID, frequency)
}

func (r *CachedTaskRepository) ListCompletedInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Task, error) {
	return r.next.ListCompletedInRange(ctx, userID, from, to)
}
