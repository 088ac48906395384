package workers_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/GigiaaaChen/synapse-tasks/internal/core/domain"
	"github.com/GigiaaaChen/synapse-tasks/internal/core/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTaskRepo struct {
	tasks map[string]*domain.Task
}

func (s *stubTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	task, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

type stubUserRepo struct {
	happiness map[string]int
	mu        sync.Mutex
}

func (s *stubUserRepo) AddHappiness(ctx context.Context, userID string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.happiness[userID] += delta
	if s.happiness[userID] > domain.MaxHappiness {
		s.happiness[userID] = domain.MaxHappiness
	}
	return s.happiness[userID], nil
}

func (s *stubUserRepo) get(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.happiness[userID]
}

func newSession(t *testing.T, userID, taskID string, minutes int) *domain.TimerSession {
	t.Helper()
	start := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	session, err := domain.NewTimerSession(userID, taskID, start, start.Add(time.Duration(minutes)*time.Minute))
	require.NoError(t, err)
	return session
}

func TestCareWorker_AppliesCarePoints(t *testing.T) {
	task := &domain.Task{ID: "task-1", UserID: "user-1", Category: domain.CategoryHealth}
	taskRepo := &stubTaskRepo{tasks: map[string]*domain.Task{"task-1": task}}
	userRepo := &stubUserRepo{happiness: make(map[string]int)}

	worker := workers.NewCareWorker(taskRepo, userRepo)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)

	// 25 focused minutes on a health task: 25 * 3 care points.
	worker.Enqueue(newSession(t, "user-1", "task-1", 25))

	assert.Eventually(t, func() bool {
		return userRepo.get("user-1") == 75
	}, time.Second, 10*time.Millisecond)
}

func TestCareWorker_HappinessIsCapped(t *testing.T) {
	task := &domain.Task{ID: "task-1", UserID: "user-1", Category: domain.CategoryWork}
	taskRepo := &stubTaskRepo{tasks: map[string]*domain.Task{"task-1": task}}
	userRepo := &stubUserRepo{happiness: map[string]int{"user-1": 90}}

	worker := workers.NewCareWorker(taskRepo, userRepo)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)

	// 60 minutes of work would add 120, the counter stops at 100.
	worker.Enqueue(newSession(t, "user-1", "task-1", 60))

	assert.Eventually(t, func() bool {
		return userRepo.get("user-1") == domain.MaxHappiness
	}, time.Second, 10*time.Millisecond)
}

func TestCareWorker_SubMinuteSessionGrantsNothing(t *testing.T) {
	task := &domain.Task{ID: "task-1", UserID: "user-1", Category: domain.CategoryStudy}
	taskRepo := &stubTaskRepo{tasks: map[string]*domain.Task{"task-1": task}}
	userRepo := &stubUserRepo{happiness: make(map[string]int)}

	worker := workers.NewCareWorker(taskRepo, userRepo)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)

	start := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	session, err := domain.NewTimerSession("user-1", "task-1", start, start.Add(30*time.Second))
	require.NoError(t, err)
	worker.Enqueue(session)

	// Give the worker time to drain the queue, then check nothing changed.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, userRepo.get("user-1"))
}
