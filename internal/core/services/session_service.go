package services

import (
	"context"
	"time"

	"github.com/GigiaaaChen/synapse-tasks/internal/core/domain"
	"github.com/GigiaaaChen/synapse-tasks/internal/core/workers"
)

// SessionService records finished timer sessions and hands them to the care
// worker, which converts focused minutes into pet happiness off the request
// path.
type SessionService struct {
	repo     domain.SessionRepository
	taskRepo domain.TaskRepository
	worker   *workers.CareWorker
}

func NewSessionService(repo domain.SessionRepository, taskRepo domain.TaskRepository, worker *workers.CareWorker) *SessionService {
	return &SessionService{
		repo:     repo,
		taskRepo: taskRepo,
		worker:   worker,
	}
}

type RecordSessionInput struct {
	UserID    string
	TaskID    string
	StartedAt time.Time
	EndedAt   time.Time
}

func (s *SessionService) Record(ctx context.Context, input RecordSessionInput) (*domain.TimerSession, error) {
	task, err := s.taskRepo.GetByID(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != input.UserID {
		return nil, domain.ErrTaskNotFound
	}

	session, err := domain.NewTimerSession(input.UserID, input.TaskID, input.StartedAt, input.EndedAt)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}

	s.worker.Enqueue(session)

	return session, nil
}

func (s *SessionService) ListByTaskID(ctx context.Context, taskID, userID string) ([]*domain.TimerSession, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	return s.repo.ListByTaskID(ctx, taskID)
}
