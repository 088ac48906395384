package workers

import (
	"context"
	"log"

	"github.com/GigiaaaChen/synapse-tasks/internal/core/domain"
	"github.com/GigiaaaChen/synapse-tasks/internal/core/rewards"
)

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
}

type UserRepository interface {
	AddHappiness(ctx context.Context, userID string, delta int) (int, error)
}

type CareJob struct {
	Session *domain.TimerSession
}

// CareWorker turns finished timer sessions into pet happiness in the
// background, so the session endpoint never waits on the counter update.
type CareWorker struct {
	taskRepo TaskRepository
	userRepo UserRepository
	jobs     chan CareJob
}

func NewCareWorker(taskRepo TaskRepository, userRepo UserRepository) *CareWorker {
	return &CareWorker{
		taskRepo: taskRepo,
		userRepo: userRepo,
		jobs:     make(chan CareJob, 100),
	}
}

func (w *CareWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Care Worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("Care Worker shutting down...")
				return
			}
		}
	}()
}

func (w *CareWorker) Enqueue(session *domain.TimerSession) {
	select {
	case w.jobs <- CareJob{Session: session}:
	default:
		log.Printf("Care Worker queue full! Dropping job for session %s", session.ID)
	}
}

func (w *CareWorker) processJob(ctx context.Context, job CareJob) {
	session := job.Session

	category := domain.CategoryOther
	if session.TaskID != "" {
		task, err := w.taskRepo.GetByID(ctx, session.TaskID)
		if err != nil {
			log.Printf("Care Worker error fetching task %s: %v", session.TaskID, err)
			return
		}
		category = task.Category
	}

	points := rewards.CarePoints(session.Minutes(), category)
	if points == 0 {
		return
	}

	happiness, err := w.userRepo.AddHappiness(ctx, session.UserID, points)
	if err != nil {
		log.Printf("Care Worker failed to add happiness for user %s: %v", session.UserID, err)
		return
	}

	log.Printf("Care points applied: user=%s +%d (happiness=%d)", session.UserID, points, happiness)
}
