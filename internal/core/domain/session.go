package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound    = errors.New("timer session not found")
	ErrInvalidSessionSpan = errors.New("session end must be after its start")
)

// TimerSession records focused time spent on a task. Sessions feed the pet's
// happiness counter (care points) only; they never touch XP.
type TimerSession struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	TaskID      string    `json:"task_id" db:"task_id"`
	StartedAt   time.Time `json:"started_at" db:"started_at"`
	EndedAt     time.Time `json:"ended_at" db:"ended_at"`
	DurationSec int       `json:"duration_sec" db:"duration_sec"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

func NewTimerSession(userID, taskID string, startedAt, endedAt time.Time) (*TimerSession, error) {
	if userID == "" {
		return nil, ErrTaskInvalidUserID
	}
	if !endedAt.After(startedAt) {
		return nil, ErrInvalidSessionSpan
	}

	return &TimerSession{
		ID:          uuid.NewString(),
		UserID:      userID,
		TaskID:      taskID,
		StartedAt:   startedAt.UTC(),
		EndedAt:     endedAt.UTC(),
		DurationSec: int(endedAt.Sub(startedAt).Seconds()),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func (s *TimerSession) Minutes() int {
	return s.DurationSec / 60
}
