package domain

import (
	"context"
	"time"
)

type ReminderRepository interface {
	// TryLog attempts to record the dedup key. It returns true when the key
	// was newly inserted and false when a log for the same (user, item,
	// period type, period start) already exists. A lost race is a normal
	// outcome, never an error.
	TryLog(ctx context.Context, log *ReminderLog) (bool, error)

	// Exists reports whether a reminder was already logged for the key.
	// Read-only; used by the preview path.
	Exists(ctx context.Context, userID, itemID, periodType string, periodStart time.Time) (bool, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *TimerSession) error

	ListByTaskID(ctx context.Context, taskID string) ([]*TimerSession, error)
}
