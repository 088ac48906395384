package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/GigiaaaChen/synapse-tasks/internal/core/domain"
)

type PostgresReminderRepository struct {
	db *sqlx.DB
}

func NewPostgresReminderRepository(db *sqlx.DB) *PostgresReminderRepository {
	return &PostgresReminderRepository{db: db}
}

// TryLog inserts the dedup key. The reminder_logs table carries a unique
// constraint on (user_id, item_id, period_type, period_start); losing the
// insert race to a concurrent dispatch is reported as false, not an error.
func (r *PostgresReminderRepository) TryLog(ctx context.Context, log *domain.ReminderLog) (bool, error) {
	query := `
		INSERT INTO reminder_logs (user_id, item_id, period_type, period_start, created_at)
		VALUES (:user_id, :item_id, :period_type, :period_start, :created_at)
		ON CONFLICT (user_id, item_id, period_type, period_start) DO NOTHING`

	result, err := r.db.NamedExecContext(ctx, query, log)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return false, nil
		}
		return false, fmt.Errorf("reminder log insert failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *PostgresReminderRepository) Exists(ctx context.Context, userID, itemID, periodType string, periodStart time.Time) (bool, error) {
	var count int
	query := `
		SELECT count(*) FROM reminder_logs
		WHERE user_id = $1 AND item_id = $2 AND period_type = $3 AND period_start = $4`

	if err := r.db.GetContext(ctx, &count, query, userID, itemID, periodType, periodStart); err != nil {
		return false, fmt.Errorf("reminder log lookup failed: %w", err)
	}
	return count > 0, nil
}
