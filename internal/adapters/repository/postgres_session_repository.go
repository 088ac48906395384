package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/GigiaaaChen/synapse-tasks/internal/core/domain"
)

type PostgresSessionRepository struct {
	db *sqlx.DB
}

func NewPostgresSessionRepository(db *sqlx.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

func (r *PostgresSessionRepository) Create(ctx context.Context, session *domain.TimerSession) error {
	query := `
		INSERT INTO timer_sessions (id, user_id, task_id, started_at, ended_at, duration_sec, created_at)
		VALUES (:id, :user_id, :task_id, :started_at, :ended_at, :duration_sec, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (r *PostgresSessionRepository) ListByTaskID(ctx context.Context, taskID string) ([]*domain.TimerSession, error) {
	sessions := []*domain.TimerSession{}
	query := `
		SELECT * FROM timer_sessions
		WHERE task_id = $1
		ORDER BY started_at DESC`

	if err := r.db.SelectContext(ctx, &sessions, query, taskID); err != nil {
		return nil, fmt.Errorf("session query error: %w", err)
	}
	return sessions, nil
}
