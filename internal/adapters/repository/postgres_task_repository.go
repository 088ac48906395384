package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/GigiaaaChen/synapse-tasks/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresTaskRepository struct {
	db *sqlx.DB
}

func NewPostgresTaskRepository(db *sqlx.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

func (r *PostgresTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (
			id, user_id, title, category, due_date,
			progress, completed, completed_at,
			is_goal, frequency, awarded_xp, awarded_coin,
			created_at, updated_at
		) VALUES (
			:id, :user_id, :title, :category, :due_date,
			:progress, :completed, :completed_at,
			:is_goal, :frequency, :awarded_xp, :awarded_coin,
			:created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

func (r *PostgresTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	query := `SELECT * FROM tasks WHERE id = $1`

	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return &task, nil
}

func (r *PostgresTaskRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Task, error) {
	tasks := []*domain.Task{}
	query := `
		SELECT * FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &tasks, query, userID); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return tasks, nil
}

func (r *PostgresTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	query := `
		UPDATE tasks SET
			title = :title, category = :category, due_date = :due_date,
			progress = :progress, completed = :completed, completed_at = :completed_at,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, task)
	if err != nil {
		return fmt.Errorf("update query failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// MarkCompleted writes the transition only if the row is still incomplete.
// The WHERE guard is what keeps a concurrent double-complete from awarding
// twice.
func (r *PostgresTaskRepository) MarkCompleted(ctx context.Context, task *domain.Task) (bool, error) {
	query := `
		UPDATE tasks SET
			progress = 100, completed = TRUE, completed_at = $1,
			awarded_xp = $2, awarded_coin = $3, updated_at = NOW()
		WHERE id = $4 AND completed = FALSE`

	result, err := r.db.ExecContext(ctx, query,
		task.CompletedAt, task.AwardedXP, task.AwardedCoin, task.ID,
	)
	if err != nil {
		return false, fmt.Errorf("complete query failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *PostgresTaskRepository) MarkUncompleted(ctx context.Context, task *domain.Task) (bool, error) {
	query := `
		UPDATE tasks SET
			progress = 0, completed = FALSE, completed_at = NULL,
			awarded_xp = 0, awarded_coin = 0, updated_at = NOW()
		WHERE id = $1 AND completed = TRUE`

	result, err := r.db.ExecContext(ctx, query, task.ID)
	if err != nil {
		return false, fmt.Errorf("uncomplete query failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// Delete returns the row as it was removed. Reversal arithmetic runs off this
// snapshot, so a completion that raced the delete is still reversed correctly.
func (r *PostgresTaskRepository) Delete(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	query := `DELETE FROM tasks WHERE id = $1 RETURNING *`

	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("delete query failed: %w", err)
	}
	return &task, nil
}

func (r *PostgresTaskRepository) ListActiveGoalTasks(ctx context.Context, userID, frequency string) ([]*domain.Task, error) {
	tasks := []*domain.Task{}
	query := `
		SELECT * FROM tasks
		WHERE user_id = $1
		  AND is_goal = TRUE
		  AND frequency = $2
		  AND progress < 100
		ORDER BY created_at ASC`

	if err := r.db.SelectContext(ctx, &tasks, query, userID, frequency); err != nil {
		return nil, fmt.Errorf("goal task query error: %w", err)
	}
	return tasks, nil
}

func (r *PostgresTaskRepository) ListCompletedInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Task, error) {
	tasks := []*domain.Task{}
	query := `
		SELECT * FROM tasks
		WHERE user_id = $1
		  AND completed = TRUE
		  AND completed_at >= $2
		  AND completed_at <= $3
		ORDER BY completed_at ASC`

	if err := r.db.SelectContext(ctx, &tasks, query, userID, from, to); err != nil {
		return nil, fmt.Errorf("completed range query error: %w", err)
	}
	return tasks, nil
}
