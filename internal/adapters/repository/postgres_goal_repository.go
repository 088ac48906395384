package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/GigiaaaChen/synapse-tasks/internal/core/domain"
)

type PostgresGoalRepository struct {
	db *sqlx.DB
}

func NewPostgresGoalRepository(db *sqlx.DB) *PostgresGoalRepository {
	return &PostgresGoalRepository{db: db}
}

// Create inserts the goal and its whole occurrence batch in one transaction.
// A failing occurrence insert rolls everything back; the error names the
// deadline that failed.
func (r *PostgresGoalRepository) Create(ctx context.Context, goal *domain.Goal, occurrences []*domain.GoalOccurrence) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	goalQuery := `
		INSERT INTO goals (
			id, user_id, title, category, frequency, repeat_weekday,
			end_date, created_at, updated_at
		) VALUES (
			:id, :user_id, :title, :category, :frequency, :repeat_weekday,
			:end_date, :created_at, :updated_at
		)`

	if _, err := tx.NamedExecContext(ctx, goalQuery, goal); err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}

	occQuery := `
		INSERT INTO goal_occurrences (id, goal_id, deadline, completed, completed_at)
		VALUES (:id, :goal_id, :deadline, :completed, :completed_at)`

	for _, occ := range occurrences {
		if _, err := tx.NamedExecContext(ctx, occQuery, occ); err != nil {
			return fmt.Errorf("failed to insert occurrence for %s: %w",
				occ.Deadline.Format("2006-01-02"), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit goal batch: %w", err)
	}
	return nil
}

func (r *PostgresGoalRepository) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	var goal domain.Goal
	query := `SELECT * FROM goals WHERE id = $1`

	if err := r.db.GetContext(ctx, &goal, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return &goal, nil
}

func (r *PostgresGoalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	goals := []*domain.Goal{}
	query := `
		SELECT * FROM goals
		WHERE user_id = $1
		ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &goals, query, userID); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return goals, nil
}

// Delete removes the goal and its occurrences. Done explicitly in one
// transaction rather than relying on an FK cascade being configured.
func (r *PostgresGoalRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM goal_occurrences WHERE goal_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete occurrences: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrGoalNotFound
	}

	return tx.Commit()
}

func (r *PostgresGoalRepository) ListOccurrences(ctx context.Context, goalID string) ([]*domain.GoalOccurrence, error) {
	occurrences := []*domain.GoalOccurrence{}
	query := `
		SELECT * FROM goal_occurrences
		WHERE goal_id = $1
		ORDER BY deadline ASC`

	if err := r.db.SelectContext(ctx, &occurrences, query, goalID); err != nil {
		return nil, fmt.Errorf("occurrence query error: %w", err)
	}
	return occurrences, nil
}

func (r *PostgresGoalRepository) GetOccurrence(ctx context.Context, id string) (*domain.GoalOccurrence, error) {
	var occ domain.GoalOccurrence
	query := `SELECT * FROM goal_occurrences WHERE id = $1`

	if err := r.db.GetContext(ctx, &occ, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOccurrenceNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return &occ, nil
}

func (r *PostgresGoalRepository) MarkOccurrenceCompleted(ctx context.Context, occ *domain.GoalOccurrence) (bool, error) {
	query := `
		UPDATE goal_occurrences
		SET completed = TRUE, completed_at = $1
		WHERE id = $2 AND completed = FALSE`

	result, err := r.db.ExecContext(ctx, query, occ.CompletedAt, occ.ID)
	if err != nil {
		return false, fmt.Errorf("occurrence complete failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *PostgresGoalRepository) MarkOccurrenceUncompleted(ctx context.Context, occ *domain.GoalOccurrence) (bool, error) {
	query := `
		UPDATE goal_occurrences
		SET completed = FALSE, completed_at = NULL
		WHERE id = $1 AND completed = TRUE`

	result, err := r.db.ExecContext(ctx, query, occ.ID)
	if err != nil {
		return false, fmt.Errorf("occurrence uncomplete failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
