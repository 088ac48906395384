package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/GigiaaaChen/synapse-tasks/internal/core/domain"
)

type PostgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		INSERT INTO users (id, email, password_hash, xp, coins, happiness, created_at, updated_at)
		VALUES ($1, $2, $3, 0, 0, 0, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("repository: create user failed: %w", err)
	}

	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE id = $1`

	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("repository: get user failed: %w", err)
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE email = $1`

	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("repository: get user by email failed: %w", err)
	}
	return &user, nil
}

// AddXP applies the delta and the zero floor in one statement, so concurrent
// requests serialize on the row and never observe a half-applied counter.
func (r *PostgresUserRepository) AddXP(ctx context.Context, userID string, delta int) (int, error) {
	return r.addCounter(ctx, userID, delta,
		`UPDATE users SET xp = GREATEST(0, xp + $1), updated_at = NOW()
		 WHERE id = $2 RETURNING xp`)
}

func (r *PostgresUserRepository) AddCoins(ctx context.Context, userID string, delta int) (int, error) {
	return r.addCounter(ctx, userID, delta,
		`UPDATE users SET coins = GREATEST(0, coins + $1), updated_at = NOW()
		 WHERE id = $2 RETURNING coins`)
}

func (r *PostgresUserRepository) AddHappiness(ctx context.Context, userID string, delta int) (int, error) {
	return r.addCounter(ctx, userID, delta,
		`UPDATE users SET happiness = LEAST(100, GREATEST(0, happiness + $1)), updated_at = NOW()
		 WHERE id = $2 RETURNING happiness`)
}

func (r *PostgresUserRepository) addCounter(ctx context.Context, userID string, delta int, query string) (int, error) {
	var value int
	err := r.db.QueryRowContext(ctx, query, delta, userID).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("repository: counter update failed: %w", err)
	}
	return value, nil
}
