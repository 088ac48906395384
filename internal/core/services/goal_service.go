package services

import (
	"context"
	"time"

	"github.com/GigiaaaChen/synapse-tasks/internal/core/domain"
	"github.com/GigiaaaChen/synapse-tasks/internal/core/rewards"
	"github.com/GigiaaaChen/synapse-tasks/internal/core/schedule"
)

// GoalService owns recurring goals and their occurrence sets. Occurrences are
// computed once at creation and stored as a single batch; no later writer
// touches the set except the cascade on delete.
type GoalService struct {
	repo     domain.GoalRepository
	userRepo domain.UserRepository
	clock    schedule.Clock
}

func NewGoalService(repo domain.GoalRepository, userRepo domain.UserRepository, clock schedule.Clock) *GoalService {
	if clock == nil {
		clock = time.Now
	}
	return &GoalService{
		repo:     repo,
		userRepo: userRepo,
		clock:    clock,
	}
}

type CreateGoalInput struct {
	UserID        string
	Title         string
	Category      string
	Frequency     string
	RepeatWeekday int
	EndDate       time.Time
}

func (s *GoalService) Create(ctx context.Context, input CreateGoalInput) (*domain.Goal, []*domain.GoalOccurrence, error) {
	goal, err := domain.NewGoal(input.UserID, input.Title, input.Category, input.Frequency, input.RepeatWeekday, input.EndDate)
	if err != nil {
		return nil, nil, err
	}

	deadlines := schedule.Generate(goal.Frequency, goal.RepeatWeekday, goal.EndDate, s.clock())

	occurrences := make([]*domain.GoalOccurrence, 0, len(deadlines))
	for _, deadline := range deadlines {
		occurrences = append(occurrences, domain.NewGoalOccurrence(goal.ID, deadline))
	}

	if err := s.repo.Create(ctx, goal, occurrences); err != nil {
		return nil, nil, err
	}

	return goal, occurrences, nil
}

func (s *GoalService) GetByID(ctx context.Context, id, userID string) (*domain.Goal, error) {
	goal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, domain.ErrGoalNotFound
	}
	return goal, nil
}

func (s *GoalService) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *GoalService) ListOccurrences(ctx context.Context, goalID, userID string) ([]*domain.GoalOccurrence, error) {
	if _, err := s.GetByID(ctx, goalID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListOccurrences(ctx, goalID)
}

// Delete removes the goal and its occurrences, reversing the award of every
// completed occurrence. The counters end up as if those occurrences had never
// been checked off, same discipline as deleting a completed task.
func (s *GoalService) Delete(ctx context.Context, id, userID string) error {
	goal, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	occurrences, err := s.repo.ListOccurrences(ctx, id)
	if err != nil {
		return err
	}

	completed := 0
	for _, occ := range occurrences {
		if occ.Completed {
			completed++
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if completed == 0 {
		return nil
	}

	item := goalItem(goal)
	if _, err := s.userRepo.AddXP(ctx, userID, completed*rewards.Delta(rewards.Uncomplete, item)); err != nil {
		return err
	}
	if _, err := s.userRepo.AddCoins(ctx, userID, completed*rewards.CoinDelta(rewards.Uncomplete, item)); err != nil {
		return err
	}
	return nil
}

// CompleteOccurrence checks off one occurrence and grants goal XP (30 weekly,
// 10 daily). Losing the transition race awards nothing.
func (s *GoalService) CompleteOccurrence(ctx context.Context, occurrenceID, userID string) (*domain.GoalOccurrence, error) {
	occ, goal, err := s.getOwnedOccurrence(ctx, occurrenceID, userID)
	if err != nil {
		return nil, err
	}

	if occ.Completed {
		return occ, nil
	}

	occ.Complete(s.clock())

	applied, err := s.repo.MarkOccurrenceCompleted(ctx, occ)
	if err != nil {
		return nil, err
	}
	if !applied {
		return s.repo.GetOccurrence(ctx, occurrenceID)
	}

	item := goalItem(goal)
	if _, err := s.userRepo.AddXP(ctx, userID, rewards.Delta(rewards.Complete, item)); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.AddCoins(ctx, userID, rewards.CoinDelta(rewards.Complete, item)); err != nil {
		return nil, err
	}

	return occ, nil
}

// UncompleteOccurrence reverses a checked-off occurrence and its XP.
func (s *GoalService) UncompleteOccurrence(ctx context.Context, occurrenceID, userID string) (*domain.GoalOccurrence, error) {
	occ, goal, err := s.getOwnedOccurrence(ctx, occurrenceID, userID)
	if err != nil {
		return nil, err
	}

	if !occ.Completed {
		return occ, nil
	}

	occ.Uncomplete()

	applied, err := s.repo.MarkOccurrenceUncompleted(ctx, occ)
	if err != nil {
		return nil, err
	}
	if !applied {
		return s.repo.GetOccurrence(ctx, occurrenceID)
	}

	item := goalItem(goal)
	if _, err := s.userRepo.AddXP(ctx, userID, rewards.Delta(rewards.Uncomplete, item)); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.AddCoins(ctx, userID, rewards.CoinDelta(rewards.Uncomplete, item)); err != nil {
		return nil, err
	}

	return occ, nil
}

func (s *GoalService) getOwnedOccurrence(ctx context.Context, occurrenceID, userID string) (*domain.GoalOccurrence, *domain.Goal, error) {
	occ, err := s.repo.GetOccurrence(ctx, occurrenceID)
	if err != nil {
		return nil, nil, err
	}

	goal, err := s.repo.GetByID(ctx, occ.GoalID)
	if err != nil {
		return nil, nil, err
	}
	if goal.UserID != userID {
		return nil, nil, domain.ErrOccurrenceNotFound
	}

	return occ, goal, nil
}

func goalItem(goal *domain.Goal) rewards.Item {
	return rewards.Item{
		IsGoal:    true,
		Frequency: goal.Frequency,
	}
}
