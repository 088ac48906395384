package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/GigiaaaChen/synapse-tasks/internal/core/domain"
	"github.com/GigiaaaChen/synapse-tasks/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockGoalRepo struct {
	goals       map[string]*domain.Goal
	occurrences map[string]*domain.GoalOccurrence
	mu          sync.Mutex
}

func NewMockGoalRepo() *MockGoalRepo {
	return &MockGoalRepo{
		goals:       make(map[string]*domain.Goal),
		occurrences: make(map[string]*domain.GoalOccurrence),
	}
}

func (m *MockGoalRepo) Create(ctx context.Context, goal *domain.Goal, occurrences []*domain.GoalOccurrence) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *goal
	m.goals[goal.ID] = &clone
	for _, occ := range occurrences {
		occClone := *occ
		m.occurrences[occ.ID] = &occClone
	}
	return nil
}

func (m *MockGoalRepo) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	goal, ok := m.goals[id]
	if !ok {
		return nil, domain.ErrGoalNotFound
	}
	clone := *goal
	return &clone, nil
}

func (m *MockGoalRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []*domain.Goal
	for _, g := range m.goals {
		if g.UserID == userID {
			clone := *g
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *MockGoalRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.goals[id]; !ok {
		return domain.ErrGoalNotFound
	}
	delete(m.goals, id)
	for occID, occ := range m.occurrences {
		if occ.GoalID == id {
			delete(m.occurrences, occID)
		}
	}
	return nil
}

func (m *MockGoalRepo) ListOccurrences(ctx context.Context, goalID string) ([]*domain.GoalOccurrence, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []*domain.GoalOccurrence
	for _, occ := range m.occurrences {
		if occ.GoalID == goalID {
			clone := *occ
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *MockGoalRepo) GetOccurrence(ctx context.Context, id string) (*domain.GoalOccurrence, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	occ, ok := m.occurrences[id]
	if !ok {
		return nil, domain.ErrOccurrenceNotFound
	}
	clone := *occ
	return &clone, nil
}

func (m *MockGoalRepo) MarkOccurrenceCompleted(ctx context.Context, occ *domain.GoalOccurrence) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.occurrences[occ.ID]
	if !ok {
		return false, domain.ErrOccurrenceNotFound
	}
	if stored.Completed {
		return false, nil
	}
	stored.Completed = true
	stored.CompletedAt = occ.CompletedAt
	return true, nil
}

func (m *MockGoalRepo) MarkOccurrenceUncompleted(ctx context.Context, occ *domain.GoalOccurrence) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.occurrences[occ.ID]
	if !ok {
		return false, domain.ErrOccurrenceNotFound
	}
	if !stored.Completed {
		return false, nil
	}
	stored.Completed = false
	stored.CompletedAt = nil
	return true, nil
}

func TestGoalService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Daily goal gets one occurrence per day through the end date", func(t *testing.T) {
		repo := NewMockGoalRepo()
		userRepo := NewMockUserRepo("user-1")
		now := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
		svc := services.NewGoalService(repo, userRepo, fixedClock(now))

		goal, occurrences, err := svc.Create(ctx, services.CreateGoalInput{
			UserID:    "user-1",
			Title:     "Read 20 pages",
			Category:  domain.CategoryStudy,
			Frequency: domain.FreqDaily,
			EndDate:   time.Date(2024, time.January, 6, 0, 0, 0, 0, time.UTC),
		})

		require.NoError(t, err)
		require.Len(t, occurrences, 6)
		assert.Equal(t, domain.FreqDaily, goal.Frequency)
		for i, occ := range occurrences {
			assert.Equal(t, goal.ID, occ.GoalID)
			want := time.Date(2024, time.January, 1+i, 23, 59, 0, 0, time.UTC)
			assert.True(t, occ.Deadline.Equal(want), "occurrence %d deadline %v, want %v", i, occ.Deadline, want)
		}
	})

	t.Run("Weekly goal ending before the first deadline has no occurrences", func(t *testing.T) {
		repo := NewMockGoalRepo()
		userRepo := NewMockUserRepo("user-1")
		// Monday. The Sunday anchor puts the first Wednesday deadline on Jan 17.
		now := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)
		svc := services.NewGoalService(repo, userRepo, fixedClock(now))

		goal, occurrences, err := svc.Create(ctx, services.CreateGoalInput{
			UserID:        "user-1",
			Title:         "Weekly review",
			Category:      domain.CategoryWork,
			Frequency:     domain.FreqWeekly,
			RepeatWeekday: 3,
			EndDate:       time.Date(2024, time.January, 9, 0, 0, 0, 0, time.UTC),
		})

		require.NoError(t, err)
		assert.NotNil(t, goal)
		assert.Empty(t, occurrences)
	})

	t.Run("Invalid frequency is rejected", func(t *testing.T) {
		repo := NewMockGoalRepo()
		userRepo := NewMockUserRepo("user-1")
		svc := services.NewGoalService(repo, userRepo, nil)

		_, _, err := svc.Create(ctx, services.CreateGoalInput{
			UserID:    "user-1",
			Title:     "Sometimes",
			Frequency: "monthly",
			EndDate:   time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		})

		assert.ErrorIs(t, err, domain.ErrInvalidFrequency)
	})
}

func TestGoalService_Occurrences(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

	seed := func(t *testing.T, svc *services.GoalService, frequency string) (*domain.Goal, []*domain.GoalOccurrence) {
		t.Helper()
		endDate := time.Date(2024, time.January, 14, 0, 0, 0, 0, time.UTC)
		goal, occurrences, err := svc.Create(ctx, services.CreateGoalInput{
			UserID:        "user-1",
			Title:         "Exercise",
			Category:      domain.CategoryHealth,
			Frequency:     frequency,
			RepeatWeekday: 0,
			EndDate:       endDate,
		})
		require.NoError(t, err)
		require.NotEmpty(t, occurrences)
		return goal, occurrences
	}

	t.Run("Weekly occurrence grants 30 XP and 15 coins", func(t *testing.T) {
		repo := NewMockGoalRepo()
		userRepo := NewMockUserRepo("user-1")
		svc := services.NewGoalService(repo, userRepo, fixedClock(now))
		_, occurrences := seed(t, svc, domain.FreqWeekly)

		occ, err := svc.CompleteOccurrence(ctx, occurrences[0].ID, "user-1")

		require.NoError(t, err)
		assert.True(t, occ.Completed)
		assert.Equal(t, 30, userRepo.xp("user-1"))
		assert.Equal(t, 15, userRepo.coins("user-1"))
	})

	t.Run("Daily occurrence grants 10 XP", func(t *testing.T) {
		repo := NewMockGoalRepo()
		userRepo := NewMockUserRepo("user-1")
		svc := services.NewGoalService(repo, userRepo, fixedClock(now))
		_, occurrences := seed(t, svc, domain.FreqDaily)

		_, err := svc.CompleteOccurrence(ctx, occurrences[0].ID, "user-1")

		require.NoError(t, err)
		assert.Equal(t, 10, userRepo.xp("user-1"))
	})

	t.Run("Complete then uncomplete nets zero", func(t *testing.T) {
		repo := NewMockGoalRepo()
		userRepo := NewMockUserRepo("user-1")
		svc := services.NewGoalService(repo, userRepo, fixedClock(now))
		_, occurrences := seed(t, svc, domain.FreqWeekly)

		_, err := svc.CompleteOccurrence(ctx, occurrences[0].ID, "user-1")
		require.NoError(t, err)
		_, err = svc.UncompleteOccurrence(ctx, occurrences[0].ID, "user-1")
		require.NoError(t, err)

		assert.Equal(t, 0, userRepo.xp("user-1"))
		assert.Equal(t, 0, userRepo.coins("user-1"))
	})

	t.Run("Completing twice awards once", func(t *testing.T) {
		repo := NewMockGoalRepo()
		userRepo := NewMockUserRepo("user-1")
		svc := services.NewGoalService(repo, userRepo, fixedClock(now))
		_, occurrences := seed(t, svc, domain.FreqWeekly)

		_, err := svc.CompleteOccurrence(ctx, occurrences[0].ID, "user-1")
		require.NoError(t, err)
		_, err = svc.CompleteOccurrence(ctx, occurrences[0].ID, "user-1")
		require.NoError(t, err)

		assert.Equal(t, 30, userRepo.xp("user-1"))
	})

	t.Run("Another user's occurrence is not found", func(t *testing.T) {
		repo := NewMockGoalRepo()
		userRepo := NewMockUserRepo("user-1", "user-2")
		svc := services.NewGoalService(repo, userRepo, fixedClock(now))
		_, occurrences := seed(t, svc, domain.FreqDaily)

		_, err := svc.CompleteOccurrence(ctx, occurrences[0].ID, "user-2")

		assert.ErrorIs(t, err, domain.ErrOccurrenceNotFound)
	})
}

func TestGoalService_Delete(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

	t.Run("Delete reverses XP from a completed weekly occurrence", func(t *testing.T) {
		repo := NewMockGoalRepo()
		userRepo := NewMockUserRepo("user-1")
		svc := services.NewGoalService(repo, userRepo, fixedClock(now))

		goal, occurrences, err := svc.Create(ctx, services.CreateGoalInput{
			UserID:        "user-1",
			Title:         "Weekly review",
			Category:      domain.CategoryWork,
			Frequency:     domain.FreqWeekly,
			RepeatWeekday: 0,
			EndDate:       time.Date(2024, time.January, 14, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		require.NotEmpty(t, occurrences)

		_, err = svc.CompleteOccurrence(ctx, occurrences[0].ID, "user-1")
		require.NoError(t, err)
		require.Equal(t, 30, userRepo.xp("user-1"))
		require.Equal(t, 15, userRepo.coins("user-1"))

		require.NoError(t, svc.Delete(ctx, goal.ID, "user-1"))

		assert.Equal(t, 0, userRepo.xp("user-1"))
		assert.Equal(t, 0, userRepo.coins("user-1"))
		_, err = svc.GetByID(ctx, goal.ID, "user-1")
		assert.ErrorIs(t, err, domain.ErrGoalNotFound)

		left, err := repo.ListOccurrences(ctx, goal.ID)
		require.NoError(t, err)
		assert.Empty(t, left)
	})

	t.Run("Incomplete occurrences contribute nothing to the reversal", func(t *testing.T) {
		repo := NewMockGoalRepo()
		userRepo := NewMockUserRepo("user-1")
		svc := services.NewGoalService(repo, userRepo, fixedClock(now))

		goal, occurrences, err := svc.Create(ctx, services.CreateGoalInput{
			UserID:    "user-1",
			Title:     "Meditate",
			Category:  domain.CategoryHealth,
			Frequency: domain.FreqDaily,
			EndDate:   time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		require.Len(t, occurrences, 3)

		_, err = svc.CompleteOccurrence(ctx, occurrences[0].ID, "user-1")
		require.NoError(t, err)
		_, err = svc.CompleteOccurrence(ctx, occurrences[1].ID, "user-1")
		require.NoError(t, err)
		require.Equal(t, 20, userRepo.xp("user-1"))

		require.NoError(t, svc.Delete(ctx, goal.ID, "user-1"))

		assert.Equal(t, 0, userRepo.xp("user-1"))
		assert.Equal(t, 0, userRepo.coins("user-1"))
	})

	t.Run("Delete with nothing completed leaves the counters alone", func(t *testing.T) {
		repo := NewMockGoalRepo()
		userRepo := NewMockUserRepo("user-1")
		svc := services.NewGoalService(repo, userRepo, fixedClock(now))

		goal, _, err := svc.Create(ctx, services.CreateGoalInput{
			UserID:    "user-1",
			Title:     "Stretch",
			Frequency: domain.FreqDaily,
			EndDate:   time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, goal.ID, "user-1"))

		assert.Equal(t, 0, userRepo.xp("user-1"))
		assert.Equal(t, 0, userRepo.coins("user-1"))
	})

	t.Run("Delete rejects a non-owner", func(t *testing.T) {
		repo := NewMockGoalRepo()
		userRepo := NewMockUserRepo("user-1", "user-2")
		svc := services.NewGoalService(repo, userRepo, fixedClock(now))

		goal, _, err := svc.Create(ctx, services.CreateGoalInput{
			UserID:    "user-1",
			Title:     "Private goal",
			Frequency: domain.FreqDaily,
			EndDate:   time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		err = svc.Delete(ctx, goal.ID, "user-2")
		assert.ErrorIs(t, err, domain.ErrGoalNotFound)
	})
}
