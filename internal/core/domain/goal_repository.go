package domain

import (
	"context"
)

type GoalRepository interface {
	// Create persists the goal and its pre-generated occurrences as one
	// logical batch. Either everything is stored or nothing is.
	Create(ctx context.Context, goal *Goal, occurrences []*GoalOccurrence) error

	GetByID(ctx context.Context, id string) (*Goal, error)

	ListByUserID(ctx context.Context, userID string) ([]*Goal, error)

	// Delete removes the goal; its occurrences go with it.
	Delete(ctx context.Context, id string) error

	// ListOccurrences returns the goal's occurrences in ascending deadline
	// order.
	ListOccurrences(ctx context.Context, goalID string) ([]*GoalOccurrence, error)

	GetOccurrence(ctx context.Context, id string) (*GoalOccurrence, error)

	// MarkOccurrenceCompleted stores the transition only if the occurrence is
	// currently incomplete. False means a concurrent request won.
	MarkOccurrenceCompleted(ctx context.Context, occ *GoalOccurrence) (bool, error)

	// MarkOccurrenceUncompleted reverses a completion, only if currently
	// completed.
	MarkOccurrenceUncompleted(ctx context.Context, occ *GoalOccurrence) (bool, error)
}
