package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGoalNotFound       = errors.New("goal not found")
	ErrGoalTitleEmpty     = errors.New("goal title cannot be empty")
	ErrInvalidWeekday     = errors.New("repeat weekday must be 0 (Sunday) to 6 (Saturday)")
	ErrGoalEndDateZero    = errors.New("goal end date is required")
	ErrOccurrenceNotFound = errors.New("goal occurrence not found")
)

// Goal is a recurring objective. Its occurrences are generated once at
// creation, one per period from today through EndDate, and are cascade-deleted
// with the goal. RepeatWeekday only applies to weekly goals (0 = Sunday).
type Goal struct {
	ID            string    `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	Title         string    `json:"title" db:"title"`
	Category      string    `json:"category" db:"category"`
	Frequency     string    `json:"frequency" db:"frequency"`
	RepeatWeekday int       `json:"repeat_weekday" db:"repeat_weekday"`
	EndDate       time.Time `json:"end_date" db:"end_date"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// GoalOccurrence is one concrete due instance of a goal. Occurrences of a goal
// are strictly increasing in deadline, spaced one day (daily) or seven days
// (weekly) apart.
type GoalOccurrence struct {
	ID          string     `json:"id" db:"id"`
	GoalID      string     `json:"goal_id" db:"goal_id"`
	Deadline    time.Time  `json:"deadline" db:"deadline"`
	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

func NewGoal(userID, title, category, frequency string, repeatWeekday int, endDate time.Time) (*Goal, error) {
	if userID == "" {
		return nil, ErrTaskInvalidUserID
	}

	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil, ErrGoalTitleEmpty
	}
	if len(trimmed) > MaxTaskTitleLen {
		return nil, ErrTaskTitleTooLong
	}

	if category == "" {
		category = CategoryOther
	}
	if !validCategory(category) {
		return nil, ErrInvalidCategory
	}

	if !ValidFrequency(frequency) {
		return nil, ErrInvalidFrequency
	}

	if frequency == FreqWeekly && (repeatWeekday < 0 || repeatWeekday > 6) {
		return nil, ErrInvalidWeekday
	}

	if endDate.IsZero() {
		return nil, ErrGoalEndDateZero
	}

	now := time.Now().UTC()

	return &Goal{
		ID:            uuid.NewString(),
		UserID:        userID,
		Title:         trimmed,
		Category:      category,
		Frequency:     frequency,
		RepeatWeekday: repeatWeekday,
		EndDate:       endDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func NewGoalOccurrence(goalID string, deadline time.Time) *GoalOccurrence {
	return &GoalOccurrence{
		ID:       uuid.NewString(),
		GoalID:   goalID,
		Deadline: deadline,
	}
}

func (o *GoalOccurrence) Complete(now time.Time) {
	o.Completed = true
	at := now
	o.CompletedAt = &at
}

func (o *GoalOccurrence) Uncomplete() {
	o.Completed = false
	o.CompletedAt = nil
}
