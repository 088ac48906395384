package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTaskTitleEmpty     = errors.New("task title cannot be empty")
	ErrTaskTitleTooLong   = errors.New("task title is too long (max 100 chars)")
	ErrTaskInvalidUserID  = errors.New("invalid user id")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidProgress    = errors.New("progress must be between 0 and 100")
	ErrInvalidFrequency   = errors.New("invalid frequency (must be daily or weekly)")
	ErrGoalTaskHasDueDate = errors.New("a goal task cannot have a due date")
	ErrGoalTaskNeedsFreq  = errors.New("a goal task requires a frequency")
	ErrTaskNotFound       = errors.New("task not found")
	ErrUnauthorized       = errors.New("unauthorized")
)

const (
	FreqDaily  = "daily"
	FreqWeekly = "weekly"

	CategoryPersonal = "personal"
	CategoryWork     = "work"
	CategoryStudy    = "study"
	CategoryHealth   = "health"
	CategoryOther    = "other"

	MaxTaskTitleLen = 100
	FullProgress    = 100
)

// Task is a single to-do item. A goal-flagged task recurs with Frequency and
// carries no due date; progress and the completed flag are kept coupled:
// progress == 100 exactly when Completed is true.
type Task struct {
	ID          string     `json:"id" db:"id"`
	UserID      string     `json:"user_id" db:"user_id"`
	Title       string     `json:"title" db:"title"`
	Category    string     `json:"category" db:"category"`
	DueDate     *time.Time `json:"due_date,omitempty" db:"due_date"`
	Progress    int        `json:"progress" db:"progress"`
	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	IsGoal      bool       `json:"is_goal" db:"is_goal"`
	Frequency   string     `json:"frequency,omitempty" db:"frequency"`
	AwardedXP   int        `json:"awarded_xp" db:"awarded_xp"`
	AwardedCoin int        `json:"awarded_coin" db:"awarded_coin"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

func validCategory(c string) bool {
	switch c {
	case CategoryPersonal, CategoryWork, CategoryStudy, CategoryHealth, CategoryOther:
		return true
	}
	return false
}

func ValidFrequency(f string) bool {
	return f == FreqDaily || f == FreqWeekly
}

func NewTask(userID, title, category string, dueDate *time.Time, isGoal bool, frequency string) (*Task, error) {
	if userID == "" {
		return nil, ErrTaskInvalidUserID
	}

	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil, ErrTaskTitleEmpty
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

	if isGoal {
		if dueDate != nil {
			return nil, ErrGoalTaskHasDueDate
		}
		if !ValidFrequency(frequency) {
			return nil, ErrGoalTaskNeedsFreq
		}
	} else if frequency != "" {
		return nil, ErrInvalidFrequency
	}

	now := time.Now().UTC()

	return &Task{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     trimmed,
		Category:  category,
		DueDate:   dueDate,
		IsGoal:    isGoal,
		Frequency: frequency,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetProgress moves the progress bar and keeps the completed flag in sync.
// Reaching 100 is a completion, dropping below 100 undoes it.
func (t *Task) SetProgress(progress int, now time.Time) error {
	if progress < 0 || progress > FullProgress {
		return ErrInvalidProgress
	}

	t.Progress = progress
	if progress == FullProgress {
		t.Completed = true
		if t.CompletedAt == nil {
			at := now
			t.CompletedAt = &at
		}
	} else {
		t.Completed = false
		t.CompletedAt = nil
	}
	t.UpdatedAt = now.UTC()
	return nil
}

func (t *Task) Complete(now time.Time) {
	t.Progress = FullProgress
	t.Completed = true
	at := now
	t.CompletedAt = &at
	t.UpdatedAt = now.UTC()
}

func (t *Task) Uncomplete(now time.Time) {
	t.Progress = 0
	t.Completed = false
	t.CompletedAt = nil
	t.AwardedXP = 0
	t.AwardedCoin = 0
	t.UpdatedAt = now.UTC()
}

func (t *Task) Rename(title string, now time.Time) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ErrTaskTitleEmpty
	}
	if len(trimmed) > MaxTaskTitleLen {
		return ErrTaskTitleTooLong
	}
	t.Title = trimmed
	t.UpdatedAt = now.UTC()
	return nil
}
