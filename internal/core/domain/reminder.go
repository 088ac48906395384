package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidPeriodType = errors.New("invalid period type (must be daily or weekly)")
)

const (
	PeriodDaily  = "daily"
	PeriodWeekly = "weekly"
)

func ValidPeriodType(p string) bool {
	return p == PeriodDaily || p == PeriodWeekly
}

// ReminderLog is the dedup record for a delivered reminder. The store enforces
// uniqueness on (user, item, period type, period start); at most one reminder
// per item per period can ever be recorded.
type ReminderLog struct {
	UserID      string    `json:"user_id" db:"user_id"`
	ItemID      string    `json:"item_id" db:"item_id"`
	PeriodType  string    `json:"period_type" db:"period_type"`
	PeriodStart time.Time `json:"period_start" db:"period_start"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ReminderNotice is what the notification layer receives. Text wording is
// presentation, not contract.
type ReminderNotice struct {
	ItemID   string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Progress int    `json:"progress"`
	Target   int    `json:"target"`
	Text     string `json:"text"`
}
