// Package rewards computes the signed XP and coin deltas for task and
// occurrence transitions, plus the care points a timer session earns the pet.
// The arithmetic is deliberately symmetric: completing then un-completing the
// same item nets to zero, and deleting a completed item reverses exactly what
// its completion granted.
package rewards

import "time"

type Transition int

const (
	Complete Transition = iota
	Uncomplete
)

const (
	xpWeeklyGoal = 30
	xpOnTime     = 10
	xpLate       = 5
)

// Item is the reward-relevant slice of a task or occurrence. The caller fills
// it from stored state, never from cached award values, so reversal on delete
// recomputes the same magnitude completion did.
type Item struct {
	IsGoal      bool
	Frequency   string
	DueDate     *time.Time
	CompletedAt *time.Time
}

// Magnitude returns the unsigned XP an item is worth. Precedence: weekly goal,
// then due-date punctuality, then the flat on-time amount (daily goals and
// dateless tasks land here).
func Magnitude(item Item) int {
	if item.IsGoal && item.Frequency == "weekly" {
		return xpWeeklyGoal
	}

	if item.DueDate != nil {
		if item.CompletedAt != nil && calendarAfter(*item.CompletedAt, *item.DueDate) {
			return xpLate
		}
		return xpOnTime
	}

	return xpOnTime
}

// Delta returns the signed XP change for a transition.
func Delta(transition Transition, item Item) int {
	magnitude := Magnitude(item)
	if transition == Uncomplete {
		return -magnitude
	}
	return magnitude
}

// CoinDelta mirrors the XP delta at half magnitude, same sign.
func CoinDelta(transition Transition, item Item) int {
	delta := Delta(transition, item) / 2
	return delta
}

// ClampFloor applies a delta with a floor of zero: max(0, current+delta).
// Going negative clamps, it never underflows.
func ClampFloor(current, delta int) int {
	next := current + delta
	if next < 0 {
		return 0
	}
	return next
}

// ClampRange applies a delta bounded to [0, limit]. Used for happiness.
func ClampRange(current, delta, limit int) int {
	next := ClampFloor(current, delta)
	if next > limit {
		return limit
	}
	return next
}

// Care point rates per category, in points per focused minute.
var careRates = map[string]int{
	"personal": 1,
	"work":     2,
	"study":    2,
	"health":   3,
	"other":    1,
}

// CarePoints converts a session's focused minutes into happiness points for
// the task's category. Unknown categories earn the base rate.
func CarePoints(minutes int, category string) int {
	if minutes <= 0 {
		return 0
	}
	rate, ok := careRates[category]
	if !ok {
		rate = 1
	}
	return minutes * rate
}

// calendarAfter reports whether a falls on a later calendar date than b,
// ignoring time of day. A task finished at 23:50 on its due date is on time.
func calendarAfter(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay > by
	}
	if am != bm {
		return am > bm
	}
	return ad > bd
}
