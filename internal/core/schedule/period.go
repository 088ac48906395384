// Package schedule holds the calendar math behind goal occurrences, reminder
// windows and summaries. All functions are pure over an explicit reference
// instant; the calendar in use is that instant's location.
//
// Two week conventions coexist on purpose. ISOWeekBounds anchors weeks on
// Monday and drives reminder/summary windows; NextOccurrenceDeadline anchors
// weekly goals on Sunday. The two disagree by design and must not be unified.
package schedule

import "time"

// Clock supplies the current instant. Injected so period logic is testable
// without the wall clock.
type Clock func() time.Time

const endOfDay = 24*time.Hour - time.Millisecond

// DayBounds returns the inclusive bounds of the calendar day containing now:
// 00:00:00.000 and 23:59:59.999.
func DayBounds(now time.Time) (time.Time, time.Time) {
	start := Midnight(now)
	return start, start.Add(endOfDay)
}

// ISOWeekBounds returns Monday 00:00:00.000 and Sunday 23:59:59.999 of the
// week containing now. Weekday() numbers Sunday as 0, so the Monday offset is
// (weekday+6)%7; plain weekday-1 would put a Sunday six days into the future.
func ISOWeekBounds(now time.Time) (time.Time, time.Time) {
	offset := (int(now.Weekday()) + 6) % 7
	start := Midnight(now).AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6).Add(endOfDay)
}

// NextOccurrenceDeadline computes the deadline a goal occurrence gets for the
// period containing cursor. Daily goals are due the same calendar day at
// 23:59:00. Weekly goals anchor on the next Sunday at or after cursor, then
// shift by repeatWeekday days (0 = Sunday). Note the Sunday anchor here is
// distinct from ISOWeekBounds' Monday anchor.
func NextOccurrenceDeadline(cursor time.Time, frequency string, repeatWeekday int) time.Time {
	if frequency == "weekly" {
		daysToSunday := (7 - int(cursor.Weekday())) % 7
		cursor = cursor.AddDate(0, 0, daysToSunday+repeatWeekday)
	}
	return atDeadlineTime(cursor)
}

// Midnight truncates now to 00:00:00.000 of its calendar day, keeping the
// location.
func Midnight(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

func atDeadlineTime(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 23, 59, 0, 0, day.Location())
}
