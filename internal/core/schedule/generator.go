package schedule

import "time"

// Generate produces the ordered deadlines a goal needs, one per period,
// starting from the day containing now and stopping once a deadline would
// pass 23:59:00 of endDate. An end date earlier than the first deadline
// yields an empty sequence; that is a valid goal with no occurrences.
func Generate(frequency string, repeatWeekday int, endDate, now time.Time) []time.Time {
	step := 0
	switch frequency {
	case "daily":
		step = 1
	case "weekly":
		step = 7
	default:
		return nil
	}

	cutoff := atDeadlineTime(time.Date(
		endDate.Year(), endDate.Month(), endDate.Day(),
		0, 0, 0, 0, now.Location(),
	))

	var deadlines []time.Time
	cursor := Midnight(now)

	for {
		deadline := NextOccurrenceDeadline(cursor, frequency, repeatWeekday)
		if deadline.After(cutoff) {
			return deadlines
		}
		deadlines = append(deadlines, deadline)
		cursor = cursor.AddDate(0, 0, step)
	}
}
