package types

import "time"

// weekOffset returns the number of days from the start of the week
// containing d until d, for a week beginning on weekStart.
func weekOffset(d Date, weekStart time.Weekday) int {
	return (int(d.Weekday()) - int(weekStart) + 7) % 7
}

// StartOfWeek returns the first day of the week containing d, for a week
// beginning on weekStart. Applying it twice yields the same day.
func StartOfWeek(d Date, weekStart time.Weekday) Date {
	return d.AddDays(-weekOffset(d, weekStart))
}

// AddWeeks advances d by n weeks while preserving its offset from the
// configured start of week. As long as weekStart stays the same this is
// equivalent to adding 7n days; when the configured week start changes
// between calls, the day keeps its position within the week instead of
// drifting.
func AddWeeks(d Date, n int, weekStart time.Weekday) Date {
	offset := weekOffset(d, weekStart)
	return StartOfWeek(d, weekStart).AddDays(7*n + offset)
}
