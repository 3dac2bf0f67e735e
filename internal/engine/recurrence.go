package engine

import (
	"time"

	"github.com/coinkeep/backend/internal/models"
	"github.com/coinkeep/backend/internal/types"
)

// advanceCaps bounds the catch-up loop per frequency to roughly 100 years
// of occurrences. Malformed data that would advance further resolves to
// "no further occurrence" instead of looping forever.
var advanceCaps = map[types.Frequency]int{
	types.FrequencyDaily:   36500,
	types.FrequencyWeekly:  5200,
	types.FrequencyMonthly: 1200,
	types.FrequencyYearly:  100,
}

// advanceOnce moves a due date forward by one frequency unit. Weekly
// advancement goes through the week-aware calendar arithmetic so that a
// change of the configured week start does not shift already scheduled
// occurrences inconsistently.
func advanceOnce(d types.Date, frequency types.Frequency, weekStart time.Weekday) types.Date {
	switch frequency {
	case types.FrequencyDaily:
		return d.AddDays(1)
	case types.FrequencyWeekly:
		return types.AddWeeks(d, 1, weekStart)
	case types.FrequencyYearly:
		return d.AddDate(1, 0, 0)
	default:
		return d.AddDate(0, 1, 0)
	}
}

// cycleStart returns the first day of the frequency unit containing today.
// The resolver catches a rule up into the current unit, not past it: an
// occurrence earlier in the current unit is still due and is left for the
// materializer to emit.
func cycleStart(frequency types.Frequency, today types.Date, weekStart time.Weekday) types.Date {
	switch frequency {
	case types.FrequencyDaily:
		return today
	case types.FrequencyWeekly:
		return types.StartOfWeek(today, weekStart)
	case types.FrequencyMonthly:
		return types.PeriodStart(types.PeriodMonthly, today.Time())
	default:
		return types.PeriodStart(types.PeriodYearly, today.Time())
	}
}

// ResolveNextDue computes the next due occurrence of a rule.
//
// The current due date (or the anchor start date, if the rule has never
// been scheduled) is advanced one frequency unit at a time until it
// reaches the unit containing today. A due date that is already in the
// current unit or later is returned unchanged, so resolving twice with the
// same today yields the same result.
//
// The second return value is false when the rule has no further
// occurrence: the next candidate would pass the end date, or the catch-up
// loop would exceed its iteration cap.
func ResolveNextDue(rule models.RecurringRule, cfg Config) (types.Date, bool) {
	next := rule.StartDate
	if rule.NextDue != nil {
		next = *rule.NextDue
	}

	if rule.EndDate != nil && next.After(*rule.EndDate) {
		return types.Date{}, false
	}

	target := cycleStart(rule.Frequency, cfg.Today(), cfg.WeekStart)
	if !next.Before(target) {
		return next, true
	}

	for i := 0; i < advanceCaps[rule.Frequency]; i++ {
		next = advanceOnce(next, rule.Frequency, cfg.WeekStart)

		if rule.EndDate != nil && next.After(*rule.EndDate) {
			return types.Date{}, false
		}

		if !next.Before(target) {
			return next, true
		}
	}

	return types.Date{}, false
}
