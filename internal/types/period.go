package types

import "time"

// PeriodKind is the accounting window of a budget.
type PeriodKind string

const (
	PeriodMonthly   PeriodKind = "monthly"
	PeriodQuarterly PeriodKind = "quarterly"
	PeriodYearly    PeriodKind = "yearly"
)

// Valid reports whether the period kind is one of the supported values.
func (k PeriodKind) Valid() bool {
	return k == PeriodMonthly || k == PeriodQuarterly || k == PeriodYearly
}

// PeriodStart returns the first day of the period containing the time
// instant. Quarters begin in January, April, July and October.
func PeriodStart(kind PeriodKind, t time.Time) Date {
	year, month, _ := t.Date()

	switch kind {
	case PeriodQuarterly:
		quarterMonth := month - (month-1)%3
		return NewDate(year, quarterMonth, 1)
	case PeriodYearly:
		return NewDate(year, time.January, 1)
	default:
		return NewDate(year, month, 1)
	}
}

// Next returns the start of the period directly after the one beginning at
// start.
func (k PeriodKind) Next(start Date) Date {
	switch k {
	case PeriodQuarterly:
		return start.AddDate(0, 3, 0)
	case PeriodYearly:
		return start.AddDate(1, 0, 0)
	default:
		return start.AddDate(0, 1, 0)
	}
}
