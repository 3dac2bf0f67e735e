// Package engine implements the temporal rule engine shared by recurring
// transactions, budget periods and savings goals.
//
// Every operation is a pure, bounded function of its inputs: the engine
// reads state, computes, and returns the full set of writes and decisions
// for the caller to persist. It never touches the database or performs I/O
// itself. Callers must serialize mutations through a single coordinator;
// the engine components each own their derived fields (rule NextDue, budget
// PeriodStart/Amount, goal CurrentAmount/Completed) exclusively.
package engine

import (
	"time"

	"github.com/coinkeep/backend/internal/types"
)

// Config carries the ambient inputs of every engine call explicitly:
// the configured first day of the week and the clock. Engine functions
// never read global state.
type Config struct {
	WeekStart time.Weekday
	Now       func() time.Time
}

// NewConfig returns a Config using the given week start and the system
// clock.
func NewConfig(weekStart time.Weekday) Config {
	return Config{
		WeekStart: weekStart,
		Now:       time.Now,
	}
}

// Today returns the current calendar day.
func (c Config) Today() types.Date {
	return types.DateOf(c.Now())
}
