package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrAmountNotPositive      = errors.New("amounts must be larger than zero")
	ErrDirectionInvalid       = errors.New("the flow direction must be income or expense")
	ErrFrequencyInvalid       = errors.New("the frequency must be one of daily, weekly, monthly or yearly")
	ErrPeriodKindInvalid      = errors.New("the period must be one of monthly, quarterly or yearly")
	ErrThresholdsEmpty        = errors.New("a budget needs at least one warning threshold")
	ErrThresholdsNotAscending = errors.New("warning thresholds must be sorted in ascending order")
	ErrEndDateBeforeStart     = errors.New("the end date must not be before the start date")
	ErrTargetDateBeforeStart  = errors.New("the target date must not be before the start date")
	ErrWeekStartInvalid       = errors.New("the week start day must be a weekday between Sunday (0) and Saturday (6)")
	ErrCategoryNameNotUnique  = errors.New("the category name is already in use")
)
