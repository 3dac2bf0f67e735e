package models

import (
	"strings"

	"github.com/coinkeep/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurringRule is a template for transactions that recur with a fixed
// frequency.
//
// NextDue and Active are owned by the recurrence engine: NextDue is nil
// once the rule is exhausted, and an exhausted rule is deactivated, never
// deleted. Only an explicit user action deletes a rule.
type RecurringRule struct {
	DefaultModel
	Title      string
	Note       string
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Direction  types.Direction
	CategoryID *uuid.UUID
	Frequency  types.Frequency
	StartDate  types.Date
	EndDate    *types.Date
	NextDue    *types.Date
	Active     bool
}

func (r *RecurringRule) BeforeSave(_ *gorm.DB) error {
	r.Title = strings.TrimSpace(r.Title)
	r.Note = strings.TrimSpace(r.Note)

	return nil
}

// AfterSave validates the stored row, including the merged result of a
// partial update. An error rolls the write back.
func (r *RecurringRule) AfterSave(_ *gorm.DB) error {
	if !r.Direction.Valid() {
		return ErrDirectionInvalid
	}

	if !r.Frequency.Valid() {
		return ErrFrequencyInvalid
	}

	if r.EndDate != nil && r.EndDate.Before(r.StartDate) {
		return ErrEndDateBeforeStart
	}

	if !r.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}
