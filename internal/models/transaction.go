package models

import (
	"strings"
	"time"

	"github.com/coinkeep/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction represents a single movement of money.
//
// CategoryID is a weak reference: it may point to a deleted category, in
// which case the transaction counts as uncategorized. RecurringRuleID links
// transactions that were materialized from a recurring rule; deleting the
// rule does not retract them.
type Transaction struct {
	DefaultModel
	Title           string
	Note            string
	Amount          decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Date            time.Time
	Direction       types.Direction
	CategoryID      *uuid.UUID
	RecurringRuleID *uuid.UUID
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
func (t *Transaction) AfterFind(_ *gorm.DB) (err error) {
	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave normalizes the transaction. The date is stored in UTC and
// negative amounts are clamped to zero, matching what every aggregation
// assumes about persisted rows.
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	t.Title = strings.TrimSpace(t.Title)
	t.Note = strings.TrimSpace(t.Note)

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	t.Amount = SanitizeAmount(t.Amount)

	return nil
}

// AfterSave validates the stored row, including the merged result of a
// partial update. An error rolls the write back.
func (t *Transaction) AfterSave(_ *gorm.DB) error {
	if !t.Direction.Valid() {
		return ErrDirectionInvalid
	}

	if t.Amount.IsNegative() {
		return ErrAmountNotPositive
	}

	return nil
}

// Day returns the calendar day the transaction occurred on.
func (t Transaction) Day() types.Date {
	return types.DateOf(t.Date)
}
