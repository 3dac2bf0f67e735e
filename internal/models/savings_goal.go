package models

import (
	"strings"

	"github.com/coinkeep/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SavingsGoal tracks saving towards a target amount by a target date.
//
// CurrentAmount is fully derived from transactions and only persisted as a
// cache; the goal engine recomputes it after every mutation. Completed is
// monotonic: the engine never resets it to false.
type SavingsGoal struct {
	DefaultModel
	Title         string
	Note          string
	Amount        decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // The target for the goal
	CurrentAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Cache of the derived net savings
	StartDate     *types.Date     // Aggregation starts here; nil means all time
	TargetDate    types.Date
	Completed     bool
	Icon          string // Opaque display hint, not interpreted by the backend
	Color         string // Opaque display hint, not interpreted by the backend
}

func (g *SavingsGoal) BeforeSave(_ *gorm.DB) error {
	g.Title = strings.TrimSpace(g.Title)
	g.Note = strings.TrimSpace(g.Note)

	return nil
}

// AfterSave validates the stored row, including the merged result of a
// partial update. An error rolls the write back.
func (g *SavingsGoal) AfterSave(_ *gorm.DB) error {
	if !g.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if g.StartDate != nil && g.TargetDate.Before(*g.StartDate) {
		return ErrTargetDateBeforeStart
	}

	return nil
}
