package engine

import (
	"github.com/coinkeep/backend/internal/models"
	"github.com/coinkeep/backend/internal/types"
	"github.com/shopspring/decimal"
)

// WarningStatus is the warning band of a budget, derived from its usage
// against the configured thresholds.
type WarningStatus string

const (
	StatusNormal   WarningStatus = "normal"
	StatusCaution  WarningStatus = "caution"
	StatusWarning  WarningStatus = "warning"
	StatusCritical WarningStatus = "critical"
	StatusExceeded WarningStatus = "exceeded"
)

// RolloverDelta is the state a budget transitions to when its period has
// expired.
type RolloverDelta struct {
	NewAmount      decimal.Decimal
	NewPeriodStart types.Date
}

// BudgetEvaluation is the computed state of a budget for its current
// period.
type BudgetEvaluation struct {
	Spent  decimal.Decimal
	Ratio  float64 // Usage ratio capped at 1
	Status WarningStatus
	// Rollover is set when the period containing now no longer is the
	// budget's stored period. It carries the new period start and, with
	// rollover enabled, the raised target amount.
	Rollover *RolloverDelta
}

// PeriodEnd returns the exclusive end of the budget's current period.
func PeriodEnd(budget models.Budget) types.Date {
	return budget.PeriodKind.Next(budget.PeriodStart)
}

// SpentAmount sums the sanitized expense amounts that fall into the
// budget's current period, restricted to the budget's category when one is
// set. Income never reduces the spent amount.
func SpentAmount(budget models.Budget, transactions []models.Transaction) decimal.Decimal {
	end := PeriodEnd(budget)
	spent := decimal.Zero

	for _, t := range transactions {
		if t.Direction != types.DirectionExpense {
			continue
		}

		day := t.Day()
		if day.Before(budget.PeriodStart) || !day.Before(end) {
			continue
		}

		if budget.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *budget.CategoryID) {
			continue
		}

		spent = spent.Add(models.SanitizeAmount(t.Amount))
	}

	return spent
}

// UsageRatio returns spent/target capped at 1. A target of zero or less
// yields 0 rather than dividing by zero.
func UsageRatio(spent, target decimal.Decimal) float64 {
	if !target.IsPositive() {
		return 0
	}

	ratio, _ := spent.Div(target).Float64()
	if ratio > 1 {
		return 1
	}

	return ratio
}

// usagePercent is the uncapped usage in percent, used for classification
// and threshold decisions.
func usagePercent(spent, target decimal.Decimal) float64 {
	if !target.IsPositive() {
		return 0
	}

	percent, _ := spent.Div(target).Mul(decimal.NewFromInt(100)).Float64()
	return percent
}

// classifyUsage maps a usage percentage onto the warning bands defined by
// the ascending thresholds. Usage at exactly 100% is critical; only usage
// beyond 100% counts as exceeded.
func classifyUsage(percent float64, thresholds models.ThresholdList) WarningStatus {
	if len(thresholds) == 0 {
		thresholds = models.DefaultThresholds
	}

	switch {
	case percent > 100:
		return StatusExceeded
	case percent >= thresholds[len(thresholds)-1]:
		return StatusCritical
	case percent < thresholds[0]:
		return StatusNormal
	case len(thresholds) >= 2 && percent < thresholds[1]:
		return StatusCaution
	default:
		return StatusWarning
	}
}

// EvaluateBudgetPeriod computes the spend, usage and warning band of a
// budget, and the rollover transition when its period has expired.
//
// Spend is always aggregated over the stored period bounds, also during a
// rollover: the unspent balance of the period that just ended is what
// carries forward. The new period start jumps directly to the period
// containing now, so a single evaluation catches up over any number of
// unused periods, applying at most one rollover step.
func EvaluateBudgetPeriod(budget models.Budget, transactions []models.Transaction, cfg Config) BudgetEvaluation {
	spent := SpentAmount(budget, transactions)
	target := models.SanitizeAmount(budget.Amount)

	evaluation := BudgetEvaluation{
		Spent:  spent,
		Ratio:  UsageRatio(spent, target),
		Status: classifyUsage(usagePercent(spent, target), budget.Thresholds),
	}

	if cfg.Today().Before(PeriodEnd(budget)) {
		return evaluation
	}

	newAmount := target
	if budget.RolloverEnabled {
		unspent := target.Sub(spent)
		if unspent.IsPositive() {
			newAmount = target.Add(unspent)
		}
	}

	evaluation.Rollover = &RolloverDelta{
		NewAmount:      newAmount,
		NewPeriodStart: types.PeriodStart(budget.PeriodKind, cfg.Now()),
	}

	return evaluation
}
