package engine

import (
	"github.com/coinkeep/backend/internal/models"
	"github.com/coinkeep/backend/internal/types"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
)

// goalFulfilledTitlePattern matches the title of the transaction the app
// creates when a goal is paid out. The pairing of this title with an
// uncategorized income transaction is the stable marker for out-of-band
// completion.
const goalFulfilledTitlePattern = "Goal achieved:*"

// GoalEvaluation is the computed state of a savings goal.
type GoalEvaluation struct {
	CurrentAmount decimal.Decimal
	Completed     bool
	// NewlyCompleted is true exactly once: on the evaluation that flips
	// Completed from false to true.
	NewlyCompleted bool
	// DaysRemaining until the target date; negative means overdue. An
	// overdue goal is only flagged, never closed.
	DaysRemaining int
}

// NetSavings aggregates the sanitized income minus the sanitized expenses
// since the goal's start date, floored at zero. Without a start date the
// whole transaction history counts.
func NetSavings(goal models.SavingsGoal, transactions []models.Transaction) decimal.Decimal {
	income := decimal.Zero
	expense := decimal.Zero

	for _, t := range transactions {
		if goal.StartDate != nil && t.Day().Before(*goal.StartDate) {
			continue
		}

		amount := models.SanitizeAmount(t.Amount)
		if t.Direction == types.DirectionIncome {
			income = income.Add(amount)
		} else {
			expense = expense.Add(amount)
		}
	}

	net := income.Sub(expense)
	if net.IsNegative() {
		return decimal.Zero
	}

	return net
}

// hasFulfillmentTransaction reports whether a "goal achieved" transaction
// for this goal already exists. Such a transaction is created out of band
// when a goal is paid out; once present, the goal must never reopen even
// when the aggregated savings drop below the target again.
func hasFulfillmentTransaction(goal models.SavingsGoal, transactions []models.Transaction) bool {
	for _, t := range transactions {
		if t.Direction == types.DirectionIncome &&
			t.CategoryID == nil &&
			glob.Glob(goalFulfilledTitlePattern, t.Title) &&
			glob.Glob("*"+goal.Title, t.Title) {
			return true
		}
	}

	return false
}

// EvaluateGoal computes the current amount, completion state and days
// remaining of a savings goal.
//
// Completion is monotonic: a goal that is completed stays completed, no
// matter what the aggregation returns afterwards.
func EvaluateGoal(goal models.SavingsGoal, transactions []models.Transaction, cfg Config) GoalEvaluation {
	current := NetSavings(goal, transactions)

	completed := goal.Completed
	if !completed {
		completed = current.GreaterThanOrEqual(goal.Amount) && goal.Amount.IsPositive()

		if !completed {
			completed = hasFulfillmentTransaction(goal, transactions)
		}
	}

	return GoalEvaluation{
		CurrentAmount:  current,
		Completed:      completed,
		NewlyCompleted: completed && !goal.Completed,
		DaysRemaining:  cfg.Today().DaysUntil(goal.TargetDate),
	}
}
