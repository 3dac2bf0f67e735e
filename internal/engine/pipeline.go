package engine

import (
	"github.com/coinkeep/backend/internal/models"
	"github.com/google/uuid"
)

// State is the full input of a recomputation run. The coordinator loads it
// in one read before calling Run.
type State struct {
	Budgets      []models.Budget
	Goals        []models.SavingsGoal
	Transactions []models.Transaction
}

// BudgetUpdate pairs a budget with its evaluation.
type BudgetUpdate struct {
	BudgetID   uuid.UUID
	Evaluation BudgetEvaluation
}

// GoalUpdate pairs a goal with its evaluation.
type GoalUpdate struct {
	GoalID     uuid.UUID
	Evaluation GoalEvaluation
}

// Result is the complete output of a recomputation run. The caller
// persists the updates and hands the decisions to the external notifier;
// the engine itself has written nothing.
type Result struct {
	Budgets   []BudgetUpdate
	Goals     []GoalUpdate
	Decisions []NotificationDecision
}

// Run recomputes all derived state after a mutation, in a fixed order:
// goals first, then budgets, then notification decisions. It replaces the
// implicit recompute fan-out of a publish/subscribe design with one
// explicit, ordered pass.
func Run(state State, cfg Config) Result {
	var result Result

	for _, goal := range state.Goals {
		evaluation := EvaluateGoal(goal, state.Transactions, cfg)
		result.Goals = append(result.Goals, GoalUpdate{GoalID: goal.ID, Evaluation: evaluation})
		result.Decisions = append(result.Decisions, GoalDecisions(goal, evaluation, cfg)...)
	}

	for _, budget := range state.Budgets {
		if !budget.Active {
			continue
		}

		evaluation := EvaluateBudgetPeriod(budget, state.Transactions, cfg)
		result.Budgets = append(result.Budgets, BudgetUpdate{BudgetID: budget.ID, Evaluation: evaluation})
		result.Decisions = append(result.Decisions, BudgetDecisions(budget, state.Transactions, cfg)...)
	}

	return result
}
