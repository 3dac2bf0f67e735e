package engine

import (
	"fmt"
	"strconv"

	"github.com/coinkeep/backend/internal/models"
	"github.com/coinkeep/backend/internal/types"
)

// NotificationKind describes what a notification decision is about.
type NotificationKind string

const (
	NotificationBudgetThreshold NotificationKind = "budget-threshold"
	NotificationGoalCompleted   NotificationKind = "goal-completed"
	NotificationGoalReminder    NotificationKind = "goal-reminder"
	NotificationGoalExpired     NotificationKind = "goal-expired"
)

// goalLeadBuckets are the lead times, in days before the target date, at
// which a goal reminder is due.
var goalLeadBuckets = []int{7, 3, 1}

// NotificationDecision is the engine's instruction to the external
// notifier. The ID is stable across recomputations: delivering each ID at
// most once is what prevents duplicates, not any one-shot flag in the
// engine.
type NotificationDecision struct {
	ID      string            `json:"id"`
	Kind    NotificationKind  `json:"kind"`
	Payload map[string]string `json:"payload"`
}

// budgetDecisionID keys a threshold crossing. The period start is part of
// the key so that every period gets its own set of crossings.
func budgetDecisionID(budget models.Budget, threshold float64) string {
	return fmt.Sprintf("budget/%s/%s/%s", budget.ID, budget.PeriodStart, strconv.FormatFloat(threshold, 'f', -1, 64))
}

// goalDecisionID keys a goal decision. The target date is part of the key
// for reminder and expiry buckets: extending a goal re-keys them, so stale
// decisions are never re-emitted.
func goalDecisionID(goal models.SavingsGoal, targetDate types.Date, bucket string) string {
	return fmt.Sprintf("goal/%s/%s/%s", goal.ID, targetDate, bucket)
}

// BudgetDecisions returns one decision per crossed threshold of the
// budget's current period. Recomputing after every transaction change is
// safe: the IDs of already delivered crossings do not change within a
// period.
func BudgetDecisions(budget models.Budget, transactions []models.Transaction, cfg Config) []NotificationDecision {
	if !budget.Active {
		return nil
	}

	spent := SpentAmount(budget, transactions)
	percent := usagePercent(spent, models.SanitizeAmount(budget.Amount))

	var decisions []NotificationDecision
	for _, threshold := range budget.Thresholds {
		if percent < threshold {
			break
		}

		decisions = append(decisions, NotificationDecision{
			ID:   budgetDecisionID(budget, threshold),
			Kind: NotificationBudgetThreshold,
			Payload: map[string]string{
				"budgetId":  budget.ID.String(),
				"name":      budget.Name,
				"threshold": strconv.FormatFloat(threshold, 'f', -1, 64),
				"spent":     spent.String(),
			},
		})
	}

	return decisions
}

// GoalDecisions returns the completion, reminder and expiry decisions for
// a goal.
//
// A reminder bucket is only scheduled while its window is still open, that
// is while at least that many days remain. A bucket whose window has
// passed without the goal being extended is skipped for good.
func GoalDecisions(goal models.SavingsGoal, evaluation GoalEvaluation, cfg Config) []NotificationDecision {
	var decisions []NotificationDecision

	if evaluation.NewlyCompleted {
		decisions = append(decisions, NotificationDecision{
			ID:   fmt.Sprintf("goal/%s/completed", goal.ID),
			Kind: NotificationGoalCompleted,
			Payload: map[string]string{
				"goalId": goal.ID.String(),
				"title":  goal.Title,
			},
		})
	}

	if evaluation.Completed {
		return decisions
	}

	for _, bucket := range goalLeadBuckets {
		if evaluation.DaysRemaining < bucket {
			continue
		}

		decisions = append(decisions, NotificationDecision{
			ID:   goalDecisionID(goal, goal.TargetDate, leadBucketName(bucket)),
			Kind: NotificationGoalReminder,
			Payload: map[string]string{
				"goalId":   goal.ID.String(),
				"title":    goal.Title,
				"daysLeft": strconv.Itoa(bucket),
			},
		})
	}

	if evaluation.DaysRemaining <= 0 {
		decisions = append(decisions, NotificationDecision{
			ID:   goalDecisionID(goal, goal.TargetDate, "expired"),
			Kind: NotificationGoalExpired,
			Payload: map[string]string{
				"goalId": goal.ID.String(),
				"title":  goal.Title,
			},
		})
	}

	return decisions
}

// StaleGoalDecisionIDs returns every decision ID that was keyed under a
// goal's previous target date. When a goal is extended, the caller must
// cancel these with the external notifier before recomputing: the old keys
// are stale and must never be delivered.
func StaleGoalDecisionIDs(goal models.SavingsGoal, previousTargetDate types.Date) []string {
	ids := make([]string, 0, len(goalLeadBuckets)+1)
	for _, bucket := range goalLeadBuckets {
		ids = append(ids, goalDecisionID(goal, previousTargetDate, leadBucketName(bucket)))
	}

	return append(ids, goalDecisionID(goal, previousTargetDate, "expired"))
}

func leadBucketName(bucket int) string {
	return fmt.Sprintf("lead-%d", bucket)
}
