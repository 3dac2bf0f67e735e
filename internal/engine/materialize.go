package engine

import (
	"github.com/coinkeep/backend/internal/models"
	"github.com/coinkeep/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionDraft is a transaction to be appended by the caller. The
// engine never writes transactions itself.
type TransactionDraft struct {
	Title           string
	Note            string
	Amount          decimal.Decimal
	Date            types.Date
	Direction       types.Direction
	CategoryID      *uuid.UUID
	RecurringRuleID uuid.UUID
}

// Transaction converts the draft into a persistable transaction.
func (d TransactionDraft) Transaction() models.Transaction {
	ruleID := d.RecurringRuleID

	return models.Transaction{
		Title:           d.Title,
		Note:            d.Note,
		Amount:          d.Amount,
		Date:            d.Date.Time(),
		Direction:       d.Direction,
		CategoryID:      d.CategoryID,
		RecurringRuleID: &ruleID,
	}
}

// RuleDelta is the new scheduling state of a rule after materialization.
type RuleDelta struct {
	RuleID  uuid.UUID
	NextDue *types.Date // nil when the rule is exhausted
	Active  bool
}

// MaterializeDue turns every due occurrence of the active rules into a
// transaction draft.
//
// A rule whose NextDue is today or earlier emits one draft per missed
// occurrence, each dated exactly at that occurrence. After every emission
// the rule advances by one frequency unit from the occurrence just
// materialized, never from today: advancing from now would corrupt the
// cadence after a missed run. When the advanced date passes the rule's end
// date the rule is deactivated and its NextDue cleared.
//
// When nothing is due, both return values are empty, so a repeated call
// performs no writes.
func MaterializeDue(rules []models.RecurringRule, cfg Config) ([]TransactionDraft, []RuleDelta) {
	today := cfg.Today()

	var drafts []TransactionDraft
	var deltas []RuleDelta

	for _, rule := range rules {
		if !rule.Active || rule.NextDue == nil {
			continue
		}

		next := *rule.NextDue
		changed := false
		active := true

		for i := 0; i < advanceCaps[rule.Frequency]; i++ {
			if next.After(today) {
				break
			}

			drafts = append(drafts, TransactionDraft{
				Title:           rule.Title,
				Note:            rule.Note,
				Amount:          models.SanitizeAmount(rule.Amount),
				Date:            next,
				Direction:       rule.Direction,
				CategoryID:      rule.CategoryID,
				RecurringRuleID: rule.ID,
			})
			changed = true

			next = advanceOnce(next, rule.Frequency, cfg.WeekStart)
			if rule.EndDate != nil && next.After(*rule.EndDate) {
				active = false
				break
			}
		}

		if !changed {
			continue
		}

		delta := RuleDelta{RuleID: rule.ID, Active: active}
		if active {
			nextDue := next
			delta.NextDue = &nextDue
		}
		deltas = append(deltas, delta)
	}

	return drafts, deltas
}
