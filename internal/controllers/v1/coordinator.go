package v1

import (
	"github.com/coinkeep/backend/internal/engine"
	"github.com/coinkeep/backend/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// engineConfig builds the engine configuration from the persisted
// instance settings.
func engineConfig(db *gorm.DB) (engine.Config, error) {
	settings, err := models.LoadSettings(db)
	if err != nil {
		return engine.Config{}, err
	}

	return engine.NewConfig(settings.WeekStartDay), nil
}

// loadState reads the full engine input in one pass.
func loadState(db *gorm.DB) (engine.State, error) {
	var state engine.State

	if err := db.Find(&state.Budgets).Error; err != nil {
		return state, err
	}

	if err := db.Find(&state.Goals).Error; err != nil {
		return state, err
	}

	if err := db.Find(&state.Transactions).Error; err != nil {
		return state, err
	}

	return state, nil
}

// recompute runs the engine pipeline after a mutation and persists the
// derived state it returns: goal caches and completion flags, budget
// rollovers, and the recurring rule schedule. All mutations go through
// the HTTP handlers, which run one at a time per database, so the
// read-compute-write cycle is not raced.
func recompute(db *gorm.DB) ([]engine.NotificationDecision, error) {
	cfg, err := engineConfig(db)
	if err != nil {
		return nil, err
	}

	state, err := loadState(db)
	if err != nil {
		return nil, err
	}

	result := engine.Run(state, cfg)

	goalByID := make(map[uuid.UUID]*models.SavingsGoal, len(state.Goals))
	for i := range state.Goals {
		goalByID[state.Goals[i].ID] = &state.Goals[i]
	}

	budgetByID := make(map[uuid.UUID]*models.Budget, len(state.Budgets))
	for i := range state.Budgets {
		budgetByID[state.Budgets[i].ID] = &state.Budgets[i]
	}

	for _, update := range result.Goals {
		columns := map[string]interface{}{
			"current_amount": update.Evaluation.CurrentAmount,
		}

		// Completion is monotonic, it is only ever written when it
		// flips to true.
		if update.Evaluation.NewlyCompleted {
			columns["completed"] = true
		}

		if err := db.Model(goalByID[update.GoalID]).Updates(columns).Error; err != nil {
			return nil, err
		}
	}

	for _, update := range result.Budgets {
		rollover := update.Evaluation.Rollover
		if rollover == nil {
			continue
		}

		log.Info().
			Str("budget-id", update.BudgetID.String()).
			Str("new-period-start", rollover.NewPeriodStart.String()).
			Msg("budget period rolled over")

		err := db.Model(budgetByID[update.BudgetID]).Updates(map[string]interface{}{
			"amount":       rollover.NewAmount,
			"period_start": rollover.NewPeriodStart,
		}).Error
		if err != nil {
			return nil, err
		}
	}

	return result.Decisions, nil
}
