package models_test

import (
	"strings"
	"testing"

	"github.com/coinkeep/backend/internal/models"
	"github.com/coinkeep/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestRecurringRuleValidation() {
	endBeforeStart := types.NewDate(2025, 12, 31)

	tests := []struct {
		name string
		rule models.RecurringRule
		err  error
	}{
		{
			"invalid direction",
			models.RecurringRule{
				Direction: "sideways",
				Frequency: types.FrequencyMonthly,
				Amount:    decimal.NewFromFloat(10),
				StartDate: types.NewDate(2026, 1, 1),
			},
			models.ErrDirectionInvalid,
		},
		{
			"invalid frequency",
			models.RecurringRule{
				Direction: types.DirectionExpense,
				Frequency: "fortnightly",
				Amount:    decimal.NewFromFloat(10),
				StartDate: types.NewDate(2026, 1, 1),
			},
			models.ErrFrequencyInvalid,
		},
		{
			"end date before start date",
			models.RecurringRule{
				Direction: types.DirectionExpense,
				Frequency: types.FrequencyMonthly,
				Amount:    decimal.NewFromFloat(10),
				StartDate: types.NewDate(2026, 1, 1),
				EndDate:   &endBeforeStart,
			},
			models.ErrEndDateBeforeStart,
		},
		{
			"amount not positive",
			models.RecurringRule{
				Direction: types.DirectionExpense,
				Frequency: types.FrequencyMonthly,
				Amount:    decimal.Zero,
				StartDate: types.NewDate(2026, 1, 1),
			},
			models.ErrAmountNotPositive,
		},
		{
			"valid",
			models.RecurringRule{
				Direction: types.DirectionExpense,
				Frequency: types.FrequencyMonthly,
				Amount:    decimal.NewFromFloat(850),
				StartDate: types.NewDate(2026, 1, 1),
			},
			nil,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.DB.Create(&tt.rule).Error

			if tt.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestRecurringRuleTrimWhitespace() {
	title := "  Rent \t"
	note := " Transferred on the first    "

	rule := suite.createTestRecurringRule(models.RecurringRule{
		Title:     title,
		Note:      note,
		Direction: types.DirectionExpense,
		Frequency: types.FrequencyMonthly,
		Amount:    decimal.NewFromFloat(850),
		StartDate: types.NewDate(2026, 1, 1),
		Active:    true,
	})

	suite.Assert().Equal(strings.TrimSpace(title), rule.Title)
	suite.Assert().Equal(strings.TrimSpace(note), rule.Note)
}
