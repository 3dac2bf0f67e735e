package models_test

import (
	"time"

	"github.com/coinkeep/backend/internal/models"
	"github.com/coinkeep/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestTransactionInvalidDirection() {
	transaction := models.Transaction{
		Title:     "Broken",
		Amount:    decimal.NewFromFloat(10),
		Direction: "sideways",
	}

	err := models.DB.Create(&transaction).Error
	suite.Assert().ErrorIs(err, models.ErrDirectionInvalid)
}

func (suite *TestSuiteStandard) TestTransactionDateUTC() {
	berlin, err := time.LoadLocation("Europe/Berlin")
	suite.Require().NoError(err)

	transaction := suite.createTestTransaction(models.Transaction{
		Title:     "Coffee",
		Amount:    decimal.NewFromFloat(3.5),
		Date:      time.Date(2026, 2, 10, 15, 4, 0, 0, berlin),
		Direction: types.DirectionExpense,
	})

	var reloaded models.Transaction
	suite.Require().NoError(models.DB.First(&reloaded, transaction.ID).Error)

	suite.Assert().Equal(time.UTC, reloaded.Date.Location())
	suite.Assert().Equal(types.NewDate(2026, 2, 10), reloaded.Day())
}

func (suite *TestSuiteStandard) TestTransactionDateDefaultsToNow() {
	transaction := suite.createTestTransaction(models.Transaction{
		Title:     "Undated",
		Amount:    decimal.NewFromFloat(1),
		Direction: types.DirectionIncome,
	})

	suite.Assert().False(transaction.Date.IsZero())
	suite.Assert().WithinDuration(time.Now().In(time.UTC), transaction.Date, time.Minute)
}

func (suite *TestSuiteStandard) TestTransactionNegativeAmountSanitized() {
	transaction := suite.createTestTransaction(models.Transaction{
		Title:     "Corrupted import",
		Amount:    decimal.NewFromFloat(-13.37),
		Direction: types.DirectionExpense,
	})

	suite.Assert().True(transaction.Amount.IsZero(), "amount is %s, should be 0", transaction.Amount)
}

func (suite *TestSuiteStandard) TestTransactionAfterFind() {
	transaction := models.Transaction{
		Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.FixedZone("", 3600)),
	}

	err := transaction.AfterFind(&gorm.DB{})
	suite.Require().NoError(err)
	suite.Assert().Equal(time.UTC, transaction.Date.Location())
}
