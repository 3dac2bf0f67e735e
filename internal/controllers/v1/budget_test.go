package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/coinkeep/backend/internal/controllers/v1"
	"github.com/coinkeep/backend/internal/engine"
	"github.com/coinkeep/backend/internal/models"
	"github.com/coinkeep/backend/internal/test"
	"github.com/coinkeep/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestBudget(t *testing.T, body string) v1.BudgetResponse {
	r := test.Request(t, http.MethodPost, "/v1/budgets", body)
	test.AssertHTTPStatus(t, http.StatusCreated, &r)

	var response v1.BudgetResponse
	test.DecodeResponse(t, &r, &response)

	return response
}

func (suite *TestSuiteStandard) TestBudgetCreate() {
	response := createTestBudget(suite.T(), `{"name": "Groceries", "amount": 350, "periodKind": "monthly"}`)

	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), "Groceries", response.Data.Name)
	assert.Equal(suite.T(), types.PeriodMonthly, response.Data.PeriodKind)
	assert.Equal(suite.T(), models.DefaultThresholds, response.Data.Thresholds)

	// An unset period start is anchored to the period containing today
	assert.False(suite.T(), response.Data.PeriodStart.IsZero())
}

func (suite *TestSuiteStandard) TestBudgetCreateInvalid() {
	tests := []struct {
		name string
		body string
	}{
		{"invalid period kind", `{"name": "Broken", "amount": 100, "periodKind": "biweekly"}`},
		{"unsorted thresholds", `{"name": "Broken", "amount": 100, "periodKind": "monthly", "thresholds": [90, 80]}`},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "/v1/budgets", tt.body)
			test.AssertHTTPStatus(t, http.StatusBadRequest, &r)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetEvaluation() {
	budget := createTestBudget(suite.T(), `{"name": "Groceries", "amount": 350, "periodKind": "monthly"}`)

	// Spend within the current period
	_ = createTestTransaction(suite.T(), `{"title": "Weekly groceries", "amount": 100, "direction": "expense"}`)

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/budgets/%s/evaluation", budget.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.BudgetEvaluationResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	assert.True(suite.T(), response.Data.Spent.Equal(decimal.NewFromFloat(100)), "spent is %s", response.Data.Spent)
	assert.InDelta(suite.T(), 100.0/350.0, response.Data.Ratio, 0.001)
	assert.Equal(suite.T(), engine.StatusNormal, response.Data.Status)
	assert.Nil(suite.T(), response.Data.Rollover)
}

func (suite *TestSuiteStandard) TestBudgetEvaluationCategoryScoped() {
	category := createTestCategory(suite.T(), `{"name": "Groceries"}`)
	budget := createTestBudget(suite.T(), fmt.Sprintf(`{"name": "Groceries", "amount": 350, "periodKind": "monthly", "categoryId": "%s"}`, category.Data.ID))

	// One transaction in the category, one outside of it
	_ = createTestTransaction(suite.T(), fmt.Sprintf(`{"title": "Weekly groceries", "amount": 100, "direction": "expense", "categoryId": "%s"}`, category.Data.ID))
	_ = createTestTransaction(suite.T(), `{"title": "Cinema", "amount": 30, "direction": "expense"}`)

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/budgets/%s/evaluation", budget.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.BudgetEvaluationResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.Data.Spent.Equal(decimal.NewFromFloat(100)), "spent is %s", response.Data.Spent)
}

func (suite *TestSuiteStandard) TestBudgetUpdate() {
	created := createTestBudget(suite.T(), `{"name": "Groceries", "amount": 350, "periodKind": "monthly"}`)

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/budgets/%s", created.Data.ID), `{"name": "Food", "amount": 400, "periodKind": "monthly"}`)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Food", response.Data.Name)

	// The stored period start survives a patch that does not set one
	assert.Equal(suite.T(), created.Data.PeriodStart, response.Data.PeriodStart)
}

// TestBudgetUpdatePartial verifies that a patch only touches the fields
// set in the body and leaves every other stored value as it is.
func (suite *TestSuiteStandard) TestBudgetUpdatePartial() {
	created := createTestBudget(suite.T(), `{"name": "Groceries", "amount": 350, "periodKind": "monthly", "rolloverEnabled": true}`)

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/budgets/%s", created.Data.ID), `{"note": "Cap for the fridge"}`)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Groceries", response.Data.Name)
	assert.Equal(suite.T(), "Cap for the fridge", response.Data.Note)
	assert.Equal(suite.T(), types.PeriodMonthly, response.Data.PeriodKind)
	assert.Equal(suite.T(), created.Data.PeriodStart, response.Data.PeriodStart)
	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromFloat(350)), "amount is %s", response.Data.Amount)

	// The period start stays in the current period, so a recompute after
	// the patch must not roll the budget over.
	r = test.Request(suite.T(), http.MethodGet, "/v1/notifications", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/budgets/%s", created.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromFloat(350)), "amount is %s", response.Data.Amount)
	assert.Equal(suite.T(), created.Data.PeriodStart, response.Data.PeriodStart)
}

func (suite *TestSuiteStandard) TestBudgetUpdateInvalid() {
	created := createTestBudget(suite.T(), `{"name": "Groceries", "amount": 350, "periodKind": "monthly"}`)

	tests := []struct {
		name string
		body string
	}{
		{"invalid period kind", `{"periodKind": "biweekly"}`},
		{"empty thresholds", `{"thresholds": []}`},
		{"descending thresholds", `{"thresholds": [90, 80]}`},
		{"broken body", `{ "name": `},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, fmt.Sprintf("/v1/budgets/%s", created.Data.ID), tt.body)
			test.AssertHTTPStatus(t, http.StatusBadRequest, &r)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetDelete() {
	created := createTestBudget(suite.T(), `{"name": "Groceries", "amount": 350, "periodKind": "monthly"}`)

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/budgets/%s", created.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/budgets/%s", created.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}
