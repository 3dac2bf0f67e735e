package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/coinkeep/backend/internal/controllers/v1"
	"github.com/coinkeep/backend/internal/test"
	"github.com/coinkeep/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestTransaction(t *testing.T, body string) v1.TransactionResponse {
	r := test.Request(t, http.MethodPost, "/v1/transactions", body)
	test.AssertHTTPStatus(t, http.StatusCreated, &r)

	var response v1.TransactionResponse
	test.DecodeResponse(t, &r, &response)

	return response
}

func (suite *TestSuiteStandard) TestTransactionCreate() {
	response := createTestTransaction(suite.T(), `{"title": "Coffee", "amount": 3.5, "direction": "expense", "date": "2026-02-10T00:00:00Z"}`)

	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), "Coffee", response.Data.Title)
	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromFloat(3.5)))
	assert.Equal(suite.T(), types.DirectionExpense, response.Data.Direction)
}

func (suite *TestSuiteStandard) TestTransactionCreateInvalidDirection() {
	r := test.Request(suite.T(), http.MethodPost, "/v1/transactions", `{"title": "Broken", "amount": 1, "direction": "sideways"}`)
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)
}

func (suite *TestSuiteStandard) TestTransactionListFilters() {
	_ = createTestTransaction(suite.T(), `{"title": "Salary", "amount": 2000, "direction": "income", "date": "2026-02-01T00:00:00Z"}`)
	_ = createTestTransaction(suite.T(), `{"title": "Coffee", "amount": 3.5, "direction": "expense", "date": "2026-02-10T00:00:00Z"}`)
	_ = createTestTransaction(suite.T(), `{"title": "Groceries", "amount": 27, "direction": "expense", "date": "2026-03-02T00:00:00Z"}`)

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"no filter", "", 3},
		{"direction", "direction=expense", 2},
		{"from date", "fromDate=2026-02-05", 2},
		{"until date", "untilDate=2026-02-10", 2},
		{"date range", "fromDate=2026-02-05&untilDate=2026-02-28", 1},
		{"invalid direction", "direction=sideways", -1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "/v1/transactions?"+tt.query, "")

			if tt.count < 0 {
				test.AssertHTTPStatus(t, http.StatusBadRequest, &r)
				return
			}

			test.AssertHTTPStatus(t, http.StatusOK, &r)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionUpdate() {
	created := createTestTransaction(suite.T(), `{"title": "Coffee", "amount": 3.5, "direction": "expense", "date": "2026-02-10T00:00:00Z"}`)

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/transactions/%s", created.Data.ID), `{"title": "Espresso", "amount": 2.5, "direction": "expense", "date": "2026-02-10T00:00:00Z"}`)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Espresso", response.Data.Title)
}

// TestTransactionUpdatePartial verifies that a patch only touches the
// fields set in the body and leaves every other stored value as it is.
func (suite *TestSuiteStandard) TestTransactionUpdatePartial() {
	created := createTestTransaction(suite.T(), `{"title": "Coffee", "note": "To go", "amount": 3.5, "direction": "expense", "date": "2026-02-10T00:00:00Z"}`)

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/transactions/%s", created.Data.ID), `{"amount": 2.5}`)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Coffee", response.Data.Title)
	assert.Equal(suite.T(), "To go", response.Data.Note)
	assert.Equal(suite.T(), types.DirectionExpense, response.Data.Direction)
	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromFloat(2.5)), "amount is %s", response.Data.Amount)
	assert.Equal(suite.T(), created.Data.Date, response.Data.Date)
}

// TestTransactionUpdateClearsFields verifies that fields set to their
// zero value or to null in the body are cleared in the database.
func (suite *TestSuiteStandard) TestTransactionUpdateClearsFields() {
	category := createTestCategory(suite.T(), `{"name": "Drinks"}`)
	created := createTestTransaction(suite.T(), fmt.Sprintf(`{"title": "Coffee", "note": "To go", "amount": 3.5, "direction": "expense", "date": "2026-02-10T00:00:00Z", "categoryId": "%s"}`, category.Data.ID))
	require.NotNil(suite.T(), created.Data.CategoryID)

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/transactions/%s", created.Data.ID), `{"note": "", "categoryId": null}`)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "", response.Data.Note)
	assert.Nil(suite.T(), response.Data.CategoryID)
}

func (suite *TestSuiteStandard) TestTransactionUpdateInvalidDirection() {
	created := createTestTransaction(suite.T(), `{"title": "Coffee", "amount": 3.5, "direction": "expense", "date": "2026-02-10T00:00:00Z"}`)

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/transactions/%s", created.Data.ID), `{"direction": "sideways"}`)
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)
}

func (suite *TestSuiteStandard) TestTransactionDelete() {
	created := createTestTransaction(suite.T(), `{"title": "Coffee", "amount": 3.5, "direction": "expense", "date": "2026-02-10T00:00:00Z"}`)

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/transactions/%s", created.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/transactions/%s", created.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}

// TestTransactionMutationRecomputes verifies that creating a transaction
// refreshes the derived goal state.
func (suite *TestSuiteStandard) TestTransactionMutationRecomputes() {
	goal := createTestSavingsGoal(suite.T(), `{"title": "Emergency fund", "amount": 500, "targetDate": "2100-12-31"}`)

	_ = createTestTransaction(suite.T(), `{"title": "Salary", "amount": 600, "direction": "income", "date": "2026-02-01T00:00:00Z"}`)

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/savings-goals/%s", goal.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.SavingsGoalResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.Data.CurrentAmount.Equal(decimal.NewFromFloat(600)), "current amount is %s", response.Data.CurrentAmount)
	assert.True(suite.T(), response.Data.Completed)
}
