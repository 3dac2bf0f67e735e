package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/coinkeep/backend/internal/controllers/v1"
	"github.com/coinkeep/backend/internal/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCategory(t *testing.T, body string) v1.CategoryResponse {
	r := test.Request(t, http.MethodPost, "/v1/categories", body)
	test.AssertHTTPStatus(t, http.StatusCreated, &r)

	var response v1.CategoryResponse
	test.DecodeResponse(t, &r, &response)

	return response
}

func (suite *TestSuiteStandard) TestCategoryCreate() {
	response := createTestCategory(suite.T(), `{"name": "Groceries", "note": "Fridge stuff"}`)

	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), "Groceries", response.Data.Name)
	assert.Equal(suite.T(), "Fridge stuff", response.Data.Note)
	assert.NotEqual(suite.T(), uuid.Nil, response.Data.ID)
}

func (suite *TestSuiteStandard) TestCategoryCreateDuplicateName() {
	_ = createTestCategory(suite.T(), `{"name": "Utilities"}`)

	r := test.Request(suite.T(), http.MethodPost, "/v1/categories", `{"name": "Utilities"}`)
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)
}

func (suite *TestSuiteStandard) TestCategoryCreateBrokenBody() {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"broken JSON", `{ "name": `},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "/v1/categories", tt.body)
			test.AssertHTTPStatus(t, http.StatusBadRequest, &r)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoryGet() {
	created := createTestCategory(suite.T(), `{"name": "Transport"}`)

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/categories/%s", created.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Transport", response.Data.Name)
}

func (suite *TestSuiteStandard) TestCategoryList() {
	_ = createTestCategory(suite.T(), `{"name": "Rent"}`)
	_ = createTestCategory(suite.T(), `{"name": "Groceries"}`)

	r := test.Request(suite.T(), http.MethodGet, "/v1/categories", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 2)
	// Sorted by name
	assert.Equal(suite.T(), "Groceries", response.Data[0].Name)
	assert.Equal(suite.T(), 2, response.Pagination.Count)
	assert.Equal(suite.T(), int64(2), response.Pagination.Total)
}

func (suite *TestSuiteStandard) TestCategoryListFilterName() {
	_ = createTestCategory(suite.T(), `{"name": "Rent"}`)
	_ = createTestCategory(suite.T(), `{"name": "Groceries"}`)

	r := test.Request(suite.T(), http.MethodGet, "/v1/categories?name=Groc", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), "Groceries", response.Data[0].Name)
}

func (suite *TestSuiteStandard) TestCategoryUpdate() {
	created := createTestCategory(suite.T(), `{"name": "Transport"}`)

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/categories/%s", created.Data.ID), `{"name": "Mobility"}`)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Mobility", response.Data.Name)
}

func (suite *TestSuiteStandard) TestCategoryUpdatePartial() {
	created := createTestCategory(suite.T(), `{"name": "Transport", "icon": "bus"}`)

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/categories/%s", created.Data.ID), `{"note": "Trains and busses"}`)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Transport", response.Data.Name)
	assert.Equal(suite.T(), "bus", response.Data.Icon)
	assert.Equal(suite.T(), "Trains and busses", response.Data.Note)
}

func (suite *TestSuiteStandard) TestCategoryDelete() {
	created := createTestCategory(suite.T(), `{"name": "Transport"}`)

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/categories/%s", created.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/categories/%s", created.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}

// TestCategoryOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestCategoryOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No category with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Category exists", createTestCategory(suite.T(), `{"name": "Exists"}`).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, fmt.Sprintf("/v1/categories/%s", tt.id), "")
			test.AssertHTTPStatus(t, tt.status, &r)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoryInvalidUUID() {
	r := test.Request(suite.T(), http.MethodGet, "/v1/categories/not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)
}

func (suite *TestSuiteStandard) TestCategoryDBClosed() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "/v1/categories", "")
	test.AssertHTTPStatus(suite.T(), http.StatusInternalServerError, &r)
}
