package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/expense-tracer/backend/internal/controllers/v1"
	"github.com/expense-tracer/backend/internal/models"
	"github.com/expense-tracer/backend/internal/types"
	"github.com/expense-tracer/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestMonthsCreate() {
	m := suite.createTestMonth(suite.T(), v1.MonthEditable{Month: month("2024-03"), Currency: "USD"})

	assert.Equal(suite.T(), month("2024-03"), m.Data.Month)
	assert.True(suite.T(), m.Data.TotalMoney.IsZero())
	assert.Equal(suite.T(), types.CurrencyDollar, m.Data.Currency)
	assert.Equal(suite.T(), "$0.00", m.Data.Formatted)
	assert.Equal(suite.T(), "http://example.com/v1/months/2024-03", m.Data.Links.Self)
	assert.Equal(suite.T(), "http://example.com/v1/months/2024-03/expenses", m.Data.Links.Expenses)
	assert.Equal(suite.T(), "http://example.com/v1/months/2024-02", m.Data.Links.Previous)
	assert.Equal(suite.T(), "http://example.com/v1/months/2024-04", m.Data.Links.Next)
}

// TestMonthsCreateExisting verifies that adding a month twice keeps its budget.
func (suite *TestSuiteStandard) TestMonthsCreateExisting() {
	suite.createTestMonth(suite.T(), v1.MonthEditable{Month: month("2024-03")})

	r := suite.request(suite.T(), http.MethodPatch, "/v1/months/2024-03", map[string]any{"totalMoney": "1000"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	m := suite.createTestMonth(suite.T(), v1.MonthEditable{Month: month("2024-03"), Currency: "kr"})
	assert.True(suite.T(), m.Data.TotalMoney.Equal(decimal.NewFromInt(1000)))
	assert.Equal(suite.T(), types.CurrencyEuro, m.Data.Currency)
}

func (suite *TestSuiteStandard) TestMonthsCreateFails() {
	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Empty body", "", http.StatusBadRequest},
		{"Broken JSON", `[{ "month": 2`, http.StatusBadRequest},
		{"Not a month", `[{ "month": "March" }]`, http.StatusBadRequest},
		{"No month", `[{ "currency": "€" }]`, http.StatusBadRequest},
		{"Unknown currency", `[{ "month": "2024-03", "currency": "£" }]`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodPost, "/v1/months", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestMonthsCreateMalformedMonth() {
	r := suite.request(suite.T(), http.MethodPost, "/v1/months", `[{ "month": "2024-3" }]`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.MonthCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Error)
	assert.Contains(suite.T(), *response.Error, types.ErrInvalidMonth.Error())
}

// TestMonthsCreatePartial verifies that valid months are added even if
// other months in the same request fail.
func (suite *TestSuiteStandard) TestMonthsCreatePartial() {
	r := suite.request(suite.T(), http.MethodPost, "/v1/months", `[{ "month": "2024-03" }, { "month": "2024-04", "currency": "£" }]`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.MonthCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 2)
	assert.Nil(suite.T(), response.Data[0].Error)
	assert.NotNil(suite.T(), response.Data[1].Error)

	months, err := suite.store.ListMonths(suite.T().Context(), models.Session{})
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), []types.Month{month("2024-03")}, months)
}

func (suite *TestSuiteStandard) TestMonthsGetList() {
	r := suite.request(suite.T(), http.MethodGet, "/v1/months", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.NotNil(suite.T(), response.Data, "an empty list must be returned, not null")
	assert.Len(suite.T(), response.Data, 0)

	suite.createTestMonth(suite.T(), v1.MonthEditable{Month: month("2024-01")})
	suite.createTestMonth(suite.T(), v1.MonthEditable{Month: month("2024-03")})
	suite.createTestMonth(suite.T(), v1.MonthEditable{Month: month("2023-12")})

	r = suite.request(suite.T(), http.MethodGet, "/v1/months", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 3)
	assert.Equal(suite.T(), month("2024-03"), response.Data[0].Month)
	assert.Equal(suite.T(), month("2024-01"), response.Data[1].Month)
	assert.Equal(suite.T(), month("2023-12"), response.Data[2].Month)
	assert.Equal(suite.T(), "http://example.com/v1/months/2024-03/summary", response.Data[0].Links.Summary)
	assert.Equal(suite.T(), "http://example.com/v1/months/2024-01", response.Data[2].Links.Next, "the year rolls over")
}

func (suite *TestSuiteStandard) TestMonthsGet() {
	tests := []struct {
		name     string
		month    string
		status   int
		expected string // Formatted budget
	}{
		{"Month added", "2024-03", http.StatusOK, "€1,500.00"},
		{"Month not added", "2024-04", http.StatusOK, "€0.00"},
		{"Not a month", "2024-13", http.StatusBadRequest, ""},
		{"Full date", "2024-03-01", http.StatusBadRequest, ""},
	}

	suite.createTestMonth(suite.T(), v1.MonthEditable{Month: month("2024-03")})
	r := suite.request(suite.T(), http.MethodPatch, "/v1/months/2024-03", map[string]any{"totalMoney": "1500"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodGet, "/v1/months/"+tt.month, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.BalanceResponse
			test.DecodeResponse(t, &r, &response)

			if tt.status != http.StatusOK {
				assert.NotNil(t, response.Error)
				return
			}

			assert.Equal(t, tt.expected, response.Data.Formatted)
		})
	}
}

func (suite *TestSuiteStandard) TestMonthsUpdate() {
	suite.createTestMonth(suite.T(), v1.MonthEditable{Month: month("2024-03"), Currency: "kr"})

	tests := []struct {
		name      string
		month     string
		body      any
		status    int
		total     string
		currency  types.Currency
		formatted string
	}{
		{"Budget only", "2024-03", map[string]any{"totalMoney": "1200.5"}, http.StatusOK, "1200.5", types.CurrencyKrone, "kr1,200.50"},
		{"Currency only", "2024-03", `{ "currency": "USD ($)" }`, http.StatusOK, "1200.5", types.CurrencyDollar, "$1,200.50"},
		{"Zero budget", "2024-03", `{ "totalMoney": 0 }`, http.StatusOK, "0", types.CurrencyDollar, "$0.00"},
		{"Negative budget", "2024-03", `{ "totalMoney": -1 }`, http.StatusBadRequest, "", "", ""},
		{"Unknown currency", "2024-03", `{ "currency": "£" }`, http.StatusBadRequest, "", "", ""},
		{"Broken JSON", "2024-03", `{ "totalMoney": 2`, http.StatusBadRequest, "", "", ""},
		{"Empty body", "2024-03", "", http.StatusBadRequest, "", "", ""},
		{"Month not added", "2024-04", `{ "totalMoney": 100 }`, http.StatusNotFound, "", "", ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodPatch, "/v1/months/"+tt.month, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.BalanceResponse
			test.DecodeResponse(t, &r, &response)

			if tt.status != http.StatusOK {
				assert.NotNil(t, response.Error)
				return
			}

			assert.True(t, decimal.RequireFromString(tt.total).Equal(response.Data.TotalMoney), "expected %s, got %s", tt.total, response.Data.TotalMoney)
			assert.Equal(t, tt.currency, response.Data.Currency)
			assert.Equal(t, tt.formatted, response.Data.Formatted)
		})
	}

	// Updating a month that has not been added must not add it
	months, err := suite.store.ListMonths(suite.T().Context(), models.Session{})
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), []types.Month{month("2024-03")}, months)
}

func (suite *TestSuiteStandard) TestMonthsDelete() {
	suite.createTestMonth(suite.T(), v1.MonthEditable{Month: month("2024-03")})
	suite.createTestMonth(suite.T(), v1.MonthEditable{Month: month("2024-04")})
	suite.createTestExpense(suite.T(), "2024-03", v1.ExpenseEditable{})
	kept := suite.createTestExpense(suite.T(), "2024-04", v1.ExpenseEditable{})

	r := suite.request(suite.T(), http.MethodDelete, "/v1/months/2024-03", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	// Deleting again is not an error
	r = suite.request(suite.T(), http.MethodDelete, "/v1/months/2024-03", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(suite.T(), http.MethodGet, "/v1/months/2024-03/expenses", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var expenses v1.ExpenseListResponse
	test.DecodeResponse(suite.T(), &r, &expenses)
	assert.Len(suite.T(), expenses.Data, 0)

	r = suite.request(suite.T(), http.MethodGet, "/v1/expenses/"+kept.Data.ID.String(), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(suite.T(), http.MethodDelete, "/v1/months/someday", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestMonthsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestMonthsDBClosed() {
	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"GET list", http.MethodGet, "/v1/months", ""},
		{"POST", http.MethodPost, "/v1/months", `[{ "month": "2024-03" }]`},
		{"GET", http.MethodGet, "/v1/months/2024-03", ""},
		{"PATCH", http.MethodPatch, "/v1/months/2024-03", `{ "totalMoney": 10 }`},
		{"DELETE", http.MethodDelete, "/v1/months/2024-03", ""},
	}

	suite.CloseDB()

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, tt.method, tt.path, tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusInternalServerError)
			assert.Contains(t, r.Body.String(), models.ErrStoreUnavailable.Error())
		})
	}
}
